package promise

import "fmt"

// Result is the terminal outcome of a promise: either a success carrying a
// T or a failure carrying an E. Immutable once constructed.
type Result[T any, E error] struct {
	value  T
	err    E
	failed bool
}

// Success wraps value in a successful Result.
func Success[T any, E error](value T) Result[T, E] {
	return Result[T, E]{value: value}
}

// Failure wraps err in a failed Result.
func Failure[T any, E error](err E) Result[T, E] {
	return Result[T, E]{err: err, failed: true}
}

// Succeeded reports whether the result carries a value.
func (r Result[T, E]) Succeeded() bool {
	return !r.failed
}

// Failed reports whether the result carries an error.
func (r Result[T, E]) Failed() bool {
	return r.failed
}

// Value returns the success value, and whether the result is a success.
func (r Result[T, E]) Value() (T, bool) {
	return r.value, !r.failed
}

// Err returns the failure error, and whether the result is a failure.
func (r Result[T, E]) Err() (E, bool) {
	return r.err, r.failed
}

// Match invokes exactly one of the two callbacks. Either may be nil.
func (r Result[T, E]) Match(onSuccess func(T), onFailure func(E)) {
	if r.failed {
		if onFailure != nil {
			onFailure(r.err)
		}
		return
	}
	if onSuccess != nil {
		onSuccess(r.value)
	}
}

func (r Result[T, E]) String() string {
	if r.failed {
		return fmt.Sprintf("failure(%v)", error(r.err))
	}
	return fmt.Sprintf("success(%v)", r.value)
}
