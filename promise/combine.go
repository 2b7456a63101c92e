package promise

import (
	"sync"

	"github.com/jakehawken/propagate/executors"
)

// MapValue returns a Future whose success value is fn applied to f's
// success value. Failure passes through untouched.
func MapValue[T, U any, E error](f *Future[T, E], fn func(T) U) *Future[U, E] {
	p := New[U, E]()
	f.OnSuccess(nil, func(v T) { p.Resolve(fn(v)) })
	f.OnFailure(nil, func(e E) { p.Reject(e) })
	return p.Future()
}

// MapError returns a Future in a new error domain F, with fn translating
// f's error on failure. Success passes through untouched.
func MapError[T any, E, F error](f *Future[T, E], fn func(E) F) *Future[T, F] {
	p := New[T, F]()
	f.OnSuccess(nil, func(v T) { p.Resolve(v) })
	f.OnFailure(nil, func(e E) { p.Reject(fn(e)) })
	return p.Future()
}

// MapResult returns a Future completed with fn applied to f's terminal
// result, allowing both channels to change type at once.
func MapResult[T, U any, E, F error](f *Future[T, E], fn func(Result[T, E]) Result[U, F]) *Future[U, F] {
	p := New[U, F]()
	f.Finally(nil, func(res Result[T, E]) { p.Complete(fn(res)) })
	return p.Future()
}

// FlatMap sequences two futures: next is called with f's terminal result
// once f completes, and the returned future's outcome is forwarded.
func FlatMap[T, U any, E error](f *Future[T, E], next func(Result[T, E]) *Future[U, E]) *Future[U, E] {
	p := New[U, E]()
	f.Finally(nil, func(res Result[T, E]) {
		next(res).Finally(nil, func(inner Result[U, E]) { p.Complete(inner) })
	})
	return p.Future()
}

// FlatMapSuccess sequences two futures on the success path only: next is
// started with f's value after f resolves, and its outcome is forwarded. If
// f rejects, the error is forwarded and next is never started.
func FlatMapSuccess[T, U any, E error](f *Future[T, E], next func(T) *Future[U, E]) *Future[U, E] {
	p := New[U, E]()
	f.OnSuccess(nil, func(v T) {
		next(v).Finally(nil, func(inner Result[U, E]) { p.Complete(inner) })
	})
	f.OnFailure(nil, func(e E) { p.Reject(e) })
	return p.Future()
}

// Merge collects the success values of all input futures, in input order,
// into one Future. It resolves only once every input has resolved, and
// rejects with whichever error completes first, without waiting for the
// remaining inputs.
//
// The bookkeeping runs inline on each input's completion path under one
// private lock, so the "first error wins, all successes required" check is
// atomic across concurrent completions.
func Merge[T any, E error](futures ...*Future[T, E]) *Future[[]T, E] {
	if len(futures) == 0 {
		return Resolved[[]T, E](nil)
	}

	p := New[[]T, E]()
	var mu sync.Mutex
	values := make([]T, len(futures))
	remaining := len(futures)
	failed := false

	for i, f := range futures {
		i := i
		f.Finally(executors.Immediate{}, func(res Result[T, E]) {
			mu.Lock()
			defer mu.Unlock()
			if failed {
				return
			}
			if e, ok := res.Err(); ok {
				failed = true
				p.Reject(e)
				return
			}
			v, _ := res.Value()
			values[i] = v
			remaining--
			if remaining == 0 {
				p.Resolve(values)
			}
		})
	}
	return p.Future()
}

// FirstFinished races the input futures and adopts the first success. It
// rejects only after every input has failed, with the earliest error, so a
// slow success still wins over an early failure. With no inputs the
// returned future stays pending forever.
func FirstFinished[T any, E error](futures ...*Future[T, E]) *Future[T, E] {
	p := New[T, E]()

	var mu sync.Mutex
	remaining := len(futures)
	var firstErr *E

	for _, f := range futures {
		f.Finally(executors.Immediate{}, func(res Result[T, E]) {
			mu.Lock()
			defer mu.Unlock()
			if v, ok := res.Value(); ok {
				// at-most-once completion makes later successes no-ops
				p.Resolve(v)
				return
			}
			if e, ok := res.Err(); ok && firstErr == nil {
				firstErr = &e
			}
			remaining--
			if remaining == 0 {
				p.Reject(*firstErr)
			}
		})
	}
	return p.Future()
}
