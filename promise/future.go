package promise

import "github.com/jakehawken/propagate/executors"

// Future is the consumer-side handle of a single-shot completion.
//
// Callbacks registered before completion fire when the promise completes,
// in registration order within each category. Callbacks registered after
// completion fire immediately on their execution context. Either way the
// caller observes exactly one invocation.
//
// The registration methods take the executor the callback should run on;
// nil selects the future's own serial context, which preserves registration
// order across callbacks.
type Future[T any, E error] struct {
	cell *cell[T, E]
}

// OnSuccess registers cb to run with the success value if the future
// resolves. Returns the future for chaining.
func (f *Future[T, E]) OnSuccess(on executors.Executor, cb func(T)) *Future[T, E] {
	f.cell.registerSuccess(on, cb)
	return f
}

// OnFailure registers cb to run with the error if the future rejects.
// Returns the future for chaining.
func (f *Future[T, E]) OnFailure(on executors.Executor, cb func(E)) *Future[T, E] {
	f.cell.registerFailure(on, cb)
	return f
}

// Finally registers cb to run with the terminal Result regardless of
// outcome, after the matching OnSuccess/OnFailure callbacks registered so
// far. Returns the future for chaining.
func (f *Future[T, E]) Finally(on executors.Executor, cb func(Result[T, E])) *Future[T, E] {
	f.cell.registerFinally(on, cb)
	return f
}

// IsComplete reports whether the future holds a result.
func (f *Future[T, E]) IsComplete() bool {
	_, ok := f.cell.snapshot()
	return ok
}

// Succeeded reports whether the future has resolved. False while pending.
func (f *Future[T, E]) Succeeded() bool {
	res, ok := f.cell.snapshot()
	return ok && res.Succeeded()
}

// Failed reports whether the future has rejected. False while pending.
func (f *Future[T, E]) Failed() bool {
	res, ok := f.cell.snapshot()
	return ok && res.Failed()
}

// Value returns the success value if the future has resolved.
func (f *Future[T, E]) Value() (T, bool) {
	res, ok := f.cell.snapshot()
	if !ok {
		var zero T
		return zero, false
	}
	return res.Value()
}

// Err returns the error if the future has rejected.
func (f *Future[T, E]) Err() (E, bool) {
	res, ok := f.cell.snapshot()
	if !ok {
		var zero E
		return zero, false
	}
	return res.Err()
}

// Result returns the terminal result if the future is complete.
func (f *Future[T, E]) Result() (Result[T, E], bool) {
	return f.cell.snapshot()
}

// Await blocks until the future completes and returns its result. This is
// the one deliberately blocking consumer convenience; everything else in
// the package returns immediately.
func (f *Future[T, E]) Await() Result[T, E] {
	<-f.cell.done
	res, _ := f.cell.snapshot()
	return res
}

// Done returns a channel that is closed when the future completes.
func (f *Future[T, E]) Done() <-chan struct{} {
	return f.cell.done
}
