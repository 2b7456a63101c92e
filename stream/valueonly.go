package stream

import "github.com/jakehawken/propagate/executors"

// noFailure is the error type of a value-only stream. It is never
// published; it exists only so the internal plumbing has an error channel.
type noFailure struct{}

func (noFailure) Error() string { return "stream: no failure" }

// ValueOnlySubscriber is a type-erased view of a subscriber that exposes
// only the data channel. Errors on the source are swallowed; cancellation
// still terminates the view.
type ValueOnlySubscriber[T any] struct {
	inner *Subscriber[T, noFailure]
}

// Values erases the error channel of src, returning a view that observes
// its data values, in order, and its cancellation.
func Values[T any, E error](src *Subscriber[T, E]) *ValueOnlySubscriber[T] {
	pub := NewPublisher[T, noFailure]()
	out := pub.Subscriber()
	out.retain(src)
	src.Subscribe(nil, func(st State[T, E]) {
		st.Match(
			func(v T) { pub.Publish(v) },
			nil,
			pub.CancelAll,
		)
	})
	return &ValueOnlySubscriber[T]{inner: out}
}

// OnValue registers cb for every data value. A nil executor means the
// view's serial receive context. Returns the view for chaining.
func (v *ValueOnlySubscriber[T]) OnValue(on executors.Executor, cb func(T)) *ValueOnlySubscriber[T] {
	v.inner.OnNewData(on, cb)
	return v
}

// OnCancelled registers cb for the terminal Cancelled state.
func (v *ValueOnlySubscriber[T]) OnCancelled(on executors.Executor, cb func()) *ValueOnlySubscriber[T] {
	v.inner.OnCancelled(on, cb)
	return v
}

// Cancel cancels the view's subscription.
func (v *ValueOnlySubscriber[T]) Cancel() {
	v.inner.Cancel()
}

// IsCancelled reports whether the view has received Cancelled.
func (v *ValueOnlySubscriber[T]) IsCancelled() bool {
	return v.inner.IsCancelled()
}

// WithErrors lifts a value-only view back into a full subscriber with an
// injected error domain E. Every data value is forwarded in order; the
// injected error channel never fires on its own.
func WithErrors[E error, T any](v *ValueOnlySubscriber[T]) *Subscriber[T, E] {
	pub := NewPublisher[T, E]()
	out := pub.Subscriber()
	out.retain(v)
	v.inner.Subscribe(nil, func(st State[T, noFailure]) {
		st.Match(
			func(val T) { pub.Publish(val) },
			nil,
			pub.CancelAll,
		)
	})
	return out
}
