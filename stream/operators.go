package stream

import (
	"sync"

	"github.com/hashicorp/go-hclog"
)

// The operators below are built purely from the public surface: each
// creates a fresh publisher, registers a forwarding callback on the
// upstream subscriber, and returns a subscriber on the new publisher that
// structurally retains the upstream.

// Map transforms every data value with fn. Errors and cancellation pass
// through untouched.
func Map[T, U any, E error](src *Subscriber[T, E], fn func(T) U) *Subscriber[U, E] {
	pub := NewPublisher[U, E]()
	out := pub.Subscriber()
	out.retain(src)
	src.Subscribe(nil, func(st State[T, E]) {
		st.Match(
			func(v T) { pub.Publish(fn(v)) },
			func(e E) { pub.PublishError(e) },
			pub.CancelAll,
		)
	})
	return out
}

// MapError translates the stream into a new error domain F with fn. Data
// and cancellation pass through untouched.
func MapError[T any, E, F error](src *Subscriber[T, E], fn func(E) F) *Subscriber[T, F] {
	pub := NewPublisher[T, F]()
	out := pub.Subscriber()
	out.retain(src)
	src.Subscribe(nil, func(st State[T, E]) {
		st.Match(
			func(v T) { pub.Publish(v) },
			func(e E) { pub.PublishError(fn(e)) },
			pub.CancelAll,
		)
	})
	return out
}

// MapStates transforms every state with fn, allowing both channels to
// change type at once. A Cancelled state produced by fn cancels the
// derived stream.
func MapStates[T, U any, E, F error](src *Subscriber[T, E], fn func(State[T, E]) State[U, F]) *Subscriber[U, F] {
	pub := NewPublisher[U, F]()
	out := pub.Subscriber()
	out.retain(src)
	src.Subscribe(nil, func(st State[T, E]) {
		pub.PublishState(fn(st))
	})
	return out
}

// Filter forwards only the data values for which keep returns true. Errors
// and cancellation pass through untouched.
func Filter[T any, E error](src *Subscriber[T, E], keep func(T) bool) *Subscriber[T, E] {
	pub := NewPublisher[T, E]()
	out := pub.Subscriber()
	out.retain(src)
	src.Subscribe(nil, func(st State[T, E]) {
		st.Match(
			func(v T) {
				if keep(v) {
					pub.Publish(v)
				}
			},
			func(e E) { pub.PublishError(e) },
			pub.CancelAll,
		)
	})
	return out
}

// Distinct suppresses consecutive duplicate data values. Errors do not
// reset the tracking.
func Distinct[T comparable, E error](src *Subscriber[T, E]) *Subscriber[T, E] {
	return DistinctFunc(src, func(a, b T) bool { return a == b })
}

// DistinctFunc is Distinct with a caller-supplied equality predicate, for
// value types that are not comparable.
func DistinctFunc[T any, E error](src *Subscriber[T, E], equal func(a, b T) bool) *Subscriber[T, E] {
	pub := NewPublisher[T, E]()
	out := pub.Subscriber()
	out.retain(src)

	// deliveries from src arrive serialized, so plain fields suffice
	var last T
	seen := false
	src.Subscribe(nil, func(st State[T, E]) {
		st.Match(
			func(v T) {
				if seen && equal(last, v) {
					return
				}
				last, seen = v, true
				pub.Publish(v)
			},
			func(e E) { pub.PublishError(e) },
			pub.CancelAll,
		)
	})
	return out
}

// Scan folds every data value into an accumulator seeded with seed,
// emitting the accumulator after each fold. Errors and cancellation pass
// through untouched.
func Scan[T, A any, E error](src *Subscriber[T, E], seed A, fold func(A, T) A) *Subscriber[A, E] {
	pub := NewPublisher[A, E]()
	out := pub.Subscriber()
	out.retain(src)

	acc := seed
	src.Subscribe(nil, func(st State[T, E]) {
		st.Match(
			func(v T) {
				acc = fold(acc, v)
				pub.Publish(acc)
			},
			func(e E) { pub.PublishError(e) },
			pub.CancelAll,
		)
	})
	return out
}

// CompactMap transforms data values with fn, dropping the ones for which
// fn reports no result. Errors and cancellation pass through untouched.
func CompactMap[T, U any, E error](src *Subscriber[T, E], fn func(T) (U, bool)) *Subscriber[U, E] {
	pub := NewPublisher[U, E]()
	out := pub.Subscriber()
	out.retain(src)
	src.Subscribe(nil, func(st State[T, E]) {
		st.Match(
			func(v T) {
				if u, ok := fn(v); ok {
					pub.Publish(u)
				}
			},
			func(e E) { pub.PublishError(e) },
			pub.CancelAll,
		)
	})
	return out
}

// Unwrapped narrows a stream of pointers to a stream of values, emitting
// the caller-supplied fallback error whenever a nil arrives. The library
// defines no error of its own; every failure mode stays in E.
func Unwrapped[T any, E error](src *Subscriber[*T, E], errIfNil E) *Subscriber[T, E] {
	pub := NewPublisher[T, E]()
	out := pub.Subscriber()
	out.retain(src)
	src.Subscribe(nil, func(st State[*T, E]) {
		st.Match(
			func(v *T) {
				if v == nil {
					pub.PublishError(errIfNil)
					return
				}
				pub.Publish(*v)
			},
			func(e E) { pub.PublishError(e) },
			pub.CancelAll,
		)
	})
	return out
}

// Merge interleaves the data and error states of all inputs into one
// stream. The merged stream cancels once every input has cancelled.
func Merge[T any, E error](srcs ...*Subscriber[T, E]) *Subscriber[T, E] {
	pub := NewPublisher[T, E]()
	out := pub.Subscriber()
	out.retain(srcs)

	var mu sync.Mutex
	remaining := len(srcs)
	if remaining == 0 {
		pub.CancelAll()
		return out
	}

	for _, src := range srcs {
		src.Subscribe(nil, func(st State[T, E]) {
			if st.IsCancelled() {
				mu.Lock()
				remaining--
				last := remaining == 0
				mu.Unlock()
				if last {
					pub.CancelAll()
				}
				return
			}
			pub.PublishState(st)
		})
	}
	return out
}

// Logged passes every state through unchanged, writing it to logger at
// debug level tagged with label. The logging sink is explicit and
// per-operator; there is no ambient toggle.
func Logged[T any, E error](src *Subscriber[T, E], logger hclog.Logger, label string) *Subscriber[T, E] {
	pub := NewPublisher[T, E]()
	out := pub.Subscriber()
	out.retain(src)
	src.Subscribe(nil, func(st State[T, E]) {
		if logger != nil {
			logger.Debug("state", "label", label, "state", st.String())
		}
		pub.PublishState(st)
	})
	return out
}
