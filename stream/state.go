package stream

import "fmt"

// Kind discriminates the three State variants.
type Kind uint8

const (
	KindData Kind = iota + 1
	KindError
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindError:
		return "error"
	case KindCancelled:
		return "cancelled"
	default:
		return "invalid"
	}
}

// State is the unit of emission of a stream: a value, an error, or the
// terminal Cancelled marker. Immutable once constructed.
type State[T any, E error] struct {
	kind  Kind
	value T
	err   E
}

// Data wraps value in a State.
func Data[T any, E error](value T) State[T, E] {
	return State[T, E]{kind: KindData, value: value}
}

// Error wraps err in a State.
func Error[T any, E error](err E) State[T, E] {
	return State[T, E]{kind: KindError, err: err}
}

// Cancelled returns the terminal State. It carries no payload.
func Cancelled[T any, E error]() State[T, E] {
	return State[T, E]{kind: KindCancelled}
}

// Kind returns the variant discriminator.
func (s State[T, E]) Kind() Kind {
	return s.kind
}

// Value returns the data value, and whether the state is a Data state.
func (s State[T, E]) Value() (T, bool) {
	return s.value, s.kind == KindData
}

// Err returns the error, and whether the state is an Error state.
func (s State[T, E]) Err() (E, bool) {
	return s.err, s.kind == KindError
}

// IsCancelled reports whether the state is the terminal marker.
func (s State[T, E]) IsCancelled() bool {
	return s.kind == KindCancelled
}

// Match invokes the callback matching the variant. Any callback may be nil.
func (s State[T, E]) Match(onData func(T), onError func(E), onCancelled func()) {
	switch s.kind {
	case KindData:
		if onData != nil {
			onData(s.value)
		}
	case KindError:
		if onError != nil {
			onError(s.err)
		}
	case KindCancelled:
		if onCancelled != nil {
			onCancelled()
		}
	}
}

func (s State[T, E]) String() string {
	switch s.kind {
	case KindData:
		return fmt.Sprintf("data(%v)", s.value)
	case KindError:
		return fmt.Sprintf("error(%v)", error(s.err))
	case KindCancelled:
		return "cancelled"
	default:
		return "invalid"
	}
}

// StatesEqual compares two states, including payloads. Usable when both
// type parameters are comparable.
func StatesEqual[T comparable, E interface {
	error
	comparable
}](a, b State[T, E]) bool {
	return a.kind == b.kind && a.value == b.value && a.err == b.err
}
