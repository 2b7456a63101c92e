package stream

import (
	"runtime"
	"sync"
)

// StatefulPublisher is a Publisher that remembers the most recent state it
// published and replays it synchronously to new subscribers: the first
// registration call on a subscriber created after a publish observes the
// cached state before any subsequent one.
//
// The value cache is separate from the state cache: LastValue always
// reflects the most recent Data payload even after a later error or
// cancellation. Once the publisher is cancelled, replay is suppressed
// entirely; LastValue stays readable.
type StatefulPublisher[T any, E error] struct {
	pub *Publisher[T, E]

	mu        sync.Mutex
	lastState *State[T, E]
	lastValue *T
}

// NewStatefulPublisher creates a StatefulPublisher with no subscribers and
// an empty cache.
func NewStatefulPublisher[T any, E error](opts ...Option) *StatefulPublisher[T, E] {
	return &StatefulPublisher[T, E]{pub: NewPublisher[T, E](opts...)}
}

// Subscriber creates, registers and returns a new subscriber whose first
// registration call synchronously replays the cached last state, if there
// is one and the publisher has not been cancelled.
func (sp *StatefulPublisher[T, E]) Subscriber() *Subscriber[T, E] {
	sp.mu.Lock()
	var replay *State[T, E]
	if sp.lastState != nil && !sp.lastState.IsCancelled() {
		st := *sp.lastState
		replay = &st
	}
	sp.mu.Unlock()

	s := sp.pub.core.newSubscriber(replay)
	runtime.KeepAlive(sp)
	return s
}

// Publish caches value and broadcasts it to every live subscriber.
func (sp *StatefulPublisher[T, E]) Publish(value T) {
	st := Data[T, E](value)
	sp.cache(st)
	sp.pub.PublishState(st)
}

// PublishError caches the error state and broadcasts it. The value cache
// is left untouched.
func (sp *StatefulPublisher[T, E]) PublishError(err E) {
	st := Error[T, E](err)
	sp.cache(st)
	sp.pub.PublishState(st)
}

// PublishState broadcasts an already-constructed state. A Cancelled state
// is equivalent to calling CancelAll.
func (sp *StatefulPublisher[T, E]) PublishState(st State[T, E]) {
	sp.cache(st)
	sp.pub.PublishState(st)
}

// CancelAll cancels the underlying publisher. The last state becomes
// Cancelled; the value cache keeps the last real value.
func (sp *StatefulPublisher[T, E]) CancelAll() {
	sp.cache(Cancelled[T, E]())
	sp.pub.CancelAll()
}

// IsCancelled reports whether the publisher has been cancelled.
func (sp *StatefulPublisher[T, E]) IsCancelled() bool {
	return sp.pub.IsCancelled()
}

// LastState returns the most recently published state, if any.
func (sp *StatefulPublisher[T, E]) LastState() (State[T, E], bool) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if sp.lastState == nil {
		var zero State[T, E]
		return zero, false
	}
	return *sp.lastState, true
}

// LastValue returns the most recent Data payload, if any was ever
// published. Errors and cancellation never clear it.
func (sp *StatefulPublisher[T, E]) LastValue() (T, bool) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if sp.lastValue == nil {
		var zero T
		return zero, false
	}
	return *sp.lastValue, true
}

func (sp *StatefulPublisher[T, E]) cache(st State[T, E]) {
	// publishes after cancellation are no-ops and must not disturb the cache
	if sp.pub.core.isCancelled() {
		return
	}
	sp.mu.Lock()
	defer sp.mu.Unlock()
	copied := st
	sp.lastState = &copied
	if v, ok := st.Value(); ok {
		sp.lastValue = &v
	}
}
