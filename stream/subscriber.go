package stream

import (
	"sync"

	"github.com/jakehawken/propagate/executors"
)

// stateRegistration pairs a state callback with the executor it runs on.
// A nil executor means the subscriber's own serial receive context, i.e.
// the callback runs inline on the delivery goroutine.
type stateRegistration[T any, E error] struct {
	on executors.Executor
	cb func(State[T, E])
}

func (r stateRegistration[T, E]) dispatch(st State[T, E]) {
	if r.on == nil {
		r.cb(st)
		return
	}
	r.on.Submit(func() { r.cb(st) })
}

// Subscriber is the consumer end of a stream. It is created only by a
// publisher's Subscriber method and receives every state published after
// its creation, delivered to all of its registered callbacks in emission
// order.
//
// A subscriber is single-assignment terminal: once it has received
// Cancelled it is inert, and further publishes are silently dropped.
type Subscriber[T any, E error] struct {
	id string

	mu        sync.Mutex
	regs      []stateRegistration[T, E]
	cancelled bool
	replay    *State[T, E]
	serial    *executors.Serial

	// upstream structurally keeps an operator chain's source alive for as
	// long as this subscriber is reachable.
	upstream any

	canceller  func(*Subscriber[T, E])
	cancelOnce sync.Once
}

// ID returns the subscriber's unique identity within its publisher.
func (s *Subscriber[T, E]) ID() string {
	return s.id
}

// Subscribe registers cb for every state received from now on. The
// callback runs on the given executor; nil means the subscriber's serial
// receive context. Returns the subscriber for chaining.
//
// If the subscriber is already cancelled, cb is delivered a single
// Cancelled state immediately and nothing is stored.
func (s *Subscriber[T, E]) Subscribe(on executors.Executor, cb func(State[T, E])) *Subscriber[T, E] {
	reg := stateRegistration[T, E]{on: on, cb: cb}

	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		reg.dispatch(Cancelled[T, E]())
		return s
	}
	var rep *State[T, E]
	if s.replay != nil {
		rep = s.replay
		s.replay = nil
	}
	s.regs = append(s.regs, reg)
	s.mu.Unlock()

	// replay armed by a stateful publisher: the first registration call
	// observes the cached state synchronously, before any later publish.
	if rep != nil {
		reg.dispatch(*rep)
	}
	return s
}

// OnNewData registers cb for Data states only.
func (s *Subscriber[T, E]) OnNewData(on executors.Executor, cb func(T)) *Subscriber[T, E] {
	return s.Subscribe(on, func(st State[T, E]) {
		st.Match(cb, nil, nil)
	})
}

// OnError registers cb for Error states only.
func (s *Subscriber[T, E]) OnError(on executors.Executor, cb func(E)) *Subscriber[T, E] {
	return s.Subscribe(on, func(st State[T, E]) {
		st.Match(nil, cb, nil)
	})
}

// OnCancelled registers cb for the terminal Cancelled state only.
func (s *Subscriber[T, E]) OnCancelled(on executors.Executor, cb func()) *Subscriber[T, E] {
	return s.Subscribe(on, func(st State[T, E]) {
		st.Match(nil, nil, cb)
	})
}

// Cancel asks the originating publisher to remove this subscriber and
// deliver it one final Cancelled state. Only the first call has any
// effect.
func (s *Subscriber[T, E]) Cancel() {
	s.cancelOnce.Do(func() {
		if s.canceller != nil {
			s.canceller(s)
		}
	})
}

// IsCancelled reports whether the subscriber has received Cancelled.
func (s *Subscriber[T, E]) IsCancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// retain records a strong reference to the upstream end of an operator
// chain. Dropped on cancellation.
func (s *Subscriber[T, E]) retain(upstream any) {
	s.mu.Lock()
	s.upstream = upstream
	s.mu.Unlock()
}

// receive hands st to the subscriber's serial receive context. Publishers
// call this; it never blocks on callback completion.
func (s *Subscriber[T, E]) receive(st State[T, E]) {
	s.serialContext().Submit(func() { s.deliver(st) })
}

func (s *Subscriber[T, E]) serialContext() *executors.Serial {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.serial == nil {
		s.serial = executors.NewSerial()
	}
	return s.serial
}

// deliver fans st out to every registered callback, in registration order.
// Runs on the serial receive context, so states are never reordered.
func (s *Subscriber[T, E]) deliver(st State[T, E]) {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	regs := make([]stateRegistration[T, E], len(s.regs))
	copy(regs, s.regs)
	if st.IsCancelled() {
		// terminal: drop registrations and the upstream reference so the
		// subscriber can't deliver again and the chain can be collected.
		s.cancelled = true
		s.regs = nil
		s.replay = nil
		s.upstream = nil
	}
	s.mu.Unlock()

	for _, reg := range regs {
		reg.dispatch(st)
	}
}
