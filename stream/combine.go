package stream

import "sync"

// Combined2 is the emission of Combine2.
type Combined2[A, B any] struct {
	First  A
	Second B
}

// Combined3 is the emission of Combine3.
type Combined3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Combined4 is the emission of Combine4.
type Combined4[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// Combine2 pairs the latest values of two streams. Nothing is emitted
// until both inputs have produced a value; from then on every new value on
// either input emits a fresh pair. Errors from either input pass through.
// The combined stream cancels once both inputs have cancelled.
func Combine2[A, B any, E error](a *Subscriber[A, E], b *Subscriber[B, E]) *Subscriber[Combined2[A, B], E] {
	pub := NewPublisher[Combined2[A, B], E]()
	out := pub.Subscriber()
	out.retain([]any{a, b})

	var mu sync.Mutex
	var latestA *A
	var latestB *B
	cancelled := 0

	// emit is called with mu held so pairs are published in a consistent
	// order relative to cache updates.
	emit := func() {
		if latestA != nil && latestB != nil {
			pub.Publish(Combined2[A, B]{First: *latestA, Second: *latestB})
		}
	}
	onCancel := func() {
		mu.Lock()
		cancelled++
		last := cancelled == 2
		mu.Unlock()
		if last {
			pub.CancelAll()
		}
	}

	a.Subscribe(nil, func(st State[A, E]) {
		st.Match(
			func(v A) {
				mu.Lock()
				latestA = &v
				emit()
				mu.Unlock()
			},
			func(e E) { pub.PublishError(e) },
			onCancel,
		)
	})
	b.Subscribe(nil, func(st State[B, E]) {
		st.Match(
			func(v B) {
				mu.Lock()
				latestB = &v
				emit()
				mu.Unlock()
			},
			func(e E) { pub.PublishError(e) },
			onCancel,
		)
	})
	return out
}

// Combine3 combines the latest values of three streams.
func Combine3[A, B, C any, E error](a *Subscriber[A, E], b *Subscriber[B, E], c *Subscriber[C, E]) *Subscriber[Combined3[A, B, C], E] {
	ab := Combine2(a, b)
	return Map(Combine2(ab, c), func(v Combined2[Combined2[A, B], C]) Combined3[A, B, C] {
		return Combined3[A, B, C]{
			First:  v.First.First,
			Second: v.First.Second,
			Third:  v.Second,
		}
	})
}

// Combine4 combines the latest values of four streams.
func Combine4[A, B, C, D any, E error](a *Subscriber[A, E], b *Subscriber[B, E], c *Subscriber[C, E], d *Subscriber[D, E]) *Subscriber[Combined4[A, B, C, D], E] {
	ab := Combine2(a, b)
	cd := Combine2(c, d)
	return Map(Combine2(ab, cd), func(v Combined2[Combined2[A, B], Combined2[C, D]]) Combined4[A, B, C, D] {
		return Combined4[A, B, C, D]{
			First:  v.First.First,
			Second: v.First.Second,
			Third:  v.Second.First,
			Fourth: v.Second.Second,
		}
	})
}
