package stream

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatefulPublisher_ReplaysSynchronously(t *testing.T) {
	sp := NewStatefulPublisher[int, testErr]()
	sp.Publish(5)

	sub := sp.Subscriber()

	// the first registration observes the cached state before returning,
	// with no scheduling involved
	var got []int
	sub.OnNewData(nil, func(v int) { got = append(got, v) })
	assert.Equal(t, []int{5}, got)
	runtime.KeepAlive(sub)
}

func TestStatefulPublisher_ReplayPrecedesLaterStates(t *testing.T) {
	sp := NewStatefulPublisher[int, testErr]()
	sp.Publish(5)

	sub := sp.Subscriber()
	ch := make(chan int, 8)
	sub.OnNewData(nil, func(v int) { ch <- v })

	sp.Publish(6)
	assert.Equal(t, []int{5, 6}, drain(t, ch, 2))
	runtime.KeepAlive(sub)
}

func TestStatefulPublisher_OnlyFirstRegistrationReplays(t *testing.T) {
	sp := NewStatefulPublisher[int, testErr]()
	sp.Publish(5)

	sub := sp.Subscriber()
	first := make(chan int, 8)
	second := make(chan int, 8)
	sub.OnNewData(nil, func(v int) { first <- v })
	sub.OnNewData(nil, func(v int) { second <- v })

	assert.Equal(t, []int{5}, drain(t, first, 1))
	assertSilent(t, second)

	sp.Publish(6)
	assert.Equal(t, []int{6}, drain(t, first, 1))
	assert.Equal(t, []int{6}, drain(t, second, 1))
	runtime.KeepAlive(sub)
}

func TestStatefulPublisher_NoReplayBeforeFirstPublish(t *testing.T) {
	sp := NewStatefulPublisher[int, testErr]()

	sub := sp.Subscriber()
	ch := make(chan int, 8)
	sub.OnNewData(nil, func(v int) { ch <- v })
	assertSilent(t, ch)
	runtime.KeepAlive(sub)
}

func TestStatefulPublisher_ErrorStateIsReplayed(t *testing.T) {
	sp := NewStatefulPublisher[int, testErr]()
	sp.PublishError(testErr("stale"))

	sub := sp.Subscriber()
	var got []testErr
	sub.OnError(nil, func(e testErr) { got = append(got, e) })
	assert.Equal(t, []testErr{"stale"}, got)
	runtime.KeepAlive(sub)
}

func TestStatefulPublisher_Caches(t *testing.T) {
	sp := NewStatefulPublisher[int, testErr]()

	_, ok := sp.LastValue()
	assert.False(t, ok)
	_, ok = sp.LastState()
	assert.False(t, ok)

	sp.Publish(5)
	v, ok := sp.LastValue()
	require.True(t, ok)
	assert.Equal(t, 5, v)

	// an error updates the state cache but never the value cache
	sp.PublishError(testErr("e"))
	v, _ = sp.LastValue()
	assert.Equal(t, 5, v)
	st, ok := sp.LastState()
	require.True(t, ok)
	assert.Equal(t, KindError, st.Kind())
}

func TestStatefulPublisher_ReplaySuppressedAfterCancel(t *testing.T) {
	sp := NewStatefulPublisher[int, testErr]()
	sp.Publish(5)
	sp.CancelAll()

	sub := sp.Subscriber()
	assert.True(t, sub.IsCancelled())

	var sawData bool
	var sawCancelled bool
	sub.Subscribe(nil, func(st State[int, testErr]) {
		if _, ok := st.Value(); ok {
			sawData = true
		}
		if st.IsCancelled() {
			sawCancelled = true
		}
	})
	assert.False(t, sawData, "stale value replayed after cancellation")
	assert.True(t, sawCancelled)

	// the value cache intentionally survives cancellation
	v, ok := sp.LastValue()
	require.True(t, ok)
	assert.Equal(t, 5, v)
	st, _ := sp.LastState()
	assert.True(t, st.IsCancelled())
}

func TestStatefulPublisher_PublishAfterCancelDoesNotDisturbCache(t *testing.T) {
	sp := NewStatefulPublisher[int, testErr]()
	sp.Publish(5)
	sp.CancelAll()

	sp.Publish(9)
	v, _ := sp.LastValue()
	assert.Equal(t, 5, v)
	st, _ := sp.LastState()
	assert.True(t, st.IsCancelled())
}
