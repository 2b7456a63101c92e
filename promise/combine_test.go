package promise

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type otherErr struct {
	code int
}

func (e otherErr) Error() string { return "code " + strconv.Itoa(e.code) }

func TestMapValue(t *testing.T) {
	p := New[int, testErr]()
	mapped := MapValue(p.Future(), strconv.Itoa)

	p.Resolve(42)

	v, ok := mapped.Await().Value()
	require.True(t, ok)
	assert.Equal(t, "42", v)
}

func TestMapValue_FailurePassesThrough(t *testing.T) {
	p := New[int, testErr]()
	mapped := MapValue(p.Future(), func(int) string {
		t.Error("transform ran on a failure")
		return ""
	})

	p.Reject(testErr("bad"))

	e, ok := mapped.Await().Err()
	require.True(t, ok)
	assert.Equal(t, testErr("bad"), e)
}

func TestMapError(t *testing.T) {
	p := New[int, testErr]()
	mapped := MapError(p.Future(), func(e testErr) otherErr {
		return otherErr{code: len(e)}
	})

	p.Reject(testErr("four"))

	e, ok := mapped.Await().Err()
	require.True(t, ok)
	assert.Equal(t, otherErr{code: 4}, e)
}

func TestMapError_SuccessPassesThrough(t *testing.T) {
	p := New[int, testErr]()
	mapped := MapError(p.Future(), func(testErr) otherErr {
		t.Error("transform ran on a success")
		return otherErr{}
	})

	p.Resolve(3)

	v, ok := mapped.Await().Value()
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestMapResult(t *testing.T) {
	p := New[int, testErr]()
	mapped := MapResult(p.Future(), func(res Result[int, testErr]) Result[string, otherErr] {
		if v, ok := res.Value(); ok {
			return Success[string, otherErr](strconv.Itoa(v))
		}
		return Failure[string](otherErr{code: 1})
	})

	p.Resolve(8)

	v, ok := mapped.Await().Value()
	require.True(t, ok)
	assert.Equal(t, "8", v)
}

func TestFlatMapSuccess_SequencesFutures(t *testing.T) {
	first := New[int, testErr]()
	second := New[string, testErr]()

	started := make(chan int, 1)
	chained := FlatMapSuccess(first.Future(), func(v int) *Future[string, testErr] {
		started <- v
		return second.Future()
	})

	select {
	case <-started:
		t.Fatal("second future started before the first completed")
	case <-time.After(10 * time.Millisecond):
	}

	first.Resolve(1)
	assert.Equal(t, 1, <-started)

	second.Resolve("chained")
	v, ok := chained.Await().Value()
	require.True(t, ok)
	assert.Equal(t, "chained", v)
}

func TestFlatMapSuccess_ErrorShortCircuits(t *testing.T) {
	first := New[int, testErr]()
	chained := FlatMapSuccess(first.Future(), func(int) *Future[string, testErr] {
		t.Error("next started on a failure")
		return Resolved[string, testErr]("")
	})

	first.Reject(testErr("stop"))

	e, ok := chained.Await().Err()
	require.True(t, ok)
	assert.Equal(t, testErr("stop"), e)
}

func TestFlatMap_ReceivesTerminalResult(t *testing.T) {
	first := New[int, testErr]()
	chained := FlatMap(first.Future(), func(res Result[int, testErr]) *Future[string, testErr] {
		if res.Failed() {
			return Resolved[string, testErr]("recovered")
		}
		return Resolved[string, testErr]("ok")
	})

	first.Reject(testErr("x"))

	v, ok := chained.Await().Value()
	require.True(t, ok)
	assert.Equal(t, "recovered", v)
}

func TestMerge_AllSucceed(t *testing.T) {
	p1 := New[int, testErr]()
	p2 := New[int, testErr]()
	p3 := New[int, testErr]()

	merged := Merge(p1.Future(), p2.Future(), p3.Future())

	// resolve out of order; the collected slice follows input order
	p2.Resolve(2)
	p3.Resolve(3)
	p1.Resolve(1)

	v, ok := merged.Await().Value()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, v)
}

func TestMerge_FirstErrorWinsWithoutWaiting(t *testing.T) {
	p1 := New[int, testErr]()
	p2 := New[int, testErr]()
	p3 := New[int, testErr]()

	merged := Merge(p1.Future(), p2.Future(), p3.Future())

	// the first failure rejects the merge while the others are still pending
	p1.Reject(testErr("E1"))

	e, ok := merged.Await().Err()
	require.True(t, ok)
	assert.Equal(t, testErr("E1"), e)

	// later failures change nothing
	p2.Reject(testErr("E2"))
	p3.Reject(testErr("E2"))
	e, _ = merged.Await().Err()
	assert.Equal(t, testErr("E1"), e)
}

func TestMerge_Empty(t *testing.T) {
	merged := Merge[int, testErr]()
	res := merged.Await()
	v, ok := res.Value()
	require.True(t, ok)
	assert.Empty(t, v)
}

func TestFirstFinished_SlowSuccessBeatsEarlyFailure(t *testing.T) {
	fast := New[int, testErr]()
	slow := New[int, testErr]()

	first := FirstFinished(fast.Future(), slow.Future())

	fast.Reject(testErr("early"))
	assert.False(t, first.IsComplete())

	slow.Resolve(11)

	v, ok := first.Await().Value()
	require.True(t, ok)
	assert.Equal(t, 11, v)
}

func TestFirstFinished_AllFailedRejectsWithEarliest(t *testing.T) {
	p1 := New[int, testErr]()
	p2 := New[int, testErr]()

	first := FirstFinished(p1.Future(), p2.Future())

	p2.Reject(testErr("second-registered-but-first-to-fail"))
	p1.Reject(testErr("later"))

	e, ok := first.Await().Err()
	require.True(t, ok)
	assert.Equal(t, testErr("second-registered-but-first-to-fail"), e)
}

func TestFirstFinished_FirstSuccessWins(t *testing.T) {
	p1 := New[int, testErr]()
	p2 := New[int, testErr]()

	first := FirstFinished(p1.Future(), p2.Future())

	p2.Resolve(2)
	p1.Resolve(1)

	v, ok := first.Await().Value()
	require.True(t, ok)
	assert.Equal(t, 2, v)
}
