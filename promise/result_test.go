package promise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testErr string

func (e testErr) Error() string { return string(e) }

func TestResult_Success(t *testing.T) {
	r := Success[int, testErr](42)

	assert.True(t, r.Succeeded())
	assert.False(t, r.Failed())

	v, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = r.Err()
	assert.False(t, ok)

	assert.Equal(t, "success(42)", r.String())
}

func TestResult_Failure(t *testing.T) {
	r := Failure[int](testErr("boom"))

	assert.False(t, r.Succeeded())
	assert.True(t, r.Failed())

	e, ok := r.Err()
	assert.True(t, ok)
	assert.Equal(t, testErr("boom"), e)

	_, ok = r.Value()
	assert.False(t, ok)

	assert.Equal(t, "failure(boom)", r.String())
}

func TestResult_Match(t *testing.T) {
	var got string
	Success[string, testErr]("yes").Match(
		func(v string) { got = v },
		func(testErr) { t.Fatal("failure branch on a success") },
	)
	assert.Equal(t, "yes", got)

	var gotErr testErr
	Failure[string](testErr("no")).Match(
		func(string) { t.Fatal("success branch on a failure") },
		func(e testErr) { gotErr = e },
	)
	assert.Equal(t, testErr("no"), gotErr)

	// nil callbacks are allowed
	Success[string, testErr]("x").Match(nil, nil)
}
