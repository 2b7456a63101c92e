package weakref

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type item struct {
	n int
}

func TestCollection_InsertAndForEach(t *testing.T) {
	var c Collection[item]

	a, b := &item{n: 1}, &item{n: 2}
	c.Insert(a)
	c.Insert(b)

	var got []int
	c.ForEach(func(it *item) { got = append(got, it.n) })
	assert.Equal(t, []int{1, 2}, got)
}

func TestCollection_PruneIf(t *testing.T) {
	var c Collection[item]

	items := []*item{{n: 1}, {n: 2}, {n: 3}, {n: 4}}
	for _, it := range items {
		c.Insert(it)
	}

	c.PruneIf(func(it *item) bool { return it.n%2 == 0 })

	var got []int
	c.ForEach(func(it *item) { got = append(got, it.n) })
	assert.Equal(t, []int{1, 3}, got)
	runtime.KeepAlive(items)
}

func TestCollection_RemoveAll(t *testing.T) {
	var c Collection[item]

	a, b := &item{n: 1}, &item{n: 2}
	c.Insert(a)
	c.Insert(b)

	removed := c.RemoveAll()
	require.Len(t, removed, 2)
	assert.Same(t, a, removed[0])
	assert.Same(t, b, removed[1])
	assert.Zero(t, c.Len())

	// a second drain finds nothing
	assert.Empty(t, c.RemoveAll())
}

func TestCollection_DoesNotKeepItemsAlive(t *testing.T) {
	var c Collection[item]

	kept := &item{n: 1}
	c.Insert(kept)
	c.Insert(&item{n: 2})

	// the second item has no strong references left; after GC its slot
	// must be skipped. Two cycles because weak pointers are cleared in
	// the cycle that collects the referent.
	runtime.GC()
	runtime.GC()

	var got []int
	c.ForEach(func(it *item) { got = append(got, it.n) })
	assert.Equal(t, []int{1}, got)
	runtime.KeepAlive(kept)
}
