// Package weakref provides a collection of non-owning references.
//
// A Collection never extends the lifetime of the items inserted into it:
// once an item becomes unreachable elsewhere it is eligible for garbage
// collection, and its slot is skipped (and physically removed) on the next
// traversal.
//
// The collection is not synchronized. The stream package, its only consumer,
// mutates and traverses it under the owning publisher's lock.
package weakref

import "weak"

// Collection holds weak pointers to items of type T.
// The zero value is ready to use.
type Collection[T any] struct {
	entries []weak.Pointer[T]
}

// Insert appends item to the collection without taking ownership of it.
func (c *Collection[T]) Insert(item *T) {
	c.entries = append(c.entries, weak.Make(item))
}

// ForEach visits every still-alive item in insertion order.
// Dead slots are dropped as a side effect.
func (c *Collection[T]) ForEach(fn func(*T)) {
	c.compact(func(item *T) bool {
		fn(item)
		return false
	})
}

// PruneIf removes every alive item for which pred returns true.
// Dead slots are dropped as a side effect.
func (c *Collection[T]) PruneIf(pred func(*T) bool) {
	c.compact(pred)
}

// RemoveAll empties the collection and returns the items that were still
// alive, in insertion order.
func (c *Collection[T]) RemoveAll() []*T {
	var alive []*T
	for _, e := range c.entries {
		if item := e.Value(); item != nil {
			alive = append(alive, item)
		}
	}
	c.entries = nil
	return alive
}

// Len returns the number of still-alive items.
func (c *Collection[T]) Len() int {
	n := 0
	c.compact(func(*T) bool {
		n++
		return false
	})
	return n
}

// compact visits alive items and rewrites the slice in place, keeping only
// alive items for which remove returned false.
func (c *Collection[T]) compact(remove func(*T) bool) {
	kept := c.entries[:0]
	for _, e := range c.entries {
		item := e.Value()
		if item == nil || remove(item) {
			continue
		}
		kept = append(kept, e)
	}
	// zero the tail so dropped weak pointers don't linger
	for i := len(kept); i < len(c.entries); i++ {
		c.entries[i] = weak.Pointer[T]{}
	}
	c.entries = kept
}
