package promise

import (
	"fmt"

	"github.com/pkg/errors"
)

// ExampleNew demonstrates the producer/consumer split of a promise.
func ExampleNew() {
	p := New[string, error]()

	go p.Resolve("hello")

	res := p.Future().Await()
	v, _ := res.Value()
	fmt.Println(v)
	// Output: hello
}

// ExamplePromise_Resolve demonstrates that only the first completion wins.
func ExamplePromise_Resolve() {
	p := New[int, error]()
	p.Resolve(1)
	p.Resolve(2) // silently discarded

	v, _ := p.Future().Value()
	fmt.Println(v)
	// Output: 1
}

// ExampleRejected demonstrates a pre-rejected future.
func ExampleRejected() {
	f := Rejected[string](errors.New("lookup failed"))

	e, _ := f.Err()
	fmt.Println(e)
	// Output: lookup failed
}

// ExampleMerge demonstrates collecting the successes of several futures.
func ExampleMerge() {
	a := Resolved[int, error](1)
	b := Resolved[int, error](2)
	c := Resolved[int, error](3)

	vs, _ := Merge(a, b, c).Await().Value()
	fmt.Println(vs)
	// Output: [1 2 3]
}

// ExampleMapValue demonstrates transforming the success channel.
func ExampleMapValue() {
	f := Resolved[int, error](21)
	doubled := MapValue(f, func(n int) int { return n * 2 })

	v, _ := doubled.Await().Value()
	fmt.Println(v)
	// Output: 42
}

// ExampleFirstFinished demonstrates that a slow success beats an early
// failure.
func ExampleFirstFinished() {
	slow := New[string, error]()
	fast := New[string, error]()

	winner := FirstFinished(slow.Future(), fast.Future())

	fast.Reject(errors.New("early failure"))
	slow.Resolve("slow success")

	v, _ := winner.Await().Value()
	fmt.Println(v)
	// Output: slow success
}
