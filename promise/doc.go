// Package promise provides a single-shot, type-safe completion primitive:
// a Promise/Future pair parameterized over a success type T and an error
// type E.
//
// The Promise is the producer's handle: it can transition the shared
// completion state from pending to resolved or rejected exactly once.
// Completing an already-complete promise is a silent no-op, never an error.
//
// The Future is the consumer's handle: callbacks registered with OnSuccess,
// OnFailure and Finally fire when the promise completes with the matching
// outcome, in the order they were registered, each exactly once. A callback
// registered after completion fires immediately on its execution context
// instead of being stored.
//
// Basic usage:
//
//	p := promise.New[string, error]()
//	p.Future().OnSuccess(nil, func(s string) {
//	    fmt.Println("got", s)
//	})
//	p.Resolve("hello")
//
// Typed error domains come from E: any type satisfying the error interface
// can be the failure channel, and the compiler checks every consumption
// site. The package itself never synthesizes errors.
package promise
