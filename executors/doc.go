// Package executors provides the execution-context abstraction used by the
// promise and stream packages to decide where a callback runs.
//
// Implementations:
//   - Go: one new goroutine per job
//   - Immediate: runs the job inline on the submitting goroutine
//   - Serial: FIFO queue drained by at most one goroutine at a time
//   - Pool: goroutines bounded by a fixed worker limit
//
// A Serial executor is what the promise and stream types create internally
// when a caller does not supply an executor of their own: it preserves
// submission order, which is what the per-instance ordering guarantees of
// those packages are built on.
//
// None of the executors recover from panics. A callback that panics takes
// its executing goroutine down with it.
package executors
