// Package stream provides a multi-shot, type-safe event-stream primitive:
// a Publisher/Subscriber pair parameterized over a value type T and an
// error type E.
//
// A Publisher broadcasts states to its subscribers. The unit of emission is
// State, a three-way union of Data, Error and Cancelled; Cancelled is the
// terminal "no more events" marker. Subscribers are created only by calling
// Subscriber on a publisher, and are held by it weakly: a subscriber the
// consumer no longer references is garbage collected and pruned, never kept
// alive by its publisher.
//
//	pub := stream.NewPublisher[int, error]()
//	sub := pub.Subscriber()
//	sub.OnNewData(nil, func(n int) { fmt.Println(n) })
//	pub.Publish(1)
//	pub.CancelAll()
//
// Every subscriber serializes its own deliveries through one internal
// serial execution context, so all of its callbacks observe states in
// emission order. Publishing never blocks on subscriber callbacks.
//
// Cancellation is terminal and idempotent, whether it arrives via
// Subscriber.Cancel, Publisher.CancelAll, or the publisher becoming
// unreachable. After a subscriber receives Cancelled it drops its callback
// registrations and its upstream reference and delivers nothing further.
//
// The operator functions (Map, Filter, Combine2, Merge, Scan, ...) are
// built purely from the public surface: each constructs a new publisher,
// registers callbacks on the upstream subscriber, and forwards transformed
// states. A derived subscriber structurally retains its upstream, so
// holding the end of an operator chain keeps the whole chain alive.
package stream
