// Package eventloop provides the cross-thread request-dispatch coordination
// layer used to hand deferred work between named event-loop goroutines
// without allocating on a real-time-sensitive hot path, and to safely
// invalidate in-flight requests whose target object is being destroyed.
//
// # Architecture
//
// Four cooperating pieces make up the core:
//
//   - Per-goroutine loop binding ([SetCurrentLoop], [CurrentLoop]): a weak,
//     non-owning association between a goroutine and the [Loop] it hosts.
//   - Buffer factory registry ([Directory.RegisterFactory]): consumers
//     declare, by thread name, how their inbound request buffer is built.
//   - Buffer directory ([Directory.PreRegister], [Directory.Lookup]):
//     producers eagerly allocate one buffer per registered consumer, keyed
//     by "emitter/target", before the consumer goroutine may even exist.
//     The consumer later discovers the buffers prepared for it.
//   - Invalidation tracking ([InvalidationRecord], [Request]): requests that
//     reference an external object are marked invalid, under the owning
//     loop's guard, when that object announces its destruction.
//
// The request buffer itself is opaque to this package ([RequestBuffer]); the
// run loop that drains it, and the marshaling layer that fills it, live
// elsewhere.
//
// # Real-time discipline
//
// [Directory.PreRegister] is the only point at which buffer allocation
// occurs, and it runs on the emitting goroutine. Call it once, early, before
// entering any time-critical section; nothing on the consumer's processing
// path allocates.
//
// # Thread Safety
//
// All exported operations are safe under true parallel execution. The
// directory's supplier list and mapping table share one reader/writer lock;
// each loop carries its own invalidation mutex, so invalidating requests
// against one loop never blocks unrelated loops.
//
// # Usage
//
//	dir := eventloop.NewDirectory()
//
//	// The consumer-to-be declares how its inbound buffer is built.
//	dir.RegisterFactory("gui", eventloop.BufferFactoryFunc(func(capacity uint32) eventloop.RequestBuffer {
//	    return newRequestRing(capacity)
//	}))
//
//	// A producer allocates its outbound buffers up front, off the RT path.
//	dir.PreRegister("audio", 1024)
//
//	// Once the consumer goroutine starts, it claims its buffers.
//	for _, m := range dir.Lookup("gui") {
//	    adoptInbound(m)
//	}
package eventloop
