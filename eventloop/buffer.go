package eventloop

// RequestBuffer is an opaque handle to a pre-allocated channel through which
// one thread hands requests to another. It is produced by a [BufferFactory]
// and consumed by code outside this package; the core only stores and
// returns it.
type RequestBuffer any

// BufferFactory allocates the inbound request buffer for a named consumer
// thread. Implementations must be safe to call from an arbitrary producer
// goroutine, must not block on the eventual consumer's existence, and may
// allocate (which is the point: allocation happens here, off the real-time
// path).
//
// Stateful factories are expected; closures can be adapted via
// [BufferFactoryFunc].
type BufferFactory interface {
	Allocate(capacity uint32) RequestBuffer
}

// BufferFactoryFunc adapts a function to the [BufferFactory] interface.
type BufferFactoryFunc func(capacity uint32) RequestBuffer

// Allocate implements [BufferFactory].
func (x BufferFactoryFunc) Allocate(capacity uint32) RequestBuffer {
	return x(capacity)
}

// ThreadBufferMapping records one pre-allocated request buffer, keyed in the
// directory by the emitter and target thread names.
type ThreadBufferMapping struct {
	// Buffer is the opaque pre-allocated request buffer.
	Buffer RequestBuffer

	// EmitterName is the caller-assigned name of the producing thread.
	EmitterName string

	// TargetName is the caller-assigned name of the consuming thread.
	TargetName string

	// EmitterGoroutine is the ID of the goroutine that allocated the
	// buffer, i.e. the producer that called Directory.PreRegister.
	EmitterGoroutine uint64

	// EmitterThreadID is the OS thread the producer was running on at
	// allocation time, where the platform exposes one (0 otherwise).
	// Meaningful for producers pinned via runtime.LockOSThread; purely
	// diagnostic for everything else.
	EmitterThreadID uint64
}
