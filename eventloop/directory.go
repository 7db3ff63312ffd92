package eventloop

import (
	"fmt"
	"sync"

	"github.com/joeycumines/logiface"
)

// bufferSupplier pairs a target thread name with the factory that builds its
// inbound request buffer. A nil factory is the documented "no buffer
// required" marker for that name.
type bufferSupplier struct {
	factory BufferFactory
	name    string
}

// Directory is the process-wide table of pre-allocated request buffers,
// together with the registry of buffer factories feeding it. It lets a
// producer thread allocate its outbound channel to a consumer thread that
// may not exist yet, and lets that consumer claim the channel once it
// starts.
//
// The supplier list and the mapping table share one reader/writer lock; all
// mutation holds it in writer mode. Lock holds are brief (list/map mutation
// and factory invocation only).
//
// A Directory has an explicit lifecycle: the composition root creates it at
// startup via [NewDirectory] and threads it to producers and consumers.
// There is no implicit process-global instance.
type Directory struct {
	// Prevent copying
	_ [0]func()

	logger    *logiface.Logger[logiface.Event]
	hasLogger bool
	onReplace func(ThreadBufferMapping)

	suppliers []bufferSupplier
	mappings  map[string]ThreadBufferMapping
	mu        sync.RWMutex
}

// NewDirectory creates an empty Directory. A panic occurs if invalid options
// are provided.
func NewDirectory(opts ...DirectoryOption) *Directory {
	cfg, err := resolveDirectoryOptions(opts)
	if err != nil {
		panic(fmt.Errorf(`eventloop: invalid directory options: %w`, err))
	}

	return &Directory{
		logger:    cfg.logger,
		hasLogger: cfg.hasLogger,
		onReplace: cfg.onReplace,
		mappings:  make(map[string]ThreadBufferMapping),
	}
}

// log resolves the directory's logger, falling back to the package-level
// logger unless one was configured via WithLogger (including nil).
func (x *Directory) log() *logiface.Logger[logiface.Event] {
	if x.hasLogger {
		return x.logger
	}
	return getLogger()
}

// RegisterFactory records how the inbound request buffer for the named
// target thread is built. It is called by (or on behalf of) the thread that
// will eventually consume requests under that name, typically before the
// thread exists.
//
// A nil factory is valid, and means no buffer is required for this name;
// PreRegister skips such suppliers. Multiple suppliers may share a name
// (e.g. after a thread restart); there is no unregister, and stale suppliers
// remain for the process lifetime.
func (x *Directory) RegisterFactory(targetName string, factory BufferFactory) {
	x.mu.Lock()
	x.suppliers = append(x.suppliers, bufferSupplier{name: targetName, factory: factory})
	x.mu.Unlock()

	x.log().Debug().
		Str("target", targetName).
		Bool("nil_factory", factory == nil).
		Log("eventloop: request buffer factory registered")
}

// PreRegister allocates, on the calling goroutine, one request buffer for
// every registered supplier other than the emitter itself, and stores the
// resulting mappings under the key emitterName + "/" + targetName. Suppliers
// with a nil factory are skipped. This is the only point where buffer
// allocation occurs; producers with real-time constraints must call it
// before entering their time-critical section.
//
// An existing mapping for the same key is silently replaced (the emitting
// thread was killed and recreated under the same name). Cleanup of the
// replaced buffer is the consumer's responsibility: the old entry is
// expected to be lazily discarded when the target thread finds it and sees
// that it is dead. If the mapping is replaced before the target thread ever
// claims it, the old buffer is leaked — an accepted limitation, surfaced via
// a warning log and the optional [WithReplaceHandler] hook.
//
// The factories run with the directory's write lock held, and must not call
// back into the Directory.
func (x *Directory) PreRegister(emitterName string, capacity uint32) {
	goroutine := getGoroutineID()
	thread := currentThreadID()

	x.mu.Lock()
	defer x.mu.Unlock()

	for _, supplier := range x.suppliers {
		if supplier.factory == nil {
			// no factory - no request buffer required or expected
			continue
		}

		if supplier.name == emitterName {
			// no need to register an emitter with itself
			continue
		}

		mapping := ThreadBufferMapping{
			EmitterName:      emitterName,
			TargetName:       supplier.name,
			EmitterGoroutine: goroutine,
			EmitterThreadID:  thread,
			Buffer:           supplier.factory.Allocate(capacity),
		}

		key := emitterName + "/" + supplier.name

		if old, ok := x.mappings[key]; ok {
			x.log().Warning().
				Str("key", key).
				Uint64("old_emitter_goroutine", old.EmitterGoroutine).
				Uint64("new_emitter_goroutine", goroutine).
				Log("eventloop: request buffer mapping replaced; unclaimed old buffer will leak")
			if x.onReplace != nil {
				x.onReplace(old)
			}
		}

		x.mappings[key] = mapping

		x.log().Debug().
			Str("key", key).
			Uint64("capacity", uint64(capacity)).
			Log("eventloop: request buffer pre-registered")
	}
}

// Lookup returns every mapping whose target thread name equals targetName,
// in no particular order, or an empty slice if there are none. A newly
// started consumer thread calls this to discover the buffers producers
// prepared for it.
func (x *Directory) Lookup(targetName string) []ThreadBufferMapping {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var ret []ThreadBufferMapping
	for _, mapping := range x.mappings {
		if mapping.TargetName == targetName {
			ret = append(ret, mapping)
		}
	}
	return ret
}
