package eventloop

import (
	"runtime"
	"sync"
	"weak"
)

// Loop is the identity of an event loop hosted by a single goroutine. It
// carries the loop's name and the mutex that serializes request invalidation
// against the loop's own processing. The run loop that actually drains
// request buffers is out of scope for this package; implementations are
// expected to embed or own a Loop.
type Loop struct {
	// Prevent copying
	_ [0]func()

	name string

	// invalidation serializes mutation of tracked request state against
	// the loop's consumption path. See InvalidationGuard.
	invalidation sync.Mutex
}

// NewLoop creates a loop identity with the given human-readable name.
//
// The name is how producer threads address this loop in the buffer
// directory. Two live loops sharing a name produce undefined directory
// behavior; this is not validated here.
func NewLoop(name string) *Loop {
	return &Loop{name: name}
}

// Name returns the loop's human-readable name.
func (x *Loop) Name() string {
	return x.name
}

// InvalidationGuard returns the mutex that protects the valid flag and
// record back reference of every request tracked against this loop.
//
// The request-execution collaborator must hold this guard while testing
// [Request.Valid] and executing the request's payload, so that execution
// and invalidation of a single request are mutually exclusive. Acquisitions
// are expected to be brief; nothing under this guard blocks on I/O.
func (x *Loop) InvalidationGuard() *sync.Mutex {
	return &x.invalidation
}

// threadLoops associates goroutine IDs with the loop each goroutine hosts.
// Entries are weak: the binding never keeps a loop alive, and a loop
// collected while still bound is observed as absent. Dead entries are
// reclaimed lazily, on lookup.
var threadLoops = struct {
	sync.RWMutex
	data map[uint64]weak.Pointer[Loop]
}{data: make(map[uint64]weak.Pointer[Loop])}

// CurrentLoop returns the loop bound to the calling goroutine, or nil if
// none is bound (or the bound loop has been garbage collected). No side
// effects beyond lazy reclamation of dead bindings.
func CurrentLoop() *Loop {
	id := getGoroutineID()

	threadLoops.RLock()
	wp, ok := threadLoops.data[id]
	threadLoops.RUnlock()

	if !ok {
		return nil
	}

	loop := wp.Value()
	if loop == nil {
		// The loop was collected without the host clearing its binding.
		// Reclaim the entry, re-checking under the write lock.
		threadLoops.Lock()
		if cur, ok := threadLoops.data[id]; ok && cur.Value() == nil {
			delete(threadLoops.data, id)
		}
		threadLoops.Unlock()
	}

	return loop
}

// SetCurrentLoop binds loop to the calling goroutine, replacing any previous
// binding. Passing nil clears the binding.
//
// The binding does not take ownership: the host goroutine must clear it
// (pass nil) before the loop is torn down, and before the goroutine exits,
// or the stale entry lingers until lazily reclaimed. At most one loop is
// bound per goroutine at any instant.
func SetCurrentLoop(loop *Loop) {
	id := getGoroutineID()

	threadLoops.Lock()
	defer threadLoops.Unlock()

	if loop == nil {
		delete(threadLoops.data, id)
		return
	}
	threadLoops.data[id] = weak.Make(loop)
}

// getGoroutineID returns the current goroutine's ID.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] >= '0' && buf[i] <= '9' {
			id = id*10 + uint64(buf[i]-'0')
		} else {
			break
		}
	}
	return id
}
