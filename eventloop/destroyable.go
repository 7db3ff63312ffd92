package eventloop

import (
	"sync"
)

// Destroyable is an embeddable implementation of [Trackable]: a
// notify-before-destroy callback list, fired exactly once by [Destroyable.Destroy].
//
// Objects that receive dispatched calls embed Destroyable and call Destroy
// as the first step of their teardown, so that any invalidation records
// created via [Invalidator] fire before the object's state goes away.
//
// Thread Safety: safe for concurrent use; Destroy may be called from any
// goroutine, and only the first call has any effect.
type Destroyable struct {
	callbacks []func()
	mu        sync.Mutex
	destroyed bool
}

// AddDestroyNotify implements [Trackable].
//
// If the object is already destroyed at the time of registration, the
// callback is invoked immediately. Callbacks otherwise run in registration
// order, when Destroy is called. nil callbacks are ignored.
func (x *Destroyable) AddDestroyNotify(callback func()) {
	if callback == nil {
		return
	}

	x.mu.Lock()
	if x.destroyed {
		x.mu.Unlock()
		callback()
		return
	}
	x.callbacks = append(x.callbacks, callback)
	x.mu.Unlock()
}

// Destroyed reports whether Destroy has been called.
func (x *Destroyable) Destroyed() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.destroyed
}

// Destroy fires every registered callback, in registration order, then
// drops them. Subsequent calls are no-ops.
//
// Callbacks run outside the internal lock, so they may themselves interact
// with the Destroyable (though re-registering from a callback will fire
// immediately, the object being destroyed by then).
func (x *Destroyable) Destroy() {
	x.mu.Lock()
	if x.destroyed {
		x.mu.Unlock()
		return
	}
	x.destroyed = true
	callbacks := x.callbacks
	x.callbacks = nil
	x.mu.Unlock()

	for _, callback := range callbacks {
		callback()
	}
}
