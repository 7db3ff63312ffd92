package eventloop

import (
	"weak"
)

// Request is the per-request state this package tracks on behalf of the
// dispatch layer: a validity flag, plus a back reference to the
// invalidation record the request is enrolled in, if any. The payload
// itself is opaque to this package; embed or wrap Request in whatever the
// marshaling layer queues.
//
// Both fields are mutated only while the owning loop's invalidation guard
// is held. The flag transitions from valid to invalid exactly once, and
// never reverts.
type Request struct {
	valid  bool
	record *InvalidationRecord
}

// NewRequest creates a request in the valid state, not yet enrolled in any
// invalidation record.
func NewRequest() *Request {
	return &Request{valid: true}
}

// Valid reports whether the request may still be executed.
//
// The consumer must call this with the owning loop's [Loop.InvalidationGuard]
// held, immediately before executing the request's payload, and must treat
// false as a silent no-op: an invalidation racing with normal processing is
// expected and benign, never an error.
func (x *Request) Valid() bool {
	return x.valid
}

// Unlink detaches the request from its invalidation record, if any, so a
// later invalidation sweep does not touch a request that has already been
// executed and recycled. The consumer calls this, with the owning loop's
// invalidation guard held, after executing (or skipping) the request.
func (x *Request) Unlink() {
	if x.record != nil {
		delete(x.record.requests, x)
		x.record = nil
	}
}

// InvalidationRecord is the set of pending requests tied to one external
// object, canceled en masse when that object is destroyed. It is owned
// exclusively by the object it is attached to, and is processed at most
// once: after [InvalidationRecord.Invalidate] returns, the record must not
// be used again.
type InvalidationRecord struct {
	loop     weak.Pointer[Loop]
	requests map[*Request]struct{}
}

// Trackable is the notify-before-destroy observer contract. An object that
// wants requests referencing it to be invalidated on destruction implements
// Trackable and is handed to [Invalidator]; it must run every registered
// callback exactly once, as the first step of its teardown.
//
// [Destroyable] is an embeddable implementation.
type Trackable interface {
	// AddDestroyNotify registers a callback to run when the object is
	// destroyed. Callbacks run exactly once, before the object's state is
	// torn down.
	AddDestroyNotify(callback func())
}

// NewInvalidationRecord creates a record owned by the given loop. The
// record holds only a weak reference: it never keeps the loop alive, and
// invalidation after the loop is gone degrades to a no-op. A panic occurs
// if loop is nil.
func NewInvalidationRecord(loop *Loop) *InvalidationRecord {
	if loop == nil {
		panic(`eventloop: nil loop`)
	}
	return &InvalidationRecord{
		loop:     weak.Make(loop),
		requests: make(map[*Request]struct{}),
	}
}

// Invalidator creates an invalidation record owned by the calling
// goroutine's loop, and registers the record's Invalidate method with obj,
// to run when obj is destroyed. This is the standard way for an object that
// receives dispatched calls to arrange for its in-flight requests to be
// invalidated.
//
// A panic occurs if obj is nil, or if no loop is bound to the calling
// goroutine (see [SetCurrentLoop]).
func Invalidator(obj Trackable) *InvalidationRecord {
	if obj == nil {
		panic(`eventloop: nil trackable`)
	}
	loop := CurrentLoop()
	if loop == nil {
		panic(`eventloop: no loop bound to the calling goroutine`)
	}

	rec := NewInvalidationRecord(loop)
	obj.AddDestroyNotify(rec.Invalidate)
	return rec
}

// Track enrolls req in the record, setting the request's back reference.
// It must be called on the goroutine that owns the record's loop, or under
// equivalent synchronization; the owning loop's invalidation guard is taken
// internally.
//
// Tracking against a record whose loop has already been collected is a
// no-op: such a record can never be invalidated, and the request is left
// untracked. A panic occurs if the record has already been invalidated.
func (x *InvalidationRecord) Track(req *Request) {
	loop := x.loop.Value()
	if loop == nil {
		return
	}

	mu := loop.InvalidationGuard()
	mu.Lock()
	defer mu.Unlock()

	if x.requests == nil {
		panic(`eventloop: track on an invalidated record`)
	}

	x.requests[req] = struct{}{}
	req.record = x
}

// Invalidate marks every tracked request invalid and clears its back
// reference, under the owning loop's invalidation guard, then discards the
// record's state. If the owning loop is already gone, the record is
// discarded without further action.
//
// This is the single entry point invoked by the destruction-notification
// mechanism, exactly once per record; the record must not outlive the call,
// and invoking it twice on the same record is undefined by contract.
func (x *InvalidationRecord) Invalidate() {
	loop := x.loop.Value()
	if loop == nil {
		x.requests = nil
		return
	}

	mu := loop.InvalidationGuard()
	mu.Lock()
	n := len(x.requests)
	for req := range x.requests {
		req.valid = false
		req.record = nil
	}
	x.requests = nil
	mu.Unlock()

	getLogger().Debug().
		Str("loop", loop.Name()).
		Int("requests", n).
		Log("eventloop: invalidation record processed")
}
