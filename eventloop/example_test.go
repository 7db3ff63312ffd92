package eventloop_test

import (
	"fmt"
	"sort"
	"sync"

	"github.com/songo/ardour/eventloop"
)

// Demonstrates the full life of a request buffer: the consumer-to-be
// registers a factory, a producer pre-allocates its outbound buffer off the
// real-time path, and the consumer claims it once running.
func ExampleDirectory() {
	dir := eventloop.NewDirectory()

	// The GUI thread's inbound buffer is a plain slice-backed ring here; in
	// practice this is whatever lock-free structure the dispatch layer uses.
	type ring struct {
		slots []any
	}
	dir.RegisterFactory("gui", eventloop.BufferFactoryFunc(func(capacity uint32) eventloop.RequestBuffer {
		return &ring{slots: make([]any, capacity)}
	}))

	// The audio thread allocates before entering its time-critical section.
	dir.PreRegister("audio", 1024)

	// The GUI thread starts and discovers the buffers prepared for it.
	for _, m := range dir.Lookup("gui") {
		fmt.Printf("%s -> %s: %d slots\n", m.EmitterName, m.TargetName, len(m.Buffer.(*ring).slots))
	}

	// Output:
	// audio -> gui: 1024 slots
}

// Demonstrates invalidation: requests tracked against a destroyed object are
// skipped by the consumer, silently.
func ExampleInvalidator() {
	loop := eventloop.NewLoop("gui")
	eventloop.SetCurrentLoop(loop)
	defer eventloop.SetCurrentLoop(nil)

	// An object that receives dispatched calls; destroying it invalidates
	// every in-flight request referencing it.
	var widget struct {
		eventloop.Destroyable
		name string
	}
	widget.name = "meter"

	rec := eventloop.Invalidator(&widget)

	doomed := eventloop.NewRequest()
	rec.Track(doomed)
	unrelated := eventloop.NewRequest()

	widget.Destroy()

	// The consumer tests validity under the guard, immediately before
	// executing each payload; invalid requests are silent no-ops.
	var results []string
	mu := loop.InvalidationGuard()
	for name, req := range map[string]*eventloop.Request{"doomed": doomed, "unrelated": unrelated} {
		mu.Lock()
		if req.Valid() {
			results = append(results, name+" executed")
		} else {
			results = append(results, name+" skipped")
		}
		req.Unlink()
		mu.Unlock()
	}

	sort.Strings(results)
	for _, r := range results {
		fmt.Println(r)
	}

	// Output:
	// doomed skipped
	// unrelated executed
}

// Demonstrates that pre-registration is safe from many producers at once,
// each producing its own independently retrievable mapping.
func ExampleDirectory_concurrent() {
	dir := eventloop.NewDirectory()
	dir.RegisterFactory("gui", eventloop.BufferFactoryFunc(func(capacity uint32) eventloop.RequestBuffer {
		return make(chan any, capacity)
	}))

	var wg sync.WaitGroup
	for _, name := range []string{"audio", "midi", "butler"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			dir.PreRegister(name, 64)
		}(name)
	}
	wg.Wait()

	mappings := dir.Lookup("gui")
	names := make([]string, 0, len(mappings))
	for _, m := range mappings {
		names = append(names, m.EmitterName)
	}
	sort.Strings(names)
	fmt.Println(names)

	// Output:
	// [audio butler midi]
}
