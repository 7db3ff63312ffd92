package eventloop

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestDestroyableFiresInOrder(t *testing.T) {
	var obj Destroyable
	var order []int
	obj.AddDestroyNotify(func() { order = append(order, 1) })
	obj.AddDestroyNotify(func() { order = append(order, 2) })
	obj.AddDestroyNotify(func() { order = append(order, 3) })

	obj.Destroy()

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("callbacks fired out of order: %v", order)
	}
	if !obj.Destroyed() {
		t.Error("Destroyed() false after Destroy")
	}
}

func TestDestroyableFiresOnce(t *testing.T) {
	var obj Destroyable
	var count int
	obj.AddDestroyNotify(func() { count++ })

	obj.Destroy()
	obj.Destroy()

	if count != 1 {
		t.Errorf("callback fired %d times, want 1", count)
	}
}

func TestDestroyableLateRegistration(t *testing.T) {
	var obj Destroyable
	obj.Destroy()

	// Registration after destruction fires immediately.
	var fired bool
	obj.AddDestroyNotify(func() { fired = true })
	if !fired {
		t.Error("callback registered after Destroy did not fire immediately")
	}
}

func TestDestroyableNilCallback(t *testing.T) {
	var obj Destroyable
	obj.AddDestroyNotify(nil)
	obj.Destroy() // must not panic
}

func TestDestroyableConcurrentDestroy(t *testing.T) {
	var obj Destroyable
	var count atomic.Int32
	obj.AddDestroyNotify(func() { count.Add(1) })

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(10)
	for i := 0; i < 10; i++ {
		go func() {
			defer wg.Done()
			<-start
			obj.Destroy()
		}()
	}

	close(start)
	wg.Wait()

	if got := count.Load(); got != 1 {
		t.Errorf("callback fired %d times under concurrent Destroy, want 1", got)
	}
}
