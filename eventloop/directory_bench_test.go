package eventloop

import (
	"testing"
)

func BenchmarkLookup(b *testing.B) {
	dir := NewDirectory()
	dir.RegisterFactory("gui", capacityFactory())
	for _, name := range []string{"audio", "midi", "butler", "osc"} {
		dir.PreRegister(name, 64)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if len(dir.Lookup("gui")) != 4 {
			b.Fatal("unexpected mapping count")
		}
	}
}

func BenchmarkCurrentLoop(b *testing.B) {
	loop := NewLoop("bench")
	SetCurrentLoop(loop)
	defer SetCurrentLoop(nil)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if CurrentLoop() != loop {
			b.Fatal("binding lost")
		}
	}
}

func BenchmarkRequestValidityCheck(b *testing.B) {
	loop := NewLoop("bench")
	rec := NewInvalidationRecord(loop)
	req := NewRequest()
	rec.Track(req)

	mu := loop.InvalidationGuard()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mu.Lock()
		if !req.Valid() {
			b.Fatal("request invalidated")
		}
		mu.Unlock()
	}
}
