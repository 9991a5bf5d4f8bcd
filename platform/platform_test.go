package platform

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	wasmhal "github.com/wippyai/wasm-hal"
	"github.com/wippyai/wasm-hal/mem"
)

func newTestAdapter(t *testing.T, cfg Config) *Adapter {
	t.Helper()
	a := New(cfg)
	if err := a.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return a
}

func TestInitDestroyIdempotent(t *testing.T) {
	a := New(Config{HeapSize: 1024})
	for i := 0; i < 3; i++ {
		if err := a.Init(); err != nil {
			t.Fatalf("Init #%d: %v", i, err)
		}
	}
	for i := 0; i < 3; i++ {
		if err := a.Destroy(); err != nil {
			t.Fatalf("Destroy #%d: %v", i, err)
		}
	}
}

func TestDestroyResetsHeap(t *testing.T) {
	a := newTestAdapter(t, Config{HeapSize: 64})

	if _, err := a.Malloc(60); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Malloc(8); err == nil {
		t.Fatal("heap should be exhausted")
	}

	if err := a.Destroy(); err != nil {
		t.Fatal(err)
	}
	if err := a.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Malloc(60); err != nil {
		t.Errorf("Malloc after Destroy/Init: %v", err)
	}
}

func TestMmapZeroedAndAligned(t *testing.T) {
	a := newTestAdapter(t, Config{HeapSize: 4096})

	// Skew the cursor first so alignment is actually exercised.
	if _, err := a.Malloc(8); err != nil {
		t.Fatal(err)
	}

	// Dirty the bytes a future Mmap will occupy, then reset, so zeroing is
	// actually observable.
	ref, err := a.Malloc(256)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := a.Heap().Bytes(ref, 256)
	if err != nil {
		t.Fatal(err)
	}
	mem.Set(buf, 0xCC)
	a.Heap().Reset()

	ref, err = a.Mmap(128)
	if err != nil {
		t.Fatalf("Mmap: %v", err)
	}
	if uint32(ref)%32 != 0 {
		t.Errorf("Mmap offset %d not 32-aligned", ref)
	}
	buf, err = a.Heap().Bytes(ref, 128)
	if err != nil {
		t.Fatal(err)
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("Mmap byte %d = %#x, want 0", i, b)
		}
	}
}

func TestMmapExhaustion(t *testing.T) {
	a := newTestAdapter(t, Config{HeapSize: 64})
	if _, err := a.Mmap(1 << 16); err == nil {
		t.Error("oversized Mmap should fail")
	}
}

func TestReallocDoesNotCopy(t *testing.T) {
	a := newTestAdapter(t, Config{HeapSize: 1024})

	ref, err := a.Malloc(16)
	if err != nil {
		t.Fatal(err)
	}
	old, err := a.Heap().Bytes(ref, 16)
	if err != nil {
		t.Fatal(err)
	}
	mem.Set(old, 0x5A)

	grown, err := a.Realloc(ref, 32)
	if err != nil {
		t.Fatalf("Realloc: %v", err)
	}
	if grown == ref {
		t.Error("Realloc returned the old region")
	}
	fresh, err := a.Heap().Bytes(grown, 32)
	if err != nil {
		t.Fatal(err)
	}
	// The contract is explicit: contents do not follow the allocation.
	if fresh[0] == 0x5A {
		t.Error("Realloc appears to have copied old contents")
	}

	// Realloc to zero behaves like Free: no allocation, no error.
	none, err := a.Realloc(grown, 0)
	if err != nil {
		t.Fatal(err)
	}
	if none != wasmhal.NullRef {
		t.Errorf("Realloc(_, 0) = %d, want NullRef", none)
	}
}

func TestMprotectAlwaysSucceeds(t *testing.T) {
	a := newTestAdapter(t, Config{HeapSize: 256})
	ref, err := a.Mmap(64)
	if err != nil {
		t.Fatal(err)
	}
	for _, prot := range []int{wasmhal.ProtNone, wasmhal.ProtRead, wasmhal.ProtRead | wasmhal.ProtWrite, wasmhal.ProtExec} {
		if err := a.Mprotect(ref, 64, prot); err != nil {
			t.Errorf("Mprotect(prot=%d): %v", prot, err)
		}
	}
}

func TestMutexOpsAreNoOps(t *testing.T) {
	a := newTestAdapter(t, Config{HeapSize: 256})

	m1, err := a.MutexInit()
	if err != nil {
		t.Fatal(err)
	}
	m2, err := a.MutexInit()
	if err != nil {
		t.Fatal(err)
	}
	if m1 == m2 {
		t.Error("mutex tokens should be distinct")
	}

	// Lock/unlock in any order, any number of times: all succeed.
	for _, op := range []func(wasmhal.MutexToken) error{a.MutexLock, a.MutexLock, a.MutexUnlock, a.MutexUnlock, a.MutexDestroy} {
		if err := op(m1); err != nil {
			t.Fatal(err)
		}
	}
}

func TestThreadIdentity(t *testing.T) {
	a := newTestAdapter(t, Config{HeapSize: 256})
	if got := a.SelfThread(); got != SelfThreadID {
		t.Errorf("SelfThread = %d, want %d", got, SelfThreadID)
	}
	if got := a.ThreadStackBoundary(); got != wasmhal.NullRef {
		t.Errorf("ThreadStackBoundary = %d, want NullRef", got)
	}
}

func TestMonotonicClock(t *testing.T) {
	a := newTestAdapter(t, Config{HeapSize: 256})

	t0 := a.BootTimeMicros()
	time.Sleep(2 * time.Millisecond)
	t1 := a.BootTimeMicros()
	if t1 < t0 {
		t.Errorf("boot time went backwards: %d -> %d", t0, t1)
	}
	if t1 == 0 {
		t.Error("monotonic clock stuck at zero")
	}
}

func TestFixedClock(t *testing.T) {
	a := newTestAdapter(t, Config{HeapSize: 256, Clock: FixedClock{}})
	if a.BootTimeMicros() != 0 || a.ThreadCPUTimeMicros() != 0 {
		t.Error("FixedClock must report zero")
	}
}

func TestPrintfThroughLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	a := newTestAdapter(t, Config{HeapSize: 256, Logger: zap.New(core)})

	n := a.Printf("loaded %s with %d exports", "mod.wasm", 3)
	want := "loaded mod.wasm with 3 exports"
	if n != len(want) {
		t.Errorf("Printf = %d, want %d", n, len(want))
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("%d log entries, want 1", len(entries))
	}
	if entries[0].Message != want {
		t.Errorf("logged %q, want %q", entries[0].Message, want)
	}
}

func TestPrintfVerbatimMode(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	a := newTestAdapter(t, Config{
		HeapSize:   256,
		Logger:     zap.New(core),
		FormatMode: mem.ModeVerbatim,
	})

	a.Vprintf("raw %d", []any{42})
	if got := logs.All()[0].Message; got != "raw %d" {
		t.Errorf("verbatim logged %q", got)
	}
}

func TestPageSize(t *testing.T) {
	a := newTestAdapter(t, Config{HeapSize: 256})
	if got := a.PageSize(); got != 4096 {
		t.Errorf("PageSize = %d, want 4096", got)
	}
}
