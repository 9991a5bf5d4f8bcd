package platform

import (
	"go.uber.org/zap"

	wasmhal "github.com/wippyai/wasm-hal"
	"github.com/wippyai/wasm-hal/arena"
	"github.com/wippyai/wasm-hal/mem"
)

// Arena presets for the two shipped embeddings.
const (
	// EngineHeapSize is the arena capacity for the bytecode engine's heap.
	EngineHeapSize = 256 << 10

	// ToolkitHeapSize is the arena capacity for the UI toolkit's internal
	// allocations.
	ToolkitHeapSize = 64 << 10
)

// SelfThreadID is the fixed id returned for the single logical thread.
const SelfThreadID wasmhal.ThreadID = 1

const (
	pageSize      = 4096
	mmapAlign     = 32
	printfBufSize = 256
)

// Config holds configuration for adapter creation.
type Config struct {
	// HeapSize sets the arena capacity in bytes. 0 means EngineHeapSize.
	HeapSize uint32

	// Clock supplies the time services. Nil means a MonotonicClock started
	// at adapter construction.
	Clock wasmhal.Clock

	// Logger receives Printf output and diagnostics. Nil means the package
	// logger (a no-op unless SetLogger was called).
	Logger *zap.Logger

	// FormatMode selects how Printf treats conversion specifiers.
	// The zero value substitutes; mem.ModeVerbatim restores the original
	// copy-through stub behavior.
	FormatMode mem.Mode
}

// Adapter implements wasmhal.Platform over a fixed-capacity arena.
//
// One Adapter backs one module instance: its arena comes up with the
// instance and is reset only when Destroy tears the instance down. The
// adapter performs no locking; the hosting environment must serialize all
// calls into it.
type Adapter struct {
	heap      *arena.Arena
	clock     wasmhal.Clock
	log       *zap.Logger
	formatter mem.Formatter
	nextMutex uint32
	up        bool
}

// New creates an adapter. The arena is carved out immediately so allocation
// works even before Init; Init exists for the engine's lifecycle contract.
func New(cfg Config) *Adapter {
	size := cfg.HeapSize
	if size == 0 {
		size = EngineHeapSize
	}
	clock := cfg.Clock
	if clock == nil {
		clock = NewMonotonicClock()
	}
	log := cfg.Logger
	if log == nil {
		log = Logger()
	}

	return &Adapter{
		heap:      arena.New(size),
		clock:     clock,
		log:       log,
		formatter: mem.Formatter{Mode: cfg.FormatMode},
	}
}

// Init brings the platform up. Idempotent; always succeeds.
func (a *Adapter) Init() error {
	if a.up {
		return nil
	}
	a.up = true
	a.log.Debug("platform up",
		zap.Uint32("heap_size", a.heap.Cap()),
		zap.Uint32("generation", a.heap.Generation()))
	return nil
}

// Destroy tears the platform down and resets the arena, invalidating every
// outstanding Ref. Idempotent; must only run when no live references remain.
func (a *Adapter) Destroy() error {
	if !a.up {
		return nil
	}
	a.up = false
	a.log.Debug("platform down",
		zap.Uint32("heap_used", a.heap.Len()),
		zap.Uint32("heap_peak", a.heap.Peak()))
	a.heap.Reset()
	return nil
}

// Malloc allocates size bytes from the arena.
func (a *Adapter) Malloc(size uint32) (wasmhal.Ref, error) {
	return a.heap.Alloc(size)
}

// Realloc allocates a fresh region and does NOT copy the old contents.
// The layer tracks no per-allocation sizes, so there is nothing safe to
// copy; callers needing the old bytes must copy them before calling. The
// old region is retired, not reclaimed.
func (a *Adapter) Realloc(ref wasmhal.Ref, size uint32) (wasmhal.Ref, error) {
	if size == 0 {
		a.Free(ref)
		return wasmhal.NullRef, nil
	}
	return a.heap.Alloc(size)
}

// Free is a no-op. The arena reclaims nothing until Destroy.
func (a *Adapter) Free(ref wasmhal.Ref) {}

// Mmap returns a zero-filled region aligned to 32 bytes, the engine's
// requirement for linear memory backing.
func (a *Adapter) Mmap(size uint32) (wasmhal.Ref, error) {
	ref, err := a.heap.AllocAligned(size, mmapAlign)
	if err != nil || ref == wasmhal.NullRef {
		return ref, err
	}
	region, err := a.heap.Bytes(ref, size)
	if err != nil {
		return wasmhal.NullRef, err
	}
	mem.Set(region, 0)
	return ref, nil
}

// Munmap is a no-op, matching Free.
func (a *Adapter) Munmap(ref wasmhal.Ref, size uint32) {}

// Mprotect reports success without enforcing anything. Hardware memory
// isolation is out of scope; the engine's sandboxing must rely on its own
// bytecode-level validation.
func (a *Adapter) Mprotect(ref wasmhal.Ref, size uint32, prot int) error {
	a.log.Debug("mprotect ignored",
		zap.Uint32("ref", uint32(ref)),
		zap.Uint32("size", size),
		zap.Int("prot", prot))
	return nil
}

// MutexInit hands out the next opaque token. Tokens carry no state; every
// operation on them succeeds under the single-threaded contract.
func (a *Adapter) MutexInit() (wasmhal.MutexToken, error) {
	a.nextMutex++
	return wasmhal.MutexToken(a.nextMutex), nil
}

func (a *Adapter) MutexDestroy(m wasmhal.MutexToken) error { return nil }
func (a *Adapter) MutexLock(m wasmhal.MutexToken) error    { return nil }
func (a *Adapter) MutexUnlock(m wasmhal.MutexToken) error  { return nil }

// SelfThread returns the fixed thread id.
func (a *Adapter) SelfThread() wasmhal.ThreadID {
	return SelfThreadID
}

// ThreadStackBoundary reports no stack introspection.
func (a *Adapter) ThreadStackBoundary() wasmhal.Ref {
	return wasmhal.NullRef
}

func (a *Adapter) BootTimeMicros() uint64 {
	return a.clock.BootTimeMicros()
}

func (a *Adapter) ThreadCPUTimeMicros() uint64 {
	return a.clock.ThreadCPUTimeMicros()
}

// Printf renders into a bounded scratch buffer and emits one log line at
// Info level. Returns the number of bytes produced, excluding the NUL.
func (a *Adapter) Printf(format string, args ...any) int {
	var buf [printfBufSize]byte
	n := a.formatter.Format(buf[:], format, args...)
	a.log.Info(string(buf[:n]))
	return n
}

// Vprintf is Printf with pre-collected arguments.
func (a *Adapter) Vprintf(format string, args []any) int {
	return a.Printf(format, args...)
}

// FlushICache is a no-op until a host integration needs cache coherency.
func (a *Adapter) FlushICache(ref wasmhal.Ref, size uint32) {}

// FlushDCache is a no-op until a host integration needs cache coherency.
func (a *Adapter) FlushDCache() {}

// PageSize returns the page granularity reported to the engine.
func (a *Adapter) PageSize() int {
	return pageSize
}

// Heap exposes the adapter's arena for inspection (usage stats, direct
// access to allocated regions).
func (a *Adapter) Heap() *arena.Arena {
	return a.heap
}

var _ wasmhal.Platform = (*Adapter)(nil)
