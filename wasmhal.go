package wasmhal

// Ref is an allocation handle: a byte offset into the owning arena's buffer.
// A Ref carries no size metadata; callers track sizes themselves.
type Ref uint32

// NullRef is the zero handle. Allocators never return it for a non-empty
// allocation, so it doubles as the "no memory" sentinel.
const NullRef Ref = 0

// Allocator hands out regions of a fixed-capacity arena. Implementations
// advance a monotonic cursor and reclaim memory only through Reset.
type Allocator interface {
	// Alloc returns an 8-byte-aligned region of size bytes. Size 0 returns
	// NullRef with no error.
	Alloc(size uint32) (Ref, error)

	// AllocAligned returns a region whose offset is a multiple of align.
	// Align must be a power of two.
	AllocAligned(size, align uint32) (Ref, error)

	// AllocZeroed allocates count*elemSize bytes and zero-fills them.
	// The product is overflow-checked.
	AllocZeroed(count, elemSize uint32) (Ref, error)

	// Bytes exposes the backing storage of an allocation. The slice aliases
	// arena memory and is invalidated by Reset.
	Bytes(ref Ref, size uint32) ([]byte, error)

	// Reset moves the cursor back to the start, invalidating every Ref
	// handed out since the previous Reset.
	Reset()
}

// MutexToken is the opaque value standing in for a mutex. It has no internal
// state; every operation on it succeeds. Valid only because the hosting
// environment guarantees single-threaded, non-reentrant calls into the layer.
type MutexToken uint32

// ThreadID identifies the (single) logical thread of the host environment.
type ThreadID uint32

// Memory protection bits accepted by Platform.Mprotect. The adapter records
// nothing and enforces nothing; the engine's sandboxing must rely on its own
// bytecode-level validation.
const (
	ProtNone  = 0
	ProtRead  = 1 << 0
	ProtWrite = 1 << 1
	ProtExec  = 1 << 2
)

// Clock supplies the platform time services.
type Clock interface {
	// BootTimeMicros returns microseconds since the platform came up.
	BootTimeMicros() uint64

	// ThreadCPUTimeMicros returns microseconds of CPU time consumed by the
	// calling thread. Under the single-threaded contract this tracks
	// BootTimeMicros.
	ThreadCPUTimeMicros() uint64
}

// Platform is the complete host capability surface the embedded engine links
// against: allocation, memory mapping, concurrency, timing, output, and cache
// maintenance behind one injected interface.
//
// Every method is synchronous and bounded. Nothing blocks, nothing suspends,
// and no call supports cancellation. The Platform holds shared mutable state
// (the arena cursor) with no internal locking; the hosting environment must
// serialize all calls into it.
type Platform interface {
	// Init brings the platform up. Idempotent; always succeeds once the
	// adapter is constructed.
	Init() error

	// Destroy tears the platform down and resets the arena. Idempotent.
	// No Ref obtained before Destroy may be used afterwards.
	Destroy() error

	// Malloc allocates size bytes from the arena. Returns NullRef and an
	// out-of-memory error when the arena is exhausted.
	Malloc(size uint32) (Ref, error)

	// Realloc allocates a fresh region of size bytes. It does NOT copy the
	// old region's contents: the layer tracks no per-allocation sizes, so
	// there is nothing safe to copy. Callers that need the old bytes must
	// copy them before calling Realloc.
	Realloc(ref Ref, size uint32) (Ref, error)

	// Free is a no-op. The arena never reclaims individual regions; freed
	// memory is retired until Destroy resets the whole arena.
	Free(ref Ref)

	// Mmap returns a zero-filled region of size bytes whose offset is a
	// multiple of 32, suitable for the engine's linear memory.
	Mmap(size uint32) (Ref, error)

	// Munmap is a no-op, matching Free.
	Munmap(ref Ref, size uint32)

	// Mprotect reports success without enforcing anything.
	Mprotect(ref Ref, size uint32, prot int) error

	MutexInit() (MutexToken, error)
	MutexDestroy(m MutexToken) error
	MutexLock(m MutexToken) error
	MutexUnlock(m MutexToken) error

	// SelfThread returns the fixed thread id of the single logical thread.
	SelfThread() ThreadID

	// ThreadStackBoundary reports the stack guard address. This port has no
	// stack introspection and returns NullRef.
	ThreadStackBoundary() Ref

	BootTimeMicros() uint64
	ThreadCPUTimeMicros() uint64

	// Printf formats into a bounded scratch buffer and emits one log line.
	// Returns the number of bytes produced.
	Printf(format string, args ...any) int

	// Vprintf is Printf with pre-collected arguments, mirroring the C
	// va_list entry point the engine calls for its own logging.
	Vprintf(format string, args []any) int

	// FlushICache and FlushDCache are no-ops until a host integration needs
	// real cache coherency.
	FlushICache(ref Ref, size uint32)
	FlushDCache()

	// PageSize returns the page granularity reported to the engine.
	PageSize() int
}
