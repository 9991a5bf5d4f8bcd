package arena

import (
	wasmhal "github.com/wippyai/wasm-hal"
	"github.com/wippyai/wasm-hal/errors"
)

type Ref = wasmhal.Ref

// DefaultAlign is the alignment of every plain Alloc. Sizes round up to it
// as well, so the cursor stays 8-aligned across plain allocations.
const DefaultAlign = 8

// reservedPrefix keeps offset 0 out of circulation so NullRef is never a
// valid allocation. It does not count against the arena's capacity.
const reservedPrefix = 8

// Arena is a fixed-capacity bump allocator. The cursor only moves forward;
// individual allocations are never reclaimed. Reset moves the cursor back to
// the start and bumps the generation, invalidating every outstanding Ref.
//
// The cursor is unsynchronized shared state. The hosting environment must
// serialize all calls into the arena (single active call at a time).
type Arena struct {
	buf  []byte
	off  uint32
	gen  uint32
	peak uint32
}

// New creates an arena with capacity usable bytes.
func New(capacity uint32) *Arena {
	return &Arena{
		buf: make([]byte, uint64(capacity)+reservedPrefix),
		off: reservedPrefix,
	}
}

// Alloc returns an 8-byte-aligned region of size bytes. The size rounds up
// to a multiple of 8, so a 60-byte request consumes 64 bytes of capacity.
// Size 0 returns NullRef with no error. On exhaustion the cursor is left
// exactly where it was, alignment padding included.
func (a *Arena) Alloc(size uint32) (Ref, error) {
	return a.AllocAligned(size, DefaultAlign)
}

// AllocAligned returns a region whose offset is a multiple of align, which
// must be a nonzero power of two. The size still rounds up to a multiple of 8.
func (a *Arena) AllocAligned(size, align uint32) (Ref, error) {
	if align == 0 || align&(align-1) != 0 {
		return wasmhal.NullRef, errors.InvalidInput(errors.PhaseArena, "alignment must be a power of two")
	}
	if size == 0 {
		return wasmhal.NullRef, nil
	}

	// 64-bit arithmetic so huge sizes cannot wrap past the capacity check.
	start := roundUp(uint64(a.off), uint64(align))
	end := start + roundUp(uint64(size), DefaultAlign)
	if end > uint64(len(a.buf)) {
		return wasmhal.NullRef, errors.OutOfMemory(errors.PhaseArena, size, a.Remaining())
	}

	a.off = uint32(end)
	if used := a.Len(); used > a.peak {
		a.peak = used
	}
	return Ref(start), nil
}

// AllocZeroed allocates count*elemSize bytes and zero-fills them. The
// product is overflow-checked; an overflowing request is rejected outright.
// Zeroing matters after Reset, when the buffer still holds old contents.
func (a *Arena) AllocZeroed(count, elemSize uint32) (Ref, error) {
	total := uint64(count) * uint64(elemSize)
	if total > 0xFFFFFFFF {
		return wasmhal.NullRef, errors.Overflow(errors.PhaseArena, count, elemSize)
	}

	ref, err := a.Alloc(uint32(total))
	if err != nil || ref == wasmhal.NullRef {
		return ref, err
	}

	region := a.buf[ref : uint64(ref)+total]
	for i := range region {
		region[i] = 0
	}
	return ref, nil
}

// Bytes exposes the backing storage of an allocation. The slice aliases
// arena memory: writes through it are visible to every other holder of the
// same Ref, and the slice is invalidated by Reset.
func (a *Arena) Bytes(ref Ref, size uint32) ([]byte, error) {
	if ref == wasmhal.NullRef {
		return nil, errors.InvalidInput(errors.PhaseArena, "null handle")
	}
	if uint64(ref)+uint64(size) > uint64(len(a.buf)) {
		return nil, errors.OutOfBounds(errors.PhaseArena, uint32(ref), size, uint32(len(a.buf)))
	}
	return a.buf[ref : uint64(ref)+uint64(size) : uint64(ref)+uint64(size)], nil
}

// Reset moves the cursor back to the start and increments the generation.
// Every Ref handed out since the previous Reset becomes invalid. Must only
// be called at the module-instance teardown boundary, when no live
// references remain.
func (a *Arena) Reset() {
	a.off = reservedPrefix
	a.gen++
}

// Len returns the number of bytes currently allocated.
func (a *Arena) Len() uint32 {
	return a.off - reservedPrefix
}

// Cap returns the arena's usable capacity in bytes.
func (a *Arena) Cap() uint32 {
	return uint32(len(a.buf)) - reservedPrefix
}

// Remaining returns the bytes still available before exhaustion.
func (a *Arena) Remaining() uint32 {
	return uint32(len(a.buf)) - a.off
}

// Peak returns the high-water mark of Len across the arena's lifetime.
// It is not reset by Reset.
func (a *Arena) Peak() uint32 {
	return a.peak
}

// Generation counts Resets. A Ref is only meaningful together with the
// generation it was allocated under.
func (a *Arena) Generation() uint32 {
	return a.gen
}

func roundUp(n, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}

var _ wasmhal.Allocator = (*Arena)(nil)
