// Package arena implements the fixed-capacity bump allocator backing all
// dynamic allocation in the host abstraction layer.
//
// An Arena owns one contiguous byte buffer and a monotonic cursor. Alloc
// advances the cursor; nothing moves it back except Reset, which invalidates
// every outstanding handle at once. There is deliberately no per-allocation
// release operation: the allocator cannot honor one, and exposing it would
// invite callers to rely on reclamation that never happens.
//
// Handles are Refs, plain byte offsets into the buffer. Offset 0 is reserved
// so NullRef unambiguously means "no allocation".
//
// The arena is created once per module instance and reset only when that
// instance is torn down. It performs no locking; see the package wasmhal
// concurrency contract.
package arena
