// Package platform implements the wasmhal.Platform capability interface:
// the complete OS-dependency surface the embedded engine links against.
//
// The Adapter delegates all memory services to one fixed-capacity arena.
// Free and Munmap are deliberate no-ops, Mprotect reports success without
// enforcement, and mutex operations succeed over stateless tokens. Each of
// these is only valid under the layer's contract: a single logical thread,
// cooperative scheduling, and sandboxing done by the engine itself.
//
// Time services default to a real monotonic clock; FixedClock restores the
// original always-zero stubs when an embedding needs them. Output goes
// through the bounded formatter into a zap logger, so engine printf output
// lands in the host's structured logs.
package platform
