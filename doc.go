// Package wasmhal is the bare-metal host abstraction layer for an embedded
// WebAssembly engine: the code that lets the engine (and, through it, a
// retained-mode UI toolkit) run on a device with no OS-provided standard
// library.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	wasmhal/         Root package with the Platform capability interface
//	├── arena/       Fixed-capacity bump allocator (no reclamation)
//	├── mem/         Minimal byte/string/sort/search/format primitives
//	├── platform/    Platform API adapter over the arena
//	├── native/      Word-packed native invocation bridge and registry
//	├── engine/      wazero integration binding the bridge to guest modules
//	└── errors/      Structured error types
//
// # Memory Model
//
// All dynamic allocation in this layer comes from a fixed-capacity arena
// with a monotonic cursor. Nothing is ever reclaimed individually: Free and
// Munmap are no-ops, and memory returns only when the whole arena is reset
// at module-instance teardown. Two arena presets are shipped, a 256 KiB heap
// for the engine and a 64 KiB heap for the UI toolkit's internal allocations.
//
// # Concurrency Model
//
// The layer assumes a single logical thread with cooperative scheduling.
// Mutex operations are no-ops over opaque tokens, SelfThread returns a fixed
// constant, and the arena cursor is unsynchronized shared state. None of
// this is safe under real concurrency; a multi-threaded embedding must
// replace the platform adapter with one built on genuine locks.
//
// # Native Calls
//
// The engine calls out to host functions through the native bridge:
// arguments travel as a contiguous sequence of 4-byte words, arity is the
// byte length divided by 4 (at most 4 words), and the result is one 4-byte
// word. Calls outside that shape fail with an explicit unsupported-arity
// error rather than being dropped.
package wasmhal
