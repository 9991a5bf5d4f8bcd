// Package engine embeds the bytecode execution engine behind the host
// abstraction layer.
//
// The engine is wazero running in interpreter mode, the configuration that
// matches the bare-metal embedding this layer was built for. The package's
// job is plumbing, not semantics: it compiles guest modules, instantiates
// them, and exposes the native bridge's registered host functions to guests.
//
// # Host Function Binding
//
// BindRegistry turns each namespace of a native.Registry into one wazero
// host module. Every registered function becomes an i32-only wazero host
// function whose adapter packs the value stack into the bridge's word-packed
// argument buffer and dispatches through native.Invoke, so the guest-facing
// and host-facing calling conventions stay identical.
//
// # Calls
//
// Instance.Call speaks the same convention: up to four uint32 words in, one
// uint32 word out. Richer signatures are outside this layer's contract and
// fail with an unsupported-arity error.
package engine
