package platform

import (
	wasmhal "github.com/wippyai/wasm-hal"
	"github.com/wippyai/wasm-hal/native"
)

// RegisterNatives exposes the adapter's services as bridge functions under
// namespace, the set a guest needs to drive the platform directly:
//
//	alloc(size) -> ref          free(ref) -> 0
//	realloc-discard(ref, size) -> ref
//	uptime-us() -> u32          cputime-us() -> u32
//	pagesize() -> u32           thread-id() -> u32
//
// Allocation failures surface as a null ref, never as a trap. The realloc
// name carries its non-copying contract so no guest mistakes it for the
// conventional operation.
func (a *Adapter) RegisterNatives(reg *native.Registry, namespace string) error {
	funcs := map[string]any{
		"alloc": func(size uint32) uint32 {
			ref, err := a.Malloc(size)
			if err != nil {
				return uint32(wasmhal.NullRef)
			}
			return uint32(ref)
		},
		"realloc-discard": func(ref, size uint32) uint32 {
			grown, err := a.Realloc(wasmhal.Ref(ref), size)
			if err != nil {
				return uint32(wasmhal.NullRef)
			}
			return uint32(grown)
		},
		"free": func(ref uint32) uint32 {
			a.Free(wasmhal.Ref(ref))
			return 0
		},
		"uptime-us": func() uint32 {
			return uint32(a.BootTimeMicros())
		},
		"cputime-us": func() uint32 {
			return uint32(a.ThreadCPUTimeMicros())
		},
		"pagesize": func() uint32 {
			return uint32(a.PageSize())
		},
		"thread-id": func() uint32 {
			return uint32(a.SelfThread())
		},
	}

	for name, fn := range funcs {
		if err := reg.Register(namespace, name, fn); err != nil {
			return err
		}
	}
	return nil
}
