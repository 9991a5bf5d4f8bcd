package platform

import (
	"time"

	wasmhal "github.com/wippyai/wasm-hal"
)

// MonotonicClock measures real time since it was created. This is the wired
// replacement for the original always-zero time stubs: boot time is the
// adapter's construction, and under the single-threaded contract thread CPU
// time tracks wall time.
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock starts a clock whose epoch is now.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

func (c *MonotonicClock) BootTimeMicros() uint64 {
	return uint64(time.Since(c.start).Microseconds())
}

func (c *MonotonicClock) ThreadCPUTimeMicros() uint64 {
	return c.BootTimeMicros()
}

// FixedClock always reports zero, preserving the original stub behavior for
// embeddings that require it (for example, deterministic replay harnesses).
type FixedClock struct{}

func (FixedClock) BootTimeMicros() uint64      { return 0 }
func (FixedClock) ThreadCPUTimeMicros() uint64 { return 0 }

var (
	_ wasmhal.Clock = (*MonotonicClock)(nil)
	_ wasmhal.Clock = FixedClock{}
)
