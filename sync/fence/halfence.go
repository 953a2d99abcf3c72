// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package fence

import (
	"time"

	"github.com/gogpu/wgpu/hal"
)

// HALFence adapts one of this codebase's existing backend GPU submission
// fences (hal.Device + hal.Fence + a target value, as produced by
// hal/vulkan, hal/software or hal/noop) into an Ops table, so GPU
// completion can be observed through the same Fence/Wait/AddCallback
// surface as pure-software work.
//
// This is the concrete instance of spec.md's "sum type over known
// variants... external case that carries a dispatch table" (spec.md §9
// Design Notes).
type HALFence struct {
	Device hal.Device
	HAL    hal.Fence
	Value  uint64

	// PollTimeout bounds how long EnableSignaling's background wait
	// blocks per hal.Device.Wait call before rechecking whether the fence
	// has already signaled.
	// Defaults to 5 seconds if zero.
	PollTimeout time.Duration

	// KeepAlive marks HAL as a long-lived backend fence the caller still
	// owns (e.g. a queue's timeline fence reused value-by-value across
	// many submissions), so Release must not destroy it. Leave false for
	// a fence created fresh for this one wrapping and nothing else.
	KeepAlive bool
}

// NewHALFence wraps a backend fence as a fence.Fence. The returned Fence
// owns one reference to itself held by the background goroutine
// EnableSignaling starts; that reference is released once the goroutine
// observes completion (or device loss) and signals.
func NewHALFence(device hal.Device, halFence hal.Fence, value uint64) *Fence {
	return New(&HALFence{Device: device, HAL: halFence, Value: value}, nil)
}

// EnableSignaling spawns exactly one goroutine (per spec.md's "invoked at
// most once" guarantee, enforced by the caller, [Fence.EnableSWSignaling])
// that blocks on hal.Device.Wait — mirroring queue.go's own
// `q.halDevice.Wait(q.fence, nextValue, defaultSubmitTimeout)` call — and
// signals f once the backend reports completion.
//
// Following spec.md §4.1's recommendation, the goroutine takes an extra
// reference before starting and releases it in its own deferred cleanup,
// closing the race between "signal arrives while enable is in flight" and
// destruction.
func (h *HALFence) EnableSignaling(f *Fence) bool {
	timeout := h.PollTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	f.Get()
	go func() {
		defer f.Put()
		for {
			if f.IsSignaled() {
				return
			}
			ok, err := h.Device.Wait(h.HAL, h.Value, timeout)
			if err != nil {
				hal.Logger().Warn("fence: halfence wait error", "err", err)
				_ = f.Signal()
				return
			}
			if ok {
				_ = f.Signal()
				return
			}
			// Backend reported a local (non-error) timeout on this poll
			// window; loop and wait again until the backend completes or
			// reports an error. Callers bound their own wait via context on
			// Fence.Wait/WaitTimeout.
		}
	}()
	return true
}

// Release destroys the wrapped backend fence, unless KeepAlive says some
// longer-lived owner (e.g. the queue that created it) is responsible for
// that instead.
func (h *HALFence) Release(*Fence) {
	if h.KeepAlive {
		return
	}
	if h.Device != nil && h.HAL != nil {
		h.Device.DestroyFence(h.HAL)
	}
}
