// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package fence

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/wgpu/hal"
)

// Ops is the variant-specific operation table every Fence is constructed
// with. EnableSignaling is mandatory; Release is optional.
type Ops interface {
	// EnableSignaling arranges for Signal to eventually be called once the
	// underlying work completes. It is invoked at most once per fence, with
	// the fence's internal lock NOT held (see the package doc on
	// Fence.EnableSWSignaling for why). Returning false tells the core the
	// fence is already effectively signaled (or that enabling failed), in
	// which case the core signals it immediately.
	EnableSignaling(f *Fence) bool

	// Release runs when the fence's refcount reaches zero. Variants with
	// nothing to release implement it as a no-op.
	Release(f *Fence)
}

// noopOps is the default variant for plain software fences: signaling is
// always "enabled" (there's nothing to arm), so EnableSignaling returns
// true and the caller is expected to call Signal itself.
type noopOps struct{}

func (noopOps) EnableSignaling(*Fence) bool { return true }
func (noopOps) Release(*Fence)              {}

// Fence is a single-shot, one-way synchronization object. It starts
// unsignaled and transitions to signaled exactly once. See the package
// doc for the overall protocol.
//
// A Fence is safe for concurrent use. The zero value is not usable; use
// [New].
type Fence struct {
	ops     Ops
	payload any

	refcount atomic.Int64
	signaled atomic.Bool

	mu           sync.Mutex
	needSWSignal bool
	callbacks    []*Callback
	done         chan struct{}
}

// New creates an unsignaled fence with refcount 1 using the given
// operations table. If ops is nil, the fence behaves as a plain software
// fence: enabling signaling is a no-op and the caller is expected to call
// Signal directly.
func New(ops Ops, payload any) *Fence {
	if ops == nil {
		ops = noopOps{}
	}
	f := &Fence{
		ops:     ops,
		payload: payload,
		done:    make(chan struct{}),
	}
	f.refcount.Store(1)
	return f
}

// Payload returns the opaque caller-supplied payload passed to New.
func (f *Fence) Payload() any {
	return f.payload
}

// Get increments the fence's refcount and returns the fence, for chaining
// at call sites that take ownership of a reference (e.g. `fence.Get()`
// stashed in a struct field).
func (f *Fence) Get() *Fence {
	f.refcount.Add(1)
	return f
}

// Put decrements the fence's refcount. When the count reaches zero, the
// variant's Release hook (if any) runs and the fence must not be used
// again.
func (f *Fence) Put() {
	if n := f.refcount.Add(-1); n == 0 {
		f.ops.Release(f)
	} else if n < 0 {
		panic("fence: refcount went negative")
	}
}

// IsSignaled reports whether the fence has transitioned to signaled. The
// read synchronizes-with the write Signal performs, so observing true
// guarantees visibility of every write the signaler made before calling
// Signal.
func (f *Fence) IsSignaled() bool {
	return f.signaled.Load()
}

// String returns a short human-readable summary, useful in log lines.
func (f *Fence) String() string {
	state := "unsignaled"
	if f.IsSignaled() {
		state = "signaled"
	}
	return fmt.Sprintf("fence(%s, refs=%d)", state, f.refcount.Load())
}

// EnableSWSignaling ensures the variant's EnableSignaling hook has run at
// most once. This is the core of spec.md §4.1's enable-signaling
// protocol and exists specifically to let a variant defer an expensive
// side effect (arming an interrupt, inserting commands into a hardware
// stream) until some party actually needs a software notification.
//
// The fence lock is dropped before calling the hook and re-acquired
// after, so that a hook which itself acquires a lock can never invert
// against a concurrent Signal that holds that same lock and then tries
// to take f.mu.
func (f *Fence) EnableSWSignaling() {
	f.mu.Lock()
	if f.signaled.Load() || f.needSWSignal {
		f.mu.Unlock()
		return
	}
	f.needSWSignal = true
	f.mu.Unlock()

	if !f.ops.EnableSignaling(f) {
		// The hook reports the fence is already effectively signaled, or
		// that it could not arm notification. Either way, signal now.
		_ = f.Signal()
	}
}

// Signal transitions the fence to signaled, exactly once. The first call
// wakes every blocked Wait/WaitTimeout caller and fires every registered
// callback; subsequent calls return ErrAlreadySignaled without altering
// state.
func (f *Fence) Signal() error {
	f.mu.Lock()
	if f.signaled.Load() {
		f.mu.Unlock()
		return ErrAlreadySignaled
	}
	f.signaled.Store(true)
	close(f.done)
	cbs := f.callbacks
	f.callbacks = nil
	f.mu.Unlock()

	hal.Logger().Debug("fence: signaled", "fence", f.String())

	for _, cb := range cbs {
		cb.mu.Lock()
		cb.fence = nil
		run := cb.Func
		cb.mu.Unlock()
		if run != nil {
			run(f, cb)
		}
	}
	return nil
}
