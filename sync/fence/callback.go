// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package fence

import (
	"errors"
	"sync"
)

// errCallbackFuncRequired is returned when AddCallback is given a
// Callback with a nil Func.
var errCallbackFuncRequired = errors.New("fence: callback func required")

// CallbackFunc is invoked when the fence a Callback is registered on
// signals. It may run from whatever goroutine called Signal (directly,
// for plain software fences) or from a variant-owned goroutine (see
// HALFence). It must be short and must not block.
type CallbackFunc func(f *Fence, cb *Callback)

// Callback is a small object a caller embeds or allocates to register
// interest in a fence's completion without blocking. A Callback may be
// queued on at most one fence at a time.
type Callback struct {
	// Func runs when the fence signals. Required.
	Func CallbackFunc

	// Priv is an opaque pointer for the callback's own bookkeeping.
	Priv any

	mu    sync.Mutex
	fence *Fence
}

// NewCallback constructs a Callback ready to pass to AddCallback.
func NewCallback(fn CallbackFunc, priv any) *Callback {
	return &Callback{Func: fn, Priv: priv}
}

// AddCallback registers cb on f. If f is already signaled, it returns
// ErrAlreadySignaled and does not invoke cb.Func — the caller may run it
// synchronously itself if desired. Otherwise cb is queued and
// signaling is enabled if it wasn't already (EnableSWSignaling).
func (f *Fence) AddCallback(cb *Callback) error {
	if f == nil {
		return ErrFenceNil
	}
	if cb == nil || cb.Func == nil {
		return errCallbackFuncRequired
	}

	cb.mu.Lock()
	if cb.fence != nil {
		cb.mu.Unlock()
		return ErrCallbackBusy
	}
	cb.mu.Unlock()

	f.EnableSWSignaling()

	f.mu.Lock()
	if f.signaled.Load() {
		f.mu.Unlock()
		return ErrAlreadySignaled
	}
	cb.mu.Lock()
	cb.fence = f
	cb.mu.Unlock()
	f.callbacks = append(f.callbacks, cb)
	f.mu.Unlock()
	return nil
}

// RemoveCallback cancels cb's registration. It returns true iff cb was
// still queued (i.e. the fence had not yet signaled), in which case
// cb.Func is guaranteed not to fire. If the fence has already signaled
// (or signals concurrently with this call), RemoveCallback returns false
// and gives no guarantee about whether cb.Func has finished running —
// cancellation is only safe when the caller holds a reference to the
// fence and there is no concurrent racing Signal.
func (f *Fence) RemoveCallback(cb *Callback) bool {
	if f == nil || cb == nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i, c := range f.callbacks {
		if c == cb {
			f.callbacks = append(f.callbacks[:i], f.callbacks[i+1:]...)
			cb.mu.Lock()
			cb.fence = nil
			cb.mu.Unlock()
			return true
		}
	}
	return false
}
