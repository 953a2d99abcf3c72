// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resv

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/wgpu/sync/fence"
)

// Intent is what a ValidationEntry requests from its Object: exclusive
// access (waits out and supersedes every existing fence) or shared
// access (coexists with other shared access, bounded by
// MaxSharedFence).
type Intent int

const (
	Shared Intent = iota
	Exclusive
)

func (i Intent) String() string {
	switch i {
	case Shared:
		return "shared"
	case Exclusive:
		return "exclusive"
	default:
		return fmt.Sprintf("Intent(%d)", int(i))
	}
}

// ValidationEntry is one (buffer, intent) pair within a Batch. It is
// meaningful only between a successful Reserve and the matching Commit
// or BackOff: outside that window its collected-fence fields are empty
// and its reserved flag is false.
//
// A ValidationEntry additionally supports a Linux-dma_resv-style
// deferred-completion protocol via RegisterCompletion: every collected
// fence's callback holds one reference on the entry until it fires.
type ValidationEntry struct {
	// Object is the buffer object this entry names.
	Object *Object

	// Intent is the access this entry requests.
	Intent Intent

	reserved        bool
	collectedFences [MaxSharedFence]*fence.Fence
	collectedCount  int

	refcount  atomic.Int32
	callbacks [MaxSharedFence]*fence.Callback

	onDestroy func(*ValidationEntry)
	parent    Batch
}

// NewValidationEntry returns an entry ready to place in a Batch, with
// refcount 1 representing the caller's own reference.
func NewValidationEntry(obj *Object, intent Intent) *ValidationEntry {
	e := &ValidationEntry{Object: obj, Intent: intent}
	e.refcount.Store(1)
	return e
}

// CollectedFences returns the fences Reserve snapshotted for this entry.
// Valid only between a successful Reserve and the matching Commit or
// BackOff.
func (e *ValidationEntry) CollectedFences() []*fence.Fence {
	return e.collectedFences[:e.collectedCount]
}

// Reserved reports whether this entry currently holds its buffer
// reserved (i.e. Reserve succeeded and neither Commit nor BackOff has
// run since).
func (e *ValidationEntry) Reserved() bool {
	return e.reserved
}

// String returns a short diagnostic summary.
func (e *ValidationEntry) String() string {
	return fmt.Sprintf("entry(intent=%s, reserved=%v, collected=%d)", e.Intent, e.reserved, e.collectedCount)
}

// Get increments the entry's refcount and returns the entry.
func (e *ValidationEntry) Get() *ValidationEntry {
	e.refcount.Add(1)
	return e
}

// SetDestructor overrides the default destructor run when the entry's
// refcount reaches zero. The default removes the entry from the batch
// it was constructed into (if any) and otherwise does nothing further:
// Go has no explicit free, so "freed" means simply unreferenced and left
// for the garbage collector.
func (e *ValidationEntry) SetDestructor(fn func(*ValidationEntry)) {
	e.onDestroy = fn
}

// Put decrements the entry's refcount. When it reaches zero, the
// destructor (custom, or the default batch-removal one) runs.
func (e *ValidationEntry) Put() {
	n := e.refcount.Add(-1)
	switch {
	case n == 0:
		if e.onDestroy != nil {
			e.onDestroy(e)
		} else if e.parent != nil {
			e.parent.remove(e)
		}
	case n < 0:
		panic("resv: validation entry refcount went negative")
	}
}

// RegisterCompletion implements the deferred-completion pattern: it
// arms one fence.Callback per fence Reserve collected for this entry.
// Each armed callback holds one reference on the entry and drops it when
// it fires. done runs exactly once, after every collected fence has
// signaled (or immediately, inline, if Reserve collected none). The
// caller should still Put() its own
// reference once it no longer needs the entry directly — the entry is
// kept alive until both that reference and every pending callback have
// gone, exactly mirroring the caller-holds-one-ref/callbacks-hold-one-
// ref-each bookkeeping the rest of this package uses.
func (e *ValidationEntry) RegisterCompletion(done func()) error {
	if e.collectedCount == 0 {
		if done != nil {
			done()
		}
		return nil
	}

	e.refcount.Add(int32(e.collectedCount))
	var pending atomic.Int32
	pending.Store(int32(e.collectedCount))
	complete := func() {
		if pending.Add(-1) == 0 && done != nil {
			done()
		}
		e.Put()
	}

	for i := 0; i < e.collectedCount; i++ {
		f := e.collectedFences[i]
		cb := fence.NewCallback(func(*fence.Fence, *fence.Callback) {
			complete()
		}, nil)
		e.callbacks[i] = cb

		if err := f.AddCallback(cb); err != nil {
			if errors.Is(err, fence.ErrAlreadySignaled) {
				complete()
				continue
			}
			return fmt.Errorf("resv: RegisterCompletion: %w", err)
		}
	}
	return nil
}
