// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resv

import (
	"context"
	"time"

	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/sync/fence"
)

// Batch is an ordered list of validation entries reserved, waited on,
// and committed or backed off together. The list order matters: Reserve
// acquires buffers in list order and BackOff releases them in reverse.
type Batch []*ValidationEntry

// NewBatch builds a Batch from entries, wiring each entry's default
// destructor to remove it from this batch. entries must not be shared
// with another Batch.
func NewBatch(entries ...*ValidationEntry) Batch {
	b := Batch(entries)
	for _, e := range b {
		e.parent = b
	}
	return b
}

// Len returns the number of entries in the batch.
func (b Batch) Len() int { return len(b) }

// Entries returns the batch's entries in list order.
func (b Batch) Entries() []*ValidationEntry {
	return b
}

// remove clears the slot holding e, leaving the batch's length
// unchanged (removal just drops the reference so the entry itself can
// be garbage collected once nothing else holds it).
func (b Batch) remove(e *ValidationEntry) {
	for i, x := range b {
		if x == e {
			b[i] = nil
			return
		}
	}
}

// Reserve atomically acquires `reserved == true` on every entry's
// buffer and snapshots the fences currently guarding each one.
//
// Deadlock-breaking: a process-wide ticket is drawn from RESERVE_LOCK's
// batchSeq counter for each attempt. Walking the list in order, a buffer
// already held by a newer ticket makes us wait (we are older, so we
// always eventually win); a buffer held by an older ticket makes us back
// off everything acquired so far and restart the whole batch from
// scratch with a fresh ticket, after waiting for the contested buffer to
// clear. The older ticket is never forced to back off, which is what
// guarantees every batch eventually makes progress (wound-or-wait).
func (b Batch) Reserve() error {
	if len(b) == 0 {
		return ErrEmptyBatch
	}

restart:
	for _, e := range b {
		if e == nil {
			continue
		}
		e.reserved = false
		e.collectedCount = 0
	}

	RESERVE_LOCK.Lock()
	ticket := nextTicketLocked()

	for i := 0; i < len(b); i++ {
		e := b[i]
		if e == nil {
			continue
		}
		obj := e.Object

		for {
			if !obj.Reserved.Load() {
				obj.Reserved.Store(true)
				obj.ownerTicket = ticket
				e.reserved = true
				break
			}
			if obj.ownerTicket == ticket {
				// Same buffer named twice in this batch: re-entrant no-op.
				e.reserved = true
				break
			}
			if ticketOlder(ticket, obj.ownerTicket) {
				// We are older: the holder will eventually back off for
				// us. Wait for this exact buffer, then retry it.
				resCond.Wait()
				continue
			}
			// We are younger: wound ourselves. Release everything this
			// attempt already holds, wait for the contested buffer, and
			// restart the whole batch with a fresh ticket.
			b[:i].backOffLocked()
			resCond.Wait()
			RESERVE_LOCK.Unlock()
			goto restart
		}
	}

	for _, e := range b {
		if e == nil {
			continue
		}
		obj := e.Object
		switch e.Intent {
		case Exclusive:
			if obj.FenceSharedCount > 0 {
				e.collectedCount = copy(e.collectedFences[:], obj.FenceShared[:obj.FenceSharedCount])
			} else if obj.FenceExcl != nil {
				e.collectedFences[0] = obj.FenceExcl
				e.collectedCount = 1
			}
		case Shared:
			if obj.FenceSharedCount >= MaxSharedFence {
				b.backOffLocked()
				RESERVE_LOCK.Unlock()
				hal.Logger().Warn("resv: reserve capacity exceeded", "object", obj.String())
				return ErrCapacityExceeded
			}
			if obj.FenceExcl != nil {
				e.collectedFences[0] = obj.FenceExcl
				e.collectedCount = 1
			}
		}
	}

	RESERVE_LOCK.Unlock()
	return nil
}

// BackOff releases every entry this batch currently holds reserved,
// without installing a new fence. Safe to call on a batch that never
// reserved anything (a no-op) or one that partially reserved before an
// error.
func (b Batch) BackOff() {
	RESERVE_LOCK.Lock()
	b.backOffLocked()
	RESERVE_LOCK.Unlock()
}

// backOffLocked is BackOff's body, reusable from Reserve's wound path.
// Caller must hold RESERVE_LOCK. Releases in reverse list order and
// wakes resCond exactly once on the way out.
func (b Batch) backOffLocked() {
	any := false
	for i := len(b) - 1; i >= 0; i-- {
		e := b[i]
		if e == nil || !e.reserved {
			continue
		}
		e.Object.Reserved.Store(false)
		e.reserved = false
		e.collectedCount = 0
		any = true
	}
	if any {
		resCond.Broadcast()
	}
}

// Wait sequentially waits on every entry's collected fences, in list
// order, sharing a single remaining-time budget across the whole batch.
// It returns on the first fence that errors (timeout or interruption),
// along with whatever budget remained at that point. Callers that would
// rather not block register callbacks per entry instead (see
// ValidationEntry.RegisterCompletion).
func (b Batch) Wait(ctx context.Context, timeout time.Duration) (time.Duration, error) {
	remaining := timeout
	for _, e := range b {
		if e == nil {
			continue
		}
		for i := 0; i < e.collectedCount; i++ {
			var err error
			remaining, err = e.collectedFences[i].WaitTimeout(ctx, remaining)
			if err != nil {
				return remaining, err
			}
		}
	}
	return remaining, nil
}

// Commit installs newFence as the fence guarding the work the caller is
// about to submit, replacing (for exclusive entries) or joining (for
// shared entries) each buffer's existing fence set, then releases the
// reservation. Reserve must have succeeded on this exact batch with no
// intervening BackOff; otherwise Commit returns ErrNotReserved without
// modifying any entry.
func (b Batch) Commit(newFence *fence.Fence) error {
	if len(b) == 0 {
		return ErrEmptyBatch
	}
	for _, e := range b {
		if e != nil && !e.reserved {
			return ErrNotReserved
		}
	}

	for _, e := range b {
		if e == nil || e.Intent != Exclusive {
			continue
		}
		obj := e.Object

		RESERVE_LOCK.Lock()
		oldExcl := obj.FenceExcl
		oldShared := obj.FenceShared
		oldSharedCount := obj.FenceSharedCount
		obj.FenceExcl = nil
		obj.FenceShared = [MaxSharedFence]*fence.Fence{}
		obj.FenceSharedCount = 0
		RESERVE_LOCK.Unlock()

		if oldExcl != nil {
			oldExcl.Put()
		}
		for i := 0; i < oldSharedCount; i++ {
			oldShared[i].Put()
		}
	}

	RESERVE_LOCK.Lock()
	for _, e := range b {
		if e == nil {
			continue
		}
		obj := e.Object
		switch e.Intent {
		case Shared:
			obj.FenceShared[obj.FenceSharedCount] = newFence.Get()
			obj.FenceSharedCount++
		case Exclusive:
			obj.FenceExcl = newFence.Get()
		}
		obj.Reserved.Store(false)
		e.reserved = false
		e.collectedCount = 0
	}
	RESERVE_LOCK.Unlock()
	resCond.Broadcast()

	hal.Logger().Debug("resv: commit", "fence", newFence.String(), "entries", len(b))
	return nil
}
