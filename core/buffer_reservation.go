// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"github.com/gogpu/wgpu/sync/resv"
)

// Reservation returns b's reservation object, lazily creating it on
// first use. Every Buffer starts unreserved with no attached fences.
func (b *Buffer) Reservation() *resv.Object {
	if b.Resv == nil {
		b.Resv = resv.NewObject()
	}
	return b.Resv
}

// ReservationIntent maps the coarse buffer usage a command buffer
// recorded (CoreCommandBuffer.UsedBuffers) to the exclusive/shared
// intent a reservation batch reserves with: any write-capable usage
// needs exclusive access (it must not overlap any other access to the
// same buffer), while a purely read-only usage can share the buffer
// with other readers.
func ReservationIntent(uses BufferUses) resv.Intent {
	if uses.IsReadOnly() {
		return resv.Shared
	}
	return resv.Exclusive
}

// ReservationEntry builds the resv.ValidationEntry a command submission
// should add to its reservation batch for this buffer and usage, wiring
// b's reservation object and the usage-derived intent together.
func (b *Buffer) ReservationEntry(uses BufferUses) *resv.ValidationEntry {
	return resv.NewValidationEntry(b.Reservation(), ReservationIntent(uses))
}

// BatchEntries builds one resv.ValidationEntry per buffer recorded in
// used, the shape Queue.Submit needs to reserve a whole command
// buffer's worth of accesses as a single resv.Batch.
func BatchEntries(used map[*Buffer]BufferUses) []*resv.ValidationEntry {
	entries := make([]*resv.ValidationEntry, 0, len(used))
	for buffer, uses := range used {
		entries = append(entries, buffer.ReservationEntry(uses))
	}
	return entries
}
