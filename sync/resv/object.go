// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resv

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/wgpu/sync/fence"
)

// MaxSharedFence is the fixed bound on the number of shared fences a
// single Object may carry at once. Sized for a fixed-size inline array
// rather than a slice, matching the bounded nature of the contract this
// package consumes from buffer objects.
const MaxSharedFence = 8

// Object is the minimal external contract a buffer object must satisfy
// to participate in reservation batches. Real buffer types (e.g.
// core.Buffer) embed an *Object rather than this package owning any
// notion of buffer storage, memory, or contents — those concerns belong
// entirely to the embedder.
//
// All mutation of an Object's fields happens under the package-level
// RESERVE_LOCK, acquired internally by Batch's methods; callers never
// take RESERVE_LOCK themselves.
type Object struct {
	// Reserved reports whether some batch currently holds this object
	// exclusively locked for reservation (not to be confused with the
	// exclusive/shared *fence* intent below — this flag means "under
	// active reserve/commit", and is cleared again by BackOff or Commit).
	Reserved atomic.Bool

	// ownerTicket identifies which batch currently holds Reserved, for
	// wound-or-wait comparisons. Meaningful only while Reserved is true;
	// guarded by RESERVE_LOCK.
	ownerTicket int32

	// FenceExcl is the fence guarding the most recent exclusive access
	// committed against this object, or nil. Guarded by RESERVE_LOCK.
	FenceExcl *fence.Fence

	// FenceShared holds up to MaxSharedFence fences guarding concurrent
	// shared access. Only the first FenceSharedCount slots are valid.
	// Guarded by RESERVE_LOCK.
	FenceShared [MaxSharedFence]*fence.Fence

	// FenceSharedCount is the number of valid entries in FenceShared.
	// Guarded by RESERVE_LOCK.
	FenceSharedCount int
}

// NewObject returns an unreserved Object with no attached fences.
func NewObject() *Object {
	return &Object{}
}

// String returns a short diagnostic summary, useful in log lines.
func (o *Object) String() string {
	return fmt.Sprintf("object(reserved=%v, ticket=%d, excl=%v, shared=%d/%d)",
		o.Reserved.Load(), o.ownerTicket, o.FenceExcl != nil, o.FenceSharedCount, MaxSharedFence)
}
