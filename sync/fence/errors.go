// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package fence

import "errors"

// Sentinel errors returned by package fence.
var (
	// ErrAlreadySignaled is returned by Signal when the fence has already
	// transitioned to signaled. It does not indicate a problem — signaling
	// is idempotent from the caller's point of view — but only the first
	// call wakes waiters, so callers that need to know whether they were
	// the one doing the signaling can check for it.
	ErrAlreadySignaled = errors.New("fence: already signaled")

	// ErrFenceNil is returned when an operation is given a nil *Fence.
	ErrFenceNil = errors.New("fence: nil fence")

	// ErrCallbackBusy is returned by AddCallback when the callback is
	// already registered on a (possibly different) fence. A callback may
	// be queued on at most one fence at a time.
	ErrCallbackBusy = errors.New("fence: callback already registered")

	// ErrTimeout is returned by WaitTimeout when the timeout elapses
	// before the fence signals.
	ErrTimeout = errors.New("fence: wait timed out")

	// ErrInterrupted is returned by Wait/WaitTimeout when the context is
	// canceled (or its deadline exceeded) before the fence signals.
	ErrInterrupted = errors.New("fence: wait interrupted")
)
