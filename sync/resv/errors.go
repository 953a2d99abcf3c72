// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resv

import "errors"

// Sentinel errors returned by package resv.
var (
	// ErrEmptyBatch is returned by Reserve/Commit when the batch has no
	// entries. A batch must name at least one buffer object.
	ErrEmptyBatch = errors.New("resv: empty batch")

	// ErrCapacityExceeded is returned by Reserve when a shared-intent
	// entry targets a buffer that already holds the maximum number of
	// shared fences. The batch has already been fully backed off by the
	// time this is returned.
	ErrCapacityExceeded = errors.New("resv: shared fence capacity exceeded")

	// ErrNotReserved is returned by Commit when called on an entry that
	// Reserve never succeeded on (or that already went through a prior
	// BackOff/Commit). BackOff returns no error and skips such entries.
	// This is a programmer-error guard, not a contention outcome.
	ErrNotReserved = errors.New("resv: commit/back-off without a prior reserve")
)
