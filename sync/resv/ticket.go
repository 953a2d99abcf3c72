// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resv

import "sync"

// RESERVE_LOCK serializes every mutation of Object.reserved/ticket/fence
// fields across all batches, process-wide. It is sleepable-free: held
// only long enough to update state, and dropped (via resCond.Wait)
// across any wait on a contested buffer's reservation. Exported under
// this name (rather than an unexported reserveLock) because it is named
// explicitly enough in the protocol this package implements that giving
// it a quiet, grep-able identity is worth the stutter.
var RESERVE_LOCK sync.Mutex

// resCond is the single process-wide wait queue every Object's
// reservation release broadcasts on. Deliberately one shared condvar
// rather than one per Object: RESERVE_LOCK never needs to be dropped and
// reacquired per-object to arm a distinct waiter, and every waiter reevaluates
// its own condition (the specific buffer it cares about) after each wake,
// so spurious wakeups for unrelated objects are harmless.
var resCond = sync.NewCond(&RESERVE_LOCK)

// batchSeq is the monotonically increasing ticket counter. Guarded by
// RESERVE_LOCK; wraps at 32 bits by design (see ticketOlder).
var batchSeq int32

// nextTicketLocked draws a fresh ticket. Caller must hold RESERVE_LOCK.
func nextTicketLocked() int32 {
	t := batchSeq
	batchSeq++
	return t
}

// ticketOlder reports whether ticket a is older (was drawn earlier)
// than ticket b, tolerating wraparound of the underlying 32-bit counter
// via signed subtraction: the oldest ticket always wins comparisons even
// after BATCH_SEQ has wrapped past zero.
func ticketOlder(a, b int32) bool {
	return int32(a-b) < 0
}
