// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package fence

// SeqnoTarget is the minimal contract a sequence-number fence needs from
// its backing shared buffer object: the ability to read a 32-bit memory
// cell at a fixed offset. Hardware may observe this same cell directly;
// software only needs to be able to read it to decide when to fall back
// to a Signal call.
type SeqnoTarget interface {
	// ReadSeqno reads the current value of the monotonic counter at
	// offset. Must be safe to call concurrently with writers advancing
	// the counter (e.g. via atomic load on the backing memory).
	ReadSeqno(offset uint64) uint32
}

// seqnoOps implements Ops for a sequence-number fence: its completion
// condition is signed32(target[offset] - targetSeqno) >= 0, i.e. the
// counter has advanced to or past targetSeqno. This is spec.md §3's
// "hardware-sequence-number fence": software signaling is a fallback,
// since hardware may observe the memory cell directly without ever
// calling EnableSignaling.
type seqnoOps struct {
	target      SeqnoTarget
	offset      uint64
	targetSeqno uint32
}

// NewSeqnoFence creates a fence whose completion condition is the
// monotonic advance of target's counter at offset to targetSeqno. The
// fence takes no reference-counted ownership of target itself; callers
// that need target kept alive until the fence is dropped should do so
// via Ops.Release on a wrapping variant, or simply keep their own
// reference (see spec.md §9 "Reference counting").
func NewSeqnoFence(target SeqnoTarget, offset uint64, targetSeqno uint32) *Fence {
	return New(&seqnoOps{target: target, offset: offset, targetSeqno: targetSeqno}, nil)
}

// EnableSignaling checks the current counter value once. If the target
// has already reached targetSeqno, it returns false so the core signals
// immediately. Otherwise it returns true: a pure software fallback has no
// interrupt source to arm, so the caller is expected to either poll via
// PollSeqno, or a real hardware variant embedding seqnoOps
// would arm a GPU-side interrupt here instead.
func (s *seqnoOps) EnableSignaling(*Fence) bool {
	return !s.reached()
}

// Release is a no-op: seqnoOps holds no resources of its own.
func (s *seqnoOps) Release(*Fence) {}

func (s *seqnoOps) reached() bool {
	return int32(s.target.ReadSeqno(s.offset)-s.targetSeqno) >= 0
}

// PollSeqno re-checks the backing counter of a fence created by
// NewSeqnoFence and, if it has reached the target, signals it. Call this
// after an external notification (e.g. a hardware interrupt or a manual
// poll loop) indicates the counter may have advanced. It is idempotent:
// calling it after the fence already signaled, or on a fence that is not
// a sequence-number fence, is a harmless no-op and returns false.
func PollSeqno(f *Fence) bool {
	if f == nil || f.IsSignaled() {
		return false
	}
	s, ok := f.ops.(*seqnoOps)
	if !ok {
		return false
	}
	if s.reached() {
		_ = f.Signal()
		return true
	}
	return false
}
