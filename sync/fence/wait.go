// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package fence

import (
	"context"
	"time"
)

// Wait blocks until the fence signals or ctx is done, whichever comes
// first. ctx cancellation (including deadline expiry) is this
// implementation's interruptibility mechanism, in place of spec.md's
// thread-directed-signal flag.
func (f *Fence) Wait(ctx context.Context) error {
	if f == nil {
		return ErrFenceNil
	}

	f.EnableSWSignaling()

	select {
	case <-f.done:
		return nil
	default:
	}

	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ErrInterrupted
	}
}

// WaitTimeout blocks until the fence signals or d elapses, whichever
// comes first, additionally honoring ctx cancellation. On success it
// returns the unused portion of d. On timeout it returns (0, ErrTimeout).
// If ctx is canceled before either the fence signals or d elapses, it
// returns (remaining, ErrInterrupted) so the caller can distinguish
// cancellation from expiry and observe how much of the budget survived.
func (f *Fence) WaitTimeout(ctx context.Context, d time.Duration) (time.Duration, error) {
	if f == nil {
		return 0, ErrFenceNil
	}
	if d <= 0 {
		if f.IsSignaled() {
			return 0, nil
		}
		return 0, ErrTimeout
	}

	f.EnableSWSignaling()

	start := time.Now()
	timer := time.NewTimer(d)
	defer timer.Stop()

	remaining := func() time.Duration {
		left := d - time.Since(start)
		if left < 0 {
			left = 0
		}
		return left
	}

	select {
	case <-f.done:
		return remaining(), nil
	default:
	}

	select {
	case <-f.done:
		return remaining(), nil
	case <-ctx.Done():
		return remaining(), ErrInterrupted
	case <-timer.C:
		return 0, ErrTimeout
	}
}
