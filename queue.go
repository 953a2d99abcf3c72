package wgpu

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gogpu/wgpu/core"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/sync/fence"
	"github.com/gogpu/wgpu/sync/resv"
)

// defaultSubmitTimeout is the maximum time to wait for GPU work to complete
// after submitting command buffers. 30 seconds accommodates heavy compute workloads.
const defaultSubmitTimeout = 30 * time.Second

// Queue handles command submission and data transfers.
type Queue struct {
	hal        hal.Queue
	halDevice  hal.Device
	fence      hal.Fence
	fenceValue atomic.Uint64
	device     *Device
}

// Submit submits command buffers for execution.
// This is a synchronous operation - it blocks until the GPU has completed all submitted work.
//
// Before touching the HAL, Submit gathers every buffer the command
// buffers recorded an access against into one resv.Batch and reserves
// it, so a concurrent Submit racing over a shared buffer blocks (or, in
// the wound-or-wait case, backs off and retries) rather than racing the
// GPU. Once the HAL accepts the submission, Submit commits a HALFence
// wrapping this queue's fence/value pair as the new fence guarding every
// touched buffer, and waits on that same fence object instead of calling
// the HAL wait directly — the one place spec.md's "attaching a new
// fence... represents the work about to be submitted" actually runs.
func (q *Queue) Submit(commandBuffers ...*CommandBuffer) error {
	if q.hal == nil {
		return fmt.Errorf("wgpu: queue not available")
	}

	var batch resv.Batch
	for _, cb := range commandBuffers {
		if cb.core == nil {
			continue
		}
		batch = append(batch, core.BatchEntries(cb.core.UsedBuffers())...)
	}
	if batch.Len() > 0 {
		if err := batch.Reserve(); err != nil {
			return fmt.Errorf("wgpu: reserve failed: %w", err)
		}
	}

	halBuffers := make([]hal.CommandBuffer, len(commandBuffers))
	for i, cb := range commandBuffers {
		halBuffers[i] = cb.halBuffer()
	}

	nextValue := q.fenceValue.Add(1)
	err := q.hal.Submit(halBuffers, q.fence, nextValue)
	if err != nil {
		if batch.Len() > 0 {
			batch.BackOff()
		}
		return fmt.Errorf("wgpu: submit failed: %w", err)
	}

	// q.fence is this queue's own timeline fence, reused value-by-value
	// across every Submit call and destroyed once by Queue.release() --
	// not owned by any single wrapping, so KeepAlive stops HALFence's
	// Release from destroying it out from under later submissions.
	submitFence := fence.New(&fence.HALFence{Device: q.halDevice, HAL: q.fence, Value: nextValue, KeepAlive: true}, nil)
	if batch.Len() > 0 {
		if err := batch.Commit(submitFence); err != nil {
			submitFence.Put()
			return fmt.Errorf("wgpu: commit failed: %w", err)
		}
	}

	_, err = submitFence.WaitTimeout(context.Background(), defaultSubmitTimeout)
	submitFence.Put()
	if err != nil {
		return fmt.Errorf("wgpu: wait failed: %w", err)
	}

	for _, cb := range commandBuffers {
		raw := cb.halBuffer()
		if raw != nil {
			q.halDevice.FreeCommandBuffer(raw)
		}
	}

	return nil
}

// WriteBuffer writes data to a buffer.
func (q *Queue) WriteBuffer(buffer *Buffer, offset uint64, data []byte) error {
	if q.hal == nil || buffer == nil {
		return fmt.Errorf("wgpu: WriteBuffer: queue or buffer is nil")
	}

	halBuffer := buffer.halBuffer()
	if halBuffer == nil {
		return fmt.Errorf("wgpu: WriteBuffer: no HAL buffer")
	}

	return q.hal.WriteBuffer(halBuffer, offset, data)
}

// ReadBuffer reads data from a GPU buffer.
func (q *Queue) ReadBuffer(buffer *Buffer, offset uint64, data []byte) error {
	if q.hal == nil {
		return fmt.Errorf("wgpu: queue not available")
	}
	if buffer == nil {
		return fmt.Errorf("wgpu: buffer is nil")
	}

	halBuffer := buffer.halBuffer()
	if halBuffer == nil {
		return ErrReleased
	}

	return q.hal.ReadBuffer(halBuffer, offset, data)
}

// release cleans up queue resources.
func (q *Queue) release() {
	if q.fence != nil && q.halDevice != nil {
		q.halDevice.DestroyFence(q.fence)
		q.fence = nil
	}
}
