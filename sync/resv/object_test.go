// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resv_test

import (
	"testing"

	"github.com/gogpu/wgpu/sync/fence"
	"github.com/gogpu/wgpu/sync/resv"
)

func TestObject_NewIsUnreserved(t *testing.T) {
	o := resv.NewObject()
	if o.Reserved.Load() {
		t.Fatal("new object must start unreserved")
	}
	if o.FenceExcl != nil || o.FenceSharedCount != 0 {
		t.Fatal("new object must start with no attached fences")
	}
}

// TestBatch_ExclusiveCollectsAllShared is scenario S4: a buffer holding
// shared fences [F1, F2], an exclusive reserve must collect both.
func TestBatch_ExclusiveCollectsAllShared(t *testing.T) {
	resv.ResetForTest()

	x := resv.NewObject()
	f1 := fence.New(nil, "f1")
	f2 := fence.New(nil, "f2")
	x.FenceShared[0] = f1
	x.FenceShared[1] = f2
	x.FenceSharedCount = 2

	entry := resv.NewValidationEntry(x, resv.Exclusive)
	b := resv.NewBatch(entry)

	if err := b.Reserve(); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if got := entry.CollectedFences(); len(got) != 2 {
		t.Fatalf("collected %d fences, want 2", len(got))
	}

	b.BackOff()
}

// TestBatch_SharedCollectsOnlyExclusive is scenario S4's second half: a
// shared reserve against a buffer with no exclusive fence collects
// nothing.
func TestBatch_SharedCollectsOnlyExclusive(t *testing.T) {
	resv.ResetForTest()

	x := resv.NewObject()
	f1 := fence.New(nil, "f1")
	x.FenceShared[0] = f1
	x.FenceSharedCount = 1

	entry := resv.NewValidationEntry(x, resv.Shared)
	b := resv.NewBatch(entry)

	if err := b.Reserve(); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if got := entry.CollectedFences(); len(got) != 0 {
		t.Fatalf("collected %d fences, want 0 (no exclusive fence present)", len(got))
	}
	b.BackOff()
}

func TestBatch_SharedCollectsExistingExclusive(t *testing.T) {
	resv.ResetForTest()

	x := resv.NewObject()
	fe := fence.New(nil, "excl")
	x.FenceExcl = fe

	entry := resv.NewValidationEntry(x, resv.Shared)
	b := resv.NewBatch(entry)

	if err := b.Reserve(); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if got := entry.CollectedFences(); len(got) != 1 || got[0] != fe {
		t.Fatalf("collected fences = %v, want [fe]", got)
	}
	b.BackOff()
}

// TestBatch_CapacityExceeded is property 6: a shared reserve against a
// buffer already at MaxSharedFence fails and fully backs off.
func TestBatch_CapacityExceeded(t *testing.T) {
	resv.ResetForTest()

	x := resv.NewObject()
	for i := 0; i < resv.MaxSharedFence; i++ {
		x.FenceShared[i] = fence.New(nil, i)
	}
	x.FenceSharedCount = resv.MaxSharedFence

	entry := resv.NewValidationEntry(x, resv.Shared)
	b := resv.NewBatch(entry)

	if err := b.Reserve(); err != resv.ErrCapacityExceeded {
		t.Fatalf("Reserve = %v, want ErrCapacityExceeded", err)
	}
	if x.Reserved.Load() {
		t.Fatal("failed reserve must leave the buffer unreserved")
	}
}

// TestBatch_RoundTrip is property 7: reserve/commit install a fence that
// a later reserve against an overlapping list collects.
func TestBatch_RoundTrip(t *testing.T) {
	resv.ResetForTest()

	x := resv.NewObject()
	entry1 := resv.NewValidationEntry(x, resv.Exclusive)
	b1 := resv.NewBatch(entry1)
	if err := b1.Reserve(); err != nil {
		t.Fatalf("Reserve 1: %v", err)
	}

	newFence := fence.New(nil, "work")
	if err := b1.Commit(newFence); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	entry2 := resv.NewValidationEntry(x, resv.Shared)
	b2 := resv.NewBatch(entry2)
	if err := b2.Reserve(); err != nil {
		t.Fatalf("Reserve 2: %v", err)
	}

	got := entry2.CollectedFences()
	if len(got) != 1 || got[0] != newFence {
		t.Fatalf("round-trip collected %v, want [newFence]", got)
	}
	b2.BackOff()
}
