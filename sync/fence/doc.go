// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package fence implements a single-shot, one-way software synchronization
// object shared between independent execution engines (CPU goroutines and,
// via [HALFence], GPU command queues) that cannot block each other's
// command streams.
//
// A [Fence] starts unsignaled and transitions to signaled exactly once.
// Anyone holding a reference can block on it ([Fence.Wait],
// [Fence.WaitTimeout]) or register a non-blocking callback ([Fence.AddCallback]).
// The expensive part of turning on notifications — the variant's
// [Ops.EnableSignaling] hook — is deferred until the first waiter or
// callback actually needs it; see the package-level documentation on
// [Fence.EnableSWSignaling] for the protocol this requires.
//
// # Variants
//
// A Fence's completion condition and release behavior are supplied by an
// [Ops] table at construction. This package provides [NewSeqnoFence], whose
// completion condition is a monotonic counter in shared memory crossing a
// target value, and [HALFence], which adapts this codebase's own
// hal.Device/hal.Fence GPU submission fences so GPU work can be observed
// through the same Fence/Wait/AddCallback surface as pure-software work.
package fence
