// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package resv implements the reservation manager half of the
// synchronization substrate described by spec.md: atomically acquiring
// exclusive or shared access to an ordered, caller-chosen set of buffer
// objects, deadlock-free among concurrent multi-buffer reservations, and
// attaching a new fence representing the work the caller is about to
// submit.
//
// An [Object] is the minimal external buffer-object contract this
// package consumes (spec.md §3): whether it is currently reserved, an
// exclusive fence slot, a bounded shared fence set, and a wait primitive
// to block on until reservation clears. Real buffer objects embed
// [Object] (see core/buffer_reservation.go for this repo's own buffers)
// rather than this package owning buffer representation or contents.
//
// A [Batch] is built from a caller-ordered list of [ValidationEntry]
// values and driven through [Batch.Reserve], optionally [Batch.Wait],
// then [Batch.Commit] (or [Batch.BackOff] to cancel). Reserve uses a
// wound-or-wait ticket protocol to guarantee that two batches reserving
// overlapping buffers in different orders can never deadlock: see
// [Batch.Reserve]'s doc comment for the full protocol.
package resv
