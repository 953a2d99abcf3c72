// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resv

// ResetForTest clears the package-level ticket counter. Test-only: lets
// table-driven tests assert on specific ticket values without cross-test
// contamination from whichever order subtests happen to run in.
func ResetForTest() {
	RESERVE_LOCK.Lock()
	batchSeq = 0
	RESERVE_LOCK.Unlock()
}
