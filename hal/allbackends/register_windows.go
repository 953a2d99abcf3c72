// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package allbackends

import (
	// Windows-specific HAL backend imports.

	// Vulkan backend - primary backend on Windows.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)
