// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package allbackends imports all HAL backend implementations.
//
// Import this package for side effects to register all available backends:
//
//	import (
//		_ "github.com/gogpu/wgpu/hal/allbackends"
//	)
//
// This will register:
//   - Vulkan backend (Windows, Linux, macOS)
//   - No-op backend (all platforms, for testing)
//
// After importing, use hal.GetBackend or hal.SelectBestBackend to access backends.
//
// Build constraints control which backends are available:
//   - Vulkan is imported on windows, darwin, and linux (but not android)
//   - The software backend is not imported by this package
//
// Example usage:
//
//	import (
//		_ "github.com/gogpu/wgpu/hal/allbackends"
//		"github.com/gogpu/wgpu/core"
//	)
//
//	func main() {
//		// Instance will now enumerate real GPUs
//		instance := core.NewInstance(nil)
//		adapters := instance.EnumerateAdapters()
//		for _, a := range adapters {
//			fmt.Println(a) // Real GPU adapters
//		}
//	}
package allbackends
