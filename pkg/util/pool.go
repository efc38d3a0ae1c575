package util

import "runtime"

// OptimalPoolSize returns the default worker and parser pool size.
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32)
//
// Parsing runs through cgo, so oversubscribing cores by 2x keeps workers busy
// while others are blocked in tree-sitter. The parser pool and the conversion
// worker pool must use the same size or workers stall waiting for parsers.
func OptimalPoolSize() int {
	poolSize := runtime.NumCPU() * 2

	if poolSize < 4 {
		poolSize = 4
	}
	if poolSize > 32 {
		poolSize = 32
	}

	return poolSize
}

// PoolSize returns override when positive, OptimalPoolSize otherwise.
func PoolSize(override int) int {
	if override > 0 {
		return override
	}
	return OptimalPoolSize()
}
