// Package conv provides safe integer conversion helpers shared by the
// grammar and cdawg packages.
//
// These functions perform bounds checking before narrowing integer
// conversions to prevent silent overflow. They panic on overflow since this
// indicates a programming error (e.g. a grammar or text far larger than the
// supported position range), not a recoverable runtime condition.
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// Int32ToInt safely converts an int32 read from a grammar symbol stream to
// an int. Grammar symbol codes are always non-negative except for the -1
// rule-terminator sentinel, which callers check for separately before
// reaching this conversion.
//
//go:inline
func Int32ToInt(n int32) int {
	return int(n)
}
