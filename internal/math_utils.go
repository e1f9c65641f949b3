package internal

import "math"

type Numbers interface {
	int | int8 | int16 | int32 | int64
}

// AddOverflows reports whether a + b would exceed the maximum value held by
// an int64. Both values are expected to be non-negative.
func AddOverflows[T Numbers](a, b T) bool {
	return int64(a) > math.MaxInt64-int64(b)
}

// SaturatingAdd returns a + b, or math.MaxInt64 when the sum would overflow.
func SaturatingAdd[T Numbers](a, b T) int64 {
	if AddOverflows(a, b) {
		return math.MaxInt64
	}
	return int64(a) + int64(b)
}
