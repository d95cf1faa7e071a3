package services

import "math"

// MaxDeclaredCount caps every caller-declared token count and iteration count.
const MaxDeclaredCount = math.MaxInt32

func clampCount(v int) int {
	return min(max(v, 0), MaxDeclaredCount)
}

// saturate rounds f to an int, pinning values beyond the int range to math.MaxInt64.
func saturate(f float64) int {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int(math.Round(f))
}
