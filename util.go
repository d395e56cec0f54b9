package doom

import "math"

func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func ClampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Fract returns the fractional part of x, always in [0,1).
func Fract(x float64) float64 {
	return x - math.Floor(x)
}
