package common

import "math"

// Lerp64 interpolates camera and world coordinates.
func Lerp64(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
