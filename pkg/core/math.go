package core

import "math"

const (
	// InvPi is 1/π
	InvPi = 1.0 / math.Pi
	// Inv2Pi is 1/(2π)
	Inv2Pi = 1.0 / (2 * math.Pi)
)

// Clamp restricts x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	return max(lo, min(hi, x))
}

// Mix linearly interpolates between a and b
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Fract returns x - floor(x)
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// Smoothstep is the cubic Hermite step between edge0 and edge1.
// Reversed edges (edge0 > edge1) produce a falling step.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
