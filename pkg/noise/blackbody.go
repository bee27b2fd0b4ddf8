package noise

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/joe-loach/kerrbhy/pkg/core"
)

// Temperature range covered by the Planckian locus approximation, in kelvin
const (
	MinTemperature = 1667.0
	MaxTemperature = 25000.0
)

// PlanckianLocus returns the CIE 1931 xy chromaticity of a black body at
// temperature t (Kim et al. cubic spline). t is clamped to the valid range.
func PlanckianLocus(t float64) (x, y float64) {
	t = core.Clamp(t, MinTemperature, MaxTemperature)
	t2 := t * t
	t3 := t2 * t

	if t <= 4000 {
		x = -0.2661239e9/t3 - 0.2343589e6/t2 + 0.8776956e3/t + 0.179910
	} else {
		x = -3.0258469e9/t3 + 2.1070379e6/t2 + 0.2226347e3/t + 0.240390
	}

	x2 := x * x
	x3 := x2 * x
	switch {
	case t <= 2222:
		y = -1.1063814*x3 - 1.34811020*x2 + 2.18555832*x - 0.20219683
	case t <= 4000:
		y = -0.9549476*x3 - 1.37418593*x2 + 2.09137015*x - 0.16748867
	default:
		y = 3.0817580*x3 - 5.87338670*x2 + 3.75112997*x - 0.37001483
	}
	return x, y
}

// BlackBody returns the linear sRGB colour of a black body at temperature t.
// Out-of-gamut negatives are clipped and the result is scaled so its largest
// channel is 1.
func BlackBody(t float64) core.Vec3 {
	cx, cy := PlanckianLocus(t)
	X, Y, Z := colorful.XyyToXyz(cx, cy, 1)
	r, g, b := colorful.XyzToLinearRgb(X, Y, Z)

	c := core.NewVec3(max(r, 0), max(g, 0), max(b, 0))
	if m := c.MaxComponent(); m > 0 {
		c = c.Multiply(1 / m)
	}
	return c
}
