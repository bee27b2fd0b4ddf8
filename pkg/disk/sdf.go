package disk

import (
	"math"

	"github.com/joe-loach/kerrbhy/pkg/core"
)

// SDF is the signed distance from p to a capped cylinder around the Y axis
// with half-height thickness and radius sqrt(radius). Negative inside.
func SDF(p core.Vec3, thickness, radius float64) float64 {
	dx := math.Abs(math.Hypot(p.X, p.Z)) - math.Sqrt(radius)
	dy := math.Abs(p.Y) - thickness

	inside := min(max(dx, dy), 0)
	outside := math.Hypot(max(dx, 0), max(dy, 0))
	return inside + outside
}
