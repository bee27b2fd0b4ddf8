package renderer

import (
	"math"

	"github.com/joe-loach/kerrbhy/pkg/core"
)

// Camera generates primary rays for a pinhole perspective projection
type Camera struct {
	View   core.Transform // camera-to-world
	FOV    float64        // radians
	Width  int
	Height int
}

// NewCamera creates a camera for an image of the given size
func NewCamera(view core.Transform, fov float64, width, height int) *Camera {
	return &Camera{
		View:   view,
		FOV:    fov,
		Width:  width,
		Height: height,
	}
}

// Direction returns the camera-space direction through the image point
// (px, py), measured in pixels from the top-left corner. The longer image
// axis spans uv in [-1, 1] and +y points up.
func (c *Camera) Direction(px, py float64) core.Vec3 {
	res := math.Max(float64(c.Width), float64(c.Height))
	u := 2 * (px - 0.5*float64(c.Width)) / res
	v := -2 * (py - 0.5*float64(c.Height)) / res

	scale := 2 * c.FOV * core.InvPi
	return core.NewVec3(u*scale, v*scale, -1).Normalize()
}

// GetRay returns the world-space ray through the image point (px, py)
func (c *Camera) GetRay(px, py float64) core.Ray {
	return core.NewRay(c.View.Origin, c.View.Direction(c.Direction(px, py)))
}
