package scene

import (
	"math"

	"github.com/joe-loach/kerrbhy/pkg/core"
)

// Bounds is an inclusive range
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in [Min, Max]
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// OrbitCamera orbits a target at a fixed distance. Phi is the inclination
// from +Y and Theta the angle around Y.
type OrbitCamera struct {
	FOV    float64   `json:"fov"` // radians
	Radius float64   `json:"radius"`
	Bounds Bounds    `json:"bounds"`
	Target core.Vec3 `json:"target"`
	Phi    float64   `json:"phi"`
	Theta  float64   `json:"theta"`
}

// Phi is kept away from the poles so the view basis stays defined
const (
	MinPhi = 0.1
	MaxPhi = math.Pi - 0.1
)

// NewOrbitCamera creates a camera on the equator looking at target
func NewOrbitCamera(fov, radius float64, bounds Bounds, target core.Vec3) OrbitCamera {
	return OrbitCamera{
		FOV:    fov,
		Radius: radius,
		Bounds: bounds,
		Target: target,
		Phi:    math.Pi / 2,
		Theta:  0,
	}
}

// Eye returns the camera position
func (c OrbitCamera) Eye() core.Vec3 {
	ts, tc := math.Sincos(c.Theta)
	ps, pc := math.Sincos(c.Phi)
	return core.NewVec3(
		c.Radius*ps*tc,
		c.Radius*pc,
		c.Radius*ps*ts,
	).Add(c.Target)
}

// View returns the camera-to-world transform
func (c OrbitCamera) View() core.Transform {
	return core.LookAt(c.Eye(), c.Target, core.NewVec3(0, 1, 0))
}

// Orbit moves the camera around the target
func (c *OrbitCamera) Orbit(dTheta, dPhi float64) {
	c.Theta += dTheta
	c.Phi = core.Clamp(c.Phi+dPhi, MinPhi, MaxPhi)
}

// Zoom changes the orbit radius, ignoring moves that would leave Bounds
func (c *OrbitCamera) Zoom(delta float64) {
	if zoomed := c.Radius + delta; c.Bounds.Contains(zoomed) {
		c.Radius = zoomed
	}
}
