package ode

import "github.com/joe-loach/kerrbhy/pkg/core"

// BlackholeRadius is the event horizon radius. It also sets the length scale
// of the gravitational field.
const BlackholeRadius = 0.6

// GravitationalField is the inverse fifth power central force a = -6 r/|r|^5
// with r = p/BlackholeRadius. It is singular at the origin; rays are captured
// long before they get there.
func GravitationalField(p core.Vec3) core.Vec3 {
	r := p.Multiply(1 / BlackholeRadius)
	rn := r.Length()
	return r.Multiply(-6 / (rn * rn * rn * rn * rn))
}
