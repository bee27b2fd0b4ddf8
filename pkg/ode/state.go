// Package ode integrates light rays as a coupled first order system:
// d(pos)/dt = vel and d(vel)/dt = field(pos).
package ode

import "github.com/joe-loach/kerrbhy/pkg/core"

// State is the packed (position, velocity) pair of a ray
type State struct {
	Pos core.Vec3
	Vel core.Vec3
}

// Add returns the component-wise sum of two states
func (s State) Add(other State) State {
	return State{Pos: s.Pos.Add(other.Pos), Vel: s.Vel.Add(other.Vel)}
}

// Multiply scales both halves of the state
func (s State) Multiply(scalar float64) State {
	return State{Pos: s.Pos.Multiply(scalar), Vel: s.Vel.Multiply(scalar)}
}

// Field is an acceleration that depends only on position
type Field func(p core.Vec3) core.Vec3

// Derivative returns d/dt of a state under the field
func (f Field) Derivative(s State) State {
	return State{Pos: s.Vel, Vel: f(s.Pos)}
}
