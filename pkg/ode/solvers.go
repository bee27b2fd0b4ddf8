package ode

import (
	"fmt"
	"math"

	"github.com/joe-loach/kerrbhy/pkg/core"
)

// Adaptive step size control
const (
	Tolerance = 1e-5
	HMin      = 1e-8
	HMax      = 1e-1
)

// Euler returns the forward Euler delta h*f(s)
func Euler(f Field, s State, h float64) State {
	return f.Derivative(s).Multiply(h)
}

// RK4 returns the classic fourth order Runge-Kutta delta
func RK4(f Field, s State, h float64) State {
	k1 := f.Derivative(s)
	k2 := f.Derivative(s.Add(k1.Multiply(h / 2)))
	k3 := f.Derivative(s.Add(k2.Multiply(h / 2)))
	k4 := f.Derivative(s.Add(k3.Multiply(h)))

	sum := k1.Add(k2.Multiply(2)).Add(k3.Multiply(2)).Add(k4)
	return sum.Multiply(h / 6)
}

// Adaptive takes one Bogacki-Shampine 3(2) step. It returns the third order
// delta and the step size to use next. The step is always accepted; a large
// error estimate only shrinks the following step.
func Adaptive(f Field, s State, h float64) (State, float64) {
	k1 := f.Derivative(s)
	k2 := f.Derivative(s.Add(k1.Multiply(h / 2)))
	k3 := f.Derivative(s.Add(k2.Multiply(3 * h / 4)))

	third := k1.Multiply(2.0 / 9.0).
		Add(k2.Multiply(1.0 / 3.0)).
		Add(k3.Multiply(4.0 / 9.0)).
		Multiply(h)

	k4 := f.Derivative(s.Add(third))

	second := k1.Multiply(7.0 / 24.0).
		Add(k2.Multiply(1.0 / 4.0)).
		Add(k3.Multiply(1.0 / 3.0)).
		Add(k4.Multiply(1.0 / 8.0)).
		Multiply(h)

	err := math.Max(
		third.Pos.Subtract(second.Pos).Length(),
		third.Vel.Subtract(second.Vel).Length(),
	)

	return third, NextStep(h, err)
}

// NextStep computes 0.9 * clamp(h * sqrt(tol/(2*err)), HMin, HMax)
func NextStep(h, err float64) float64 {
	if err == 0 {
		return 0.9 * HMax
	}
	next := h * math.Sqrt(Tolerance/(2*err))
	if math.IsNaN(next) {
		next = HMin
	}
	return 0.9 * core.Clamp(next, HMin, HMax)
}

// Method selects an integrator
type Method int

const (
	MethodEuler Method = iota
	MethodRK4
	MethodAdaptive
)

// Step advances s by one step of the method. Fixed step methods return h
// unchanged as the next step size.
func (m Method) Step(f Field, s State, h float64) (State, float64) {
	switch m {
	case MethodRK4:
		return RK4(f, s, h), h
	case MethodAdaptive:
		return Adaptive(f, s, h)
	default:
		return Euler(f, s, h), h
	}
}

func (m Method) String() string {
	switch m {
	case MethodEuler:
		return "euler"
	case MethodRK4:
		return "rk4"
	case MethodAdaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}
