package ode

import (
	"math"
	"testing"

	"github.com/joe-loach/kerrbhy/pkg/core"
)

const tolerance = 1e-12

func zeroField(core.Vec3) core.Vec3 { return core.Vec3{} }

func constantField(a core.Vec3) Field {
	return func(core.Vec3) core.Vec3 { return a }
}

func near(a, b core.Vec3, tol float64) bool {
	return a.Subtract(b).Length() <= tol
}

func TestGravitationalField_HorizonMagnitude(t *testing.T) {
	// at |p| = R the scaled radius is 1, so |a| = 6
	dirs := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 1, 1).Normalize(),
		core.NewVec3(-0.3, 0.8, 0.2).Normalize(),
	}
	for _, d := range dirs {
		p := d.Multiply(BlackholeRadius)
		a := GravitationalField(p)
		if math.Abs(a.Length()-6) > 1e-9 {
			t.Errorf("|a(%v)| = %v, want 6", p, a.Length())
		}
		// attractive: points back towards the origin
		if a.Dot(p) >= 0 {
			t.Errorf("a(%v) = %v is not attractive", p, a)
		}
	}
}

func TestGravitationalField_FifthPowerFalloff(t *testing.T) {
	inner := GravitationalField(core.NewVec3(BlackholeRadius, 0, 0)).Length()
	outer := GravitationalField(core.NewVec3(2*BlackholeRadius, 0, 0)).Length()
	// |a| ∝ 1/|r|^4
	if math.Abs(inner/outer-16) > 1e-9 {
		t.Errorf("Falloff ratio = %v, want 16", inner/outer)
	}
}

func TestSolvers_ZeroField(t *testing.T) {
	s := State{Pos: core.NewVec3(1, 2, 3), Vel: core.NewVec3(0.5, -0.25, 2)}

	for _, h := range []float64{0, 1e-8, 0.05, 0.1, 1, 7.5} {
		for _, m := range []Method{MethodEuler, MethodRK4, MethodAdaptive} {
			delta, _ := m.Step(zeroField, s, h)
			if delta.Vel != (core.Vec3{}) {
				t.Errorf("%v h=%v: Δv = %v, want 0", m, h, delta.Vel)
			}
			want := s.Vel.Multiply(h)
			if !near(delta.Pos, want, tolerance*math.Max(1, h)) {
				t.Errorf("%v h=%v: Δp = %v, want %v", m, h, delta.Pos, want)
			}
		}
	}
}

func TestRK4_ConstantField(t *testing.T) {
	a := core.NewVec3(0.3, -9.81, 1.2)
	s := State{Pos: core.NewVec3(-1, 0, 4), Vel: core.NewVec3(2, 1, -0.5)}

	for _, h := range []float64{0.01, 0.05, 0.5, 2} {
		delta := RK4(constantField(a), s, h)

		wantV := a.Multiply(h)
		wantP := s.Vel.Multiply(h).Add(a.Multiply(0.5 * h * h))

		if !near(delta.Vel, wantV, 1e-12) {
			t.Errorf("h=%v: Δv = %v, want %v", h, delta.Vel, wantV)
		}
		if !near(delta.Pos, wantP, 1e-12) {
			t.Errorf("h=%v: Δp = %v, want %v", h, delta.Pos, wantP)
		}
	}
}

func TestEuler_Delta(t *testing.T) {
	a := core.NewVec3(0, -1, 0)
	s := State{Pos: core.NewVec3(0, 0, 0), Vel: core.NewVec3(1, 0, 0)}
	delta := Euler(constantField(a), s, 0.5)
	if delta.Pos != core.NewVec3(0.5, 0, 0) || delta.Vel != core.NewVec3(0, -0.5, 0) {
		t.Errorf("Euler delta = %+v", delta)
	}
}

func TestAdaptive_ConstantFieldExact(t *testing.T) {
	// both embedded solutions are exact for constant acceleration, so the
	// error estimate collapses and the next step saturates at HMax
	a := core.NewVec3(0, -2, 0)
	s := State{Vel: core.NewVec3(1, 0, 0)}
	h := 0.05

	delta, next := Adaptive(constantField(a), s, h)

	wantP := s.Vel.Multiply(h).Add(a.Multiply(0.5 * h * h))
	if !near(delta.Pos, wantP, 1e-12) {
		t.Errorf("Δp = %v, want %v", delta.Pos, wantP)
	}
	if next > 0.9*HMax+1e-15 || next < 0.9*HMin {
		t.Errorf("next step %v outside [0.9*HMin, 0.9*HMax]", next)
	}
}

func TestAdaptive_ShrinksNearHorizon(t *testing.T) {
	s := State{Pos: core.NewVec3(0.7, 0, 0), Vel: core.NewVec3(0, 0, -1)}
	_, next := Adaptive(GravitationalField, s, HMax)
	if next >= 0.9*HMax {
		t.Errorf("Expected step to shrink near the horizon, got %v", next)
	}
}

func TestNextStep(t *testing.T) {
	tests := []struct {
		name string
		h    float64
		err  float64
		want float64
	}{
		{"Zero error saturates", 0.05, 0, 0.9 * HMax},
		{"Zero error with zero step", 0, 0, 0.9 * HMax},
		{"Huge error floors", 0.05, 1e30, 0.9 * HMin},
		{"Infinite error floors", 0.05, math.Inf(1), 0.9 * HMin},
		{"NaN error floors", 0.05, math.NaN(), 0.9 * HMin},
		{"Error at tolerance", 0.05, Tolerance / 2, 0.9 * 0.05},
		{"Quarter error doubles step", 0.01, Tolerance / 8, 0.9 * 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextStep(tt.h, tt.err)
			if math.Abs(got-tt.want) > 1e-15 {
				t.Errorf("NextStep(%v, %v) = %v, want %v", tt.h, tt.err, got, tt.want)
			}
		})
	}
}

func TestMethod_StepKeepsFixedStep(t *testing.T) {
	s := State{Pos: core.NewVec3(2, 0, 0), Vel: core.NewVec3(0, 1, 0)}
	for _, m := range []Method{MethodEuler, MethodRK4} {
		if _, next := m.Step(GravitationalField, s, 0.05); next != 0.05 {
			t.Errorf("%v changed step size to %v", m, next)
		}
	}
}
