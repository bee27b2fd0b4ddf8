package core

import (
	"math"
	"testing"
)

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		normal   Vec3
		expected Vec3
	}{
		{
			name:     "Head-on reflection",
			vector:   NewVec3(0, -1, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(0, 1, 0),
		},
		{
			name:     "Glancing reflection",
			vector:   NewVec3(1, -1, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 1, 0),
		},
		{
			name:     "Parallel to plane",
			vector:   NewVec3(1, 0, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Reflect(tt.normal)

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_ReflectPreservesLength(t *testing.T) {
	v := NewVec3(0.3, -2.1, 0.7)
	n := NewVec3(1, 2, -0.5).Normalize()
	if diff := math.Abs(v.Reflect(n).Length() - v.Length()); diff > 1e-12 {
		t.Errorf("Reflect changed length by %g", diff)
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", got)
	}
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	if got := x.Cross(y); got != NewVec3(0, 0, 1) {
		t.Errorf("x cross y = %v, want +z", got)
	}
}

func TestVec4_IsValidColor(t *testing.T) {
	tests := []struct {
		name  string
		color Vec4
		valid bool
	}{
		{"Black", NewVec4(0, 0, 0, 1), true},
		{"Bright", NewVec4(3, 2, 1, 1), true},
		{"Sentinel", NewVec4(-1, -1, -1, 1), false},
		{"NaN", NewVec4(math.NaN(), 0, 0, 1), false},
		{"Inf", NewVec4(0, math.Inf(1), 0, 1), false},
		{"Negative infinity", NewVec4(0, 0, math.Inf(-1), 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.IsValidColor(); got != tt.valid {
				t.Errorf("IsValidColor(%v) = %v, want %v", tt.color, got, tt.valid)
			}
		})
	}
}

func TestVec4_Lerp(t *testing.T) {
	a := NewVec4(0, 0, 0, 0)
	b := NewVec4(1, 2, 4, 8)
	got := a.Lerp(b, 0.25)
	want := NewVec4(0.25, 0.5, 1, 2)
	if got != want {
		t.Errorf("Lerp = %v, want %v", got, want)
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		edge0, edge1, x, want float64
	}{
		{0, 1, -1, 0},
		{0, 1, 2, 1},
		{0, 1, 0.5, 0.5},
		{1, 0, 0, 1}, // reversed edges fall
		{1, 0, 1, 0},
	}
	for _, tt := range tests {
		if got := Smoothstep(tt.edge0, tt.edge1, tt.x); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Smoothstep(%v, %v, %v) = %v, want %v", tt.edge0, tt.edge1, tt.x, got, tt.want)
		}
	}
}

func TestLookAt(t *testing.T) {
	view := LookAt(NewVec3(0, 0, 5), NewVec3(0, 0, 0), NewVec3(0, 1, 0))

	// Camera-space forward is -Z
	forward := view.Direction(NewVec3(0, 0, -1))
	if forward.Subtract(NewVec3(0, 0, -1)).Length() > 1e-12 {
		t.Errorf("Forward = %v, want (0,0,-1)", forward)
	}

	up := view.Direction(NewVec3(0, 1, 0))
	if up.Subtract(NewVec3(0, 1, 0)).Length() > 1e-12 {
		t.Errorf("Up = %v, want (0,1,0)", up)
	}

	// Basis is orthonormal, so transpose is the inverse
	id := view.Basis.Transpose().Mul(view.Basis)
	for i, col := range []Vec3{id.X, id.Y, id.Z} {
		want := [3]Vec3{NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1)}[i]
		if col.Subtract(want).Length() > 1e-12 {
			t.Errorf("Basis not orthonormal: column %d = %v", i, col)
		}
	}
}
