package noise

import (
	"math"
	"testing"

	"github.com/joe-loach/kerrbhy/pkg/core"
)

func gridPoints() []core.Vec3 {
	var points []core.Vec3
	for x := -3.0; x <= 3; x += 0.37 {
		for y := -3.0; y <= 3; y += 0.41 {
			for z := -3.0; z <= 3; z += 0.53 {
				points = append(points, core.NewVec3(x, y, z))
			}
		}
	}
	return points
}

func TestValue_Range(t *testing.T) {
	for _, p := range gridPoints() {
		if v := Value(p); v < 0 || v >= 1 || math.IsNaN(v) {
			t.Fatalf("Value(%v) = %v, want [0,1)", p, v)
		}
	}
}

func TestValue_InterpolatesLattice(t *testing.T) {
	// at an integer lattice point value noise returns the corner hash
	p := core.NewVec3(2, -1, 3)
	if got, want := Value(p), Hash3(p); math.Abs(got-want) > 1e-12 {
		t.Errorf("Value(%v) = %v, want corner hash %v", p, got, want)
	}
}

func TestFBM_Range(t *testing.T) {
	for _, p := range gridPoints() {
		if v := FBM(p); v < 0 || v >= 1 || math.IsNaN(v) {
			t.Fatalf("FBM(%v) = %v, want [0,1)", p, v)
		}
	}
}

func TestFBM_Deterministic(t *testing.T) {
	p := core.NewVec3(0.3, 1.7, -2.2)
	if FBM(p) != FBM(p) {
		t.Error("FBM is not a pure function")
	}
}

func TestSimplex_Bounded(t *testing.T) {
	var sawPositive, sawNegative bool
	for _, p := range gridPoints() {
		v := Simplex(p)
		if math.IsNaN(v) || math.Abs(v) > 1.5 {
			t.Fatalf("Simplex(%v) = %v out of range", p, v)
		}
		if v > 0 {
			sawPositive = true
		}
		if v < 0 {
			sawNegative = true
		}
	}
	if !sawPositive || !sawNegative {
		t.Error("Simplex noise should take both signs")
	}
}

func TestBlackBody(t *testing.T) {
	tests := []struct {
		name        string
		temperature float64
		redder      bool
	}{
		{"Cool", 2000, true},
		{"Warm", 3500, true},
		{"Hot", 15000, false},
		{"Hottest", 25000, false},
		{"Below range clamps", 100, true},
		{"Above range clamps", 1e6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := BlackBody(tt.temperature)
			for _, ch := range []float64{c.X, c.Y, c.Z} {
				if ch < 0 || ch > 1+1e-12 || math.IsNaN(ch) {
					t.Fatalf("BlackBody(%v) = %v, channels must be in [0,1]", tt.temperature, c)
				}
			}
			if math.Abs(c.MaxComponent()-1) > 1e-12 {
				t.Errorf("BlackBody(%v) max channel = %v, want 1", tt.temperature, c.MaxComponent())
			}
			if tt.redder && c.X <= c.Z {
				t.Errorf("BlackBody(%v) = %v, expected red > blue", tt.temperature, c)
			}
			if !tt.redder && c.Z <= c.X {
				t.Errorf("BlackBody(%v) = %v, expected blue > red", tt.temperature, c)
			}
		})
	}
}

func TestPlanckianLocus_Continuous(t *testing.T) {
	// the piecewise fits should meet at their seams
	for _, seam := range []float64{2222, 4000} {
		x0, y0 := PlanckianLocus(seam - 1e-6)
		x1, y1 := PlanckianLocus(seam + 1e-6)
		if math.Abs(x0-x1) > 1e-3 || math.Abs(y0-y1) > 1e-3 {
			t.Errorf("Discontinuity at %vK: (%v,%v) vs (%v,%v)", seam, x0, y0, x1, y1)
		}
	}
}
