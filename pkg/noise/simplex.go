package noise

import (
	"math"

	"github.com/joe-loach/kerrbhy/pkg/core"
)

const (
	skew3   = 1.0 / 3.0
	unskew3 = 1.0 / 6.0
)

var grad3 = [12]core.Vec3{
	{X: 1, Y: 1, Z: 0}, {X: -1, Y: 1, Z: 0}, {X: 1, Y: -1, Z: 0}, {X: -1, Y: -1, Z: 0},
	{X: 1, Y: 0, Z: 1}, {X: -1, Y: 0, Z: 1}, {X: 1, Y: 0, Z: -1}, {X: -1, Y: 0, Z: -1},
	{X: 0, Y: 1, Z: 1}, {X: 0, Y: -1, Z: 1}, {X: 0, Y: 1, Z: -1}, {X: 0, Y: -1, Z: -1},
}

// Simplex returns 3D simplex noise in roughly [-1, 1]. Gradients are picked
// by hashing the lattice corner, so no permutation table is needed.
func Simplex(p core.Vec3) float64 {
	s := (p.X + p.Y + p.Z) * skew3
	i := core.NewVec3(p.X+s, p.Y+s, p.Z+s).Floor()

	t := (i.X + i.Y + i.Z) * unskew3
	x0 := p.Subtract(i).Subtract(core.Splat3(t))

	// pick the simplex the point lies in
	var i1, i2 core.Vec3
	switch {
	case x0.X >= x0.Y && x0.Y >= x0.Z:
		i1, i2 = core.NewVec3(1, 0, 0), core.NewVec3(1, 1, 0)
	case x0.X >= x0.Y && x0.X >= x0.Z:
		i1, i2 = core.NewVec3(1, 0, 0), core.NewVec3(1, 0, 1)
	case x0.X >= x0.Y:
		i1, i2 = core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 1)
	case x0.Y < x0.Z:
		i1, i2 = core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 1)
	case x0.X < x0.Z:
		i1, i2 = core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 1)
	default:
		i1, i2 = core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 0)
	}

	x1 := x0.Subtract(i1).Add(core.Splat3(unskew3))
	x2 := x0.Subtract(i2).Add(core.Splat3(2 * unskew3))
	x3 := x0.Subtract(core.Splat3(1)).Add(core.Splat3(3 * unskew3))

	n := corner(i, x0) +
		corner(i.Add(i1), x1) +
		corner(i.Add(i2), x2) +
		corner(i.Add(core.Splat3(1)), x3)

	return 32 * n
}

func corner(cell, offset core.Vec3) float64 {
	t := 0.6 - offset.LengthSquared()
	if t < 0 {
		return 0
	}
	g := grad3[int(math.Floor(Hash3(cell)*12))%12]
	t *= t
	return t * t * g.Dot(offset)
}
