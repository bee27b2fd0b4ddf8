// Package noise provides the hashing and procedural noise functions used to
// build the accretion disk and the procedural starfield.
package noise

import (
	"math"

	"github.com/joe-loach/kerrbhy/pkg/core"
)

// FBMOctaves is the number of octaves summed by FBM
const FBMOctaves = 8

// Hash maps a scalar to a pseudo-random value in [0, 1)
func Hash(n float64) float64 {
	return core.Fract(math.Sin(n) * 43758.5453)
}

// Hash3 maps a lattice cell to a pseudo-random value in [0, 1)
func Hash3(cell core.Vec3) float64 {
	return Hash(cell.Dot(core.NewVec3(1, 57, 113)))
}

// Value returns smoothly interpolated lattice value noise in [0, 1)
func Value(p core.Vec3) float64 {
	i := p.Floor()
	f := p.Fract()

	// quintic fade keeps the derivative continuous across cells
	u := core.NewVec3(fade(f.X), fade(f.Y), fade(f.Z))

	n := i.Dot(core.NewVec3(1, 57, 113))

	return core.Mix(
		core.Mix(
			core.Mix(Hash(n+0), Hash(n+1), u.X),
			core.Mix(Hash(n+57), Hash(n+58), u.X),
			u.Y),
		core.Mix(
			core.Mix(Hash(n+113), Hash(n+114), u.X),
			core.Mix(Hash(n+170), Hash(n+171), u.X),
			u.Y),
		u.Z)
}

// FBM sums FBMOctaves octaves of value noise, halving amplitude and roughly
// doubling frequency each octave. The result is normalised to [0, 1).
func FBM(p core.Vec3) float64 {
	var sum, norm float64
	amp := 0.5
	for i := 0; i < FBMOctaves; i++ {
		sum += amp * Value(p)
		norm += amp
		amp *= 0.5
		// off-integer lacunarity stops octaves lining up on the lattice
		p = p.Multiply(2.02).Add(core.NewVec3(1.7, 9.2, 5.3))
	}
	return sum / norm
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}
