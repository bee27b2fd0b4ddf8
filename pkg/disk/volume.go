// Package disk models the accretion disk, either as a participating medium
// or as a hard signed distance surface.
package disk

import (
	"math"

	"github.com/joe-loach/kerrbhy/pkg/core"
	"github.com/joe-loach/kerrbhy/pkg/noise"
)

// Volume shaping constants
const (
	DensityScale  = 6.0
	EmissionScale = 6.0
	NoiseScale    = 3.0
	SwirlStrength = 2.5

	MinTemperature = 2500.0
	MaxTemperature = 12000.0
)

// Sample is the result of evaluating the volume at a point
type Sample struct {
	Emission core.Vec3
	Density  float64
}

// Volume is a noisy emissive disk lying in the XZ plane
type Volume struct {
	Radius    float64
	Thickness float64
}

// Contains reports whether p lies within the disk's bounding cylinder
func (v Volume) Contains(p core.Vec3) bool {
	if v.Radius <= 0 || v.Thickness <= 0 {
		return false
	}
	return math.Hypot(p.X, p.Z) <= v.Radius && math.Abs(p.Y) <= v.Thickness
}

// Sample evaluates emission and density at p. Outside the bounding cylinder
// both are zero. Each call draws one temperature from the sampler, so the
// colour at a fixed point varies between samples.
func (v Volume) Sample(p core.Vec3, sampler core.Sampler) Sample {
	if !v.Contains(p) {
		return Sample{}
	}

	radial := math.Hypot(p.X, p.Z)

	// inner rings turn faster than outer ones
	angle := SwirlStrength*math.Log1p(radial) + p.Y/v.Thickness
	q := core.NewVec2(p.X, p.Z).Rotate(angle)

	n := noise.FBM(core.NewVec3(q.X, p.Y, q.Y).Multiply(NoiseScale))

	vertical := core.Smoothstep(v.Thickness, 0, math.Abs(p.Y))
	t := radial / v.Radius

	density := DensityScale * n * vertical * densityFalloff(t)
	intensity := EmissionScale * n * n * vertical * emissionFalloff(radial)

	temperature := core.Mix(MinTemperature, MaxTemperature, sampler.Get1D())
	emission := noise.BlackBody(temperature).Multiply(intensity)

	return Sample{Emission: emission, Density: density}
}

// densityFalloff thins the disk towards its outer edge; t is radial/Radius
func densityFalloff(t float64) float64 {
	return (1 - t) * (1 - t)
}

// emissionFalloff makes the hot inner region glow brightest
func emissionFalloff(radial float64) float64 {
	return 1 / (1 + radial*radial)
}
