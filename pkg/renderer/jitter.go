package renderer

import (
	"math"

	"github.com/joe-loach/kerrbhy/pkg/core"
)

// Bloom spreads a few samples far from the pixel centre so bright regions
// bleed into their neighbours.
const (
	BloomWide         = 8.0 // pixels
	BloomWideChance   = 0.02
	BloomNarrow       = 1.5 // pixels
	BloomNarrowChance = 0.08
)

// maxRejections bounds the anti-aliasing rejection loop
const maxRejections = 16

// blackmanHarris is the Blackman-Harris window on r in [0, 1], 1 at the
// centre and ~0 at the rim.
func blackmanHarris(r float64) float64 {
	const (
		a0 = 0.35875
		a1 = 0.48829
		a2 = 0.14128
		a3 = 0.01168
	)
	x := math.Pi * r
	return a0 + a1*math.Cos(x) + a2*math.Cos(2*x) + a3*math.Cos(3*x)
}

// AntiAliasOffset returns a sub-pixel offset within a one pixel radius,
// distributed by the Blackman-Harris window.
func AntiAliasOffset(sampler core.Sampler) core.Vec2 {
	for i := 0; i < maxRejections; i++ {
		p := core.SamplePointInUnitDisk(sampler.Get2D())
		if sampler.Get1D() < blackmanHarris(p.Length()) {
			return p
		}
	}
	return core.Vec2{}
}

// BloomOffset returns a Gaussian offset for a small fraction of samples and
// zero for the rest.
func BloomOffset(sampler core.Sampler) core.Vec2 {
	u := sampler.Get1D()
	switch {
	case u < BloomWideChance:
		return core.SampleGaussian2D(sampler.Get2D(), BloomWide)
	case u < BloomWideChance+BloomNarrowChance:
		return core.SampleGaussian2D(sampler.Get2D(), BloomNarrow)
	default:
		return core.Vec2{}
	}
}
