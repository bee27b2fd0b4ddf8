package core

import (
	"math"
	"math/rand/v2"
)

// RandomSampler wraps a Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewPixelSampler returns a deterministic sampler for one pixel invocation.
// The stream depends only on (seed, pixel, frame), so output does not depend
// on which worker runs the pixel.
func NewPixelSampler(seed uint64, pixel int, frame int) *RandomSampler {
	stream := uint64(pixel)<<32 | uint64(uint32(frame))
	return NewRandomSampler(rand.New(rand.NewPCG(seed, stream)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	return NewVec3(x, y, z)
}

// SamplePointInUnitDisk maps a uniform sample to a uniform point in the unit disk
func SamplePointInUnitDisk(sample Vec2) Vec2 {
	r := math.Sqrt(sample.X)
	theta := 2 * math.Pi * sample.Y
	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// SampleGaussian2D returns a 2D normal deviate with standard deviation sigma
// (Box-Muller). sample.X must be in [0, 1); it is flipped to (0, 1] before the log.
func SampleGaussian2D(sample Vec2, sigma float64) Vec2 {
	r := sigma * math.Sqrt(-2*math.Log(1-sample.X))
	theta := 2 * math.Pi * sample.Y
	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}
