package renderer

import (
	"math"

	"github.com/joe-loach/kerrbhy/pkg/core"
	"github.com/joe-loach/kerrbhy/pkg/integrator"
)

// Gamma is the display gamma exponent applied to averaged pixels
const Gamma = 0.45

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Frame            int     // Frames accumulated so far (progressive) or 1 (software)
	TotalPixels      int     // Total number of pixels rendered
	TotalSamples     int     // Total number of samples taken
	DiscardedSamples int     // Samples excluded from the average
	AverageSamples   float64 // Average valid samples per pixel
}

// Add merges other into s
func (s *RenderStats) Add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.DiscardedSamples += other.DiscardedSamples
}

func (s *RenderStats) finalize() {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples-s.DiscardedSamples) / float64(s.TotalPixels)
	}
}

// PixelStats tracks the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator of valid samples
	SampleCount int       // Valid samples averaged
	Discarded   int       // Samples rejected as invalid
}

// AddSample adds a kernel result, dropping it if it is not a valid colour
func (ps *PixelStats) AddSample(r integrator.Result) {
	if !r.Valid() {
		ps.Discarded++
		return
	}
	ps.ColorAccum = ps.ColorAccum.Add(r.Color)
	ps.SampleCount++
}

// GetColor returns the mean of the valid samples. ok is false when every
// sample was discarded.
func (ps *PixelStats) GetColor() (color core.Vec3, ok bool) {
	if ps.SampleCount == 0 {
		return core.Vec3{}, false
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount)), true
}

// GammaCorrect raises each channel to Gamma and sets alpha to 1
func GammaCorrect(c core.Vec3) core.Vec4 {
	return core.NewVec4(
		math.Pow(c.X, Gamma),
		math.Pow(c.Y, Gamma),
		math.Pow(c.Z, Gamma),
		1,
	)
}
