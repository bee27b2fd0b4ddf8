package sky

import (
	"github.com/joe-loach/kerrbhy/pkg/core"
	"github.com/joe-loach/kerrbhy/pkg/noise"
)

// StarLayer is one grid of hashed point stars
type StarLayer struct {
	Scale     float64 // grid cells per unit of direction
	Density   float64 // fraction of cells holding a star
	Size      float64 // star radius in cell units
	Intensity float64
}

// DefaultStarLayers goes from a few bright stars to many faint ones
var DefaultStarLayers = []StarLayer{
	{Scale: 12, Density: 0.08, Size: 0.2, Intensity: 4},
	{Scale: 40, Density: 0.15, Size: 0.16, Intensity: 1.5},
	{Scale: 110, Density: 0.25, Size: 0.12, Intensity: 0.6},
}

// ProceduralSky is a starfield built from layered grid-hashed stars, each
// coloured by a black-body temperature driven by simplex noise.
type ProceduralSky struct {
	Layers []StarLayer
	// TemperatureScale is the frequency of the temperature noise over the sphere
	TemperatureScale float64
	Background       core.Vec3
}

// NewProceduralSky returns a sky using DefaultStarLayers
func NewProceduralSky() *ProceduralSky {
	return &ProceduralSky{
		Layers:           DefaultStarLayers,
		TemperatureScale: 3.5,
		Background:       core.NewVec3(0.002, 0.002, 0.004),
	}
}

func (s *ProceduralSky) Color(dir core.Vec3) core.Vec3 {
	c := s.Background
	for i, layer := range s.Layers {
		c = c.Add(s.layer(dir, layer, float64(i)))
	}
	return c
}

func (s *ProceduralSky) layer(dir core.Vec3, l StarLayer, seed float64) core.Vec3 {
	p := dir.Multiply(l.Scale)
	cell := p.Floor()

	// offset the hash per layer so layers do not line up
	salt := core.NewVec3(seed*17.1, seed*31.7, seed*7.3)
	if noise.Hash3(cell.Add(salt)) > l.Density {
		return core.Vec3{}
	}

	jitter := core.NewVec3(
		noise.Hash3(cell.Add(salt).Add(core.NewVec3(1.3, 0, 0))),
		noise.Hash3(cell.Add(salt).Add(core.NewVec3(0, 2.9, 0))),
		noise.Hash3(cell.Add(salt).Add(core.NewVec3(0, 0, 4.1))),
	)
	// keep the star away from the cell walls so it is never clipped
	star := cell.Add(core.Splat3(0.5)).Add(jitter.Subtract(core.Splat3(0.5)).Multiply(0.6))

	d := p.Subtract(star).Length()
	brightness := core.Smoothstep(l.Size, 0, d)
	if brightness == 0 {
		return core.Vec3{}
	}

	t := 0.5 + 0.5*noise.Simplex(star.Multiply(s.TemperatureScale/l.Scale))
	temperature := core.Mix(noise.MinTemperature*2, noise.MaxTemperature*0.6, core.Clamp(t, 0, 1))

	return noise.BlackBody(temperature).Multiply(l.Intensity * brightness * brightness)
}
