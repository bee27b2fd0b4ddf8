package renderer

import (
	"github.com/joe-loach/kerrbhy/pkg/core"
	"github.com/joe-loach/kerrbhy/pkg/integrator"
	"github.com/joe-loach/kerrbhy/pkg/scene"
)

// Shader produces display colours for single pixels. It is shared between
// workers and holds no per-pixel state.
type Shader struct {
	Kernel integrator.Integrator
	Camera *Camera
	Mode   scene.Mode
}

// NewShader creates a shader for one frame
func NewShader(kernel integrator.Integrator, camera *Camera, mode scene.Mode) *Shader {
	return &Shader{Kernel: kernel, Camera: camera, Mode: mode}
}

// PrimaryRay returns the jittered camera ray for pixel (x, y)
func (s *Shader) PrimaryRay(x, y int, sampler core.Sampler) core.Ray {
	offset := core.Vec2{}
	if s.Mode.AntiAlias {
		offset = offset.Add(AntiAliasOffset(sampler))
	}
	if s.Mode.Bloom {
		offset = offset.Add(BloomOffset(sampler))
	}
	px := float64(x) + 0.5 + offset.X
	py := float64(y) + 0.5 + offset.Y
	return s.Camera.GetRay(px, py)
}

// ShadePixel marches samples rays through pixel (x, y) and returns the
// gamma corrected mean of the valid ones. If every sample is discarded the
// prior value is returned unchanged.
func (s *Shader) ShadePixel(x, y, samples int, sampler core.Sampler, prior core.Vec4) (core.Vec4, PixelStats) {
	var ps PixelStats
	for i := 0; i < samples; i++ {
		ps.AddSample(s.Kernel.March(s.PrimaryRay(x, y, sampler), sampler))
	}

	c, ok := ps.GetColor()
	if !ok {
		return prior, ps
	}
	return GammaCorrect(c), ps
}
