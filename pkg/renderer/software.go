package renderer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/joe-loach/kerrbhy/pkg/core"
	"github.com/joe-loach/kerrbhy/pkg/integrator"
	"github.com/joe-loach/kerrbhy/pkg/scene"
	"github.com/joe-loach/kerrbhy/pkg/texture"
)

// Renderer draws a whole image in one call, taking Config.Samples samples
// per pixel on the CPU
type Renderer struct {
	config  scene.Config
	starmap *texture.Texture2D
	seed    uint64
	logger  core.Logger
}

// NewRenderer creates a software renderer. A nil logger uses the default.
func NewRenderer(config scene.Config, starmap *texture.Texture2D, seed uint64, logger core.Logger) *Renderer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Renderer{
		config:  config,
		starmap: starmap,
		seed:    seed,
		logger:  logger,
	}
}

// Render overwrites every pixel of fb
func (r *Renderer) Render(ctx context.Context, fb *FrameBuffer) (RenderStats, error) {
	start := time.Now()

	mode := r.config.Features.Resolve()
	kernel := integrator.NewBlackHole(mode, r.config.Disk, r.starmap)
	camera := NewCamera(r.config.Camera.View(), r.config.Camera.FOV, fb.Width(), fb.Height())
	shader := NewShader(kernel, camera, mode)

	samples := r.config.Samples
	var discarded atomic.Int64

	err := fb.ParForEach(ctx, func(x, y int, prior core.Vec4) core.Vec4 {
		sampler := core.NewPixelSampler(r.seed, y*fb.Width()+x, 0)
		c, ps := shader.ShadePixel(x, y, samples, sampler, prior)
		discarded.Add(int64(ps.Discarded))
		return c
	})
	if err != nil {
		return RenderStats{}, err
	}

	stats := RenderStats{
		Frame:            1,
		TotalPixels:      fb.Width() * fb.Height(),
		TotalSamples:     fb.Width() * fb.Height() * samples,
		DiscardedSamples: int(discarded.Load()),
	}
	stats.finalize()

	r.logger.Printf("Rendered %dx%d (%d spp, %d discarded) in %v\n",
		fb.Width(), fb.Height(), samples, stats.DiscardedSamples, time.Since(start))
	return stats, nil
}
