package integrator

import (
	"math"

	"github.com/joe-loach/kerrbhy/pkg/core"
	"github.com/joe-loach/kerrbhy/pkg/disk"
	"github.com/joe-loach/kerrbhy/pkg/ode"
	"github.com/joe-loach/kerrbhy/pkg/scene"
	"github.com/joe-loach/kerrbhy/pkg/sky"
	"github.com/joe-loach/kerrbhy/pkg/texture"
)

// Kernel constants shared by every render path
const (
	MaxSteps        = 128
	MaxBounces      = 4
	Delta           = 0.05 // initial step size
	BlackholeRadius = ode.BlackholeRadius
	SkyboxRadius    = 3.6
)

// BlackHole is the ray marching kernel. It is read-only once built and safe
// to share between goroutines; all randomness comes from the sampler.
type BlackHole struct {
	Mode  scene.Mode
	Disk  scene.Disk
	Sky   sky.Sky
	Field ode.Field

	MaxSteps   int
	MaxBounces int

	volume disk.Volume
}

// NewBlackHole builds a kernel for one frame. starmap is used when the mode
// asks for a texture sky; a nil starmap renders a black sky.
func NewBlackHole(mode scene.Mode, d scene.Disk, starmap *texture.Texture2D) *BlackHole {
	var s sky.Sky
	switch mode.Sky {
	case scene.ProceduralSky:
		s = sky.NewProceduralSky()
	default:
		if starmap == nil {
			starmap = texture.NewSolidTexture(core.NewVec4(0, 0, 0, 1))
		}
		s = sky.NewTextureSky(starmap)
	}

	return &BlackHole{
		Mode:       mode,
		Disk:       d,
		Sky:        s,
		Field:      ode.GravitationalField,
		MaxSteps:   MaxSteps,
		MaxBounces: MaxBounces,
		volume:     disk.Volume{Radius: d.Radius, Thickness: d.Thickness},
	}
}

// March integrates one sample along ray. Checks run in a fixed order each
// step: bounce limit, capture, escape, disk, then the integration step.
func (bh *BlackHole) March(ray core.Ray, sampler core.Sampler) Result {
	h := Delta

	state := ode.State{
		// jitter the start to avoid banding at the first step
		Pos: ray.At(sampler.Get1D() * h),
		Vel: ray.Direction,
	}
	attenuation := core.Splat3(1)
	var radiance core.Vec3
	bounces := 0

	outcome := OutcomeExhausted
	steps := 0

	for ; steps < bh.MaxSteps; steps++ {
		if bounces > bh.MaxBounces {
			return Result{Color: Discard, Outcome: OutcomeDiscarded, Steps: steps}
		}

		r2 := state.Pos.LengthSquared()
		if r2 < BlackholeRadius*BlackholeRadius {
			return Result{Color: radiance, Outcome: OutcomeCaptured, Steps: steps}
		}
		if r2 > SkyboxRadius*SkyboxRadius {
			outcome = OutcomeEscaped
			break
		}

		switch bh.Mode.Disk {
		case scene.VolumetricDisk:
			s := bh.volume.Sample(state.Pos, sampler)
			radiance = radiance.Add(attenuation.MultiplyVec(s.Emission).Multiply(h))

			if s.Density > 0 {
				absorbance := math.Exp(-h * s.Density)
				if absorbance < sampler.Get1D() {
					speed := state.Vel.Length()
					n := core.SampleOnUnitSphere(sampler.Get2D())
					state.Vel = state.Vel.Normalize().Reflect(n).Multiply(speed)
					attenuation = attenuation.MultiplyVec(bh.Disk.Color)
					bounces++
				}
			}
		case scene.SDFDisk:
			if disk.SDF(state.Pos, bh.Disk.Thickness, bh.Disk.Radius) <= 0 {
				return Result{Color: bh.Disk.Color, Outcome: OutcomeDisk, Steps: steps}
			}
		}

		var delta ode.State
		delta, h = bh.Mode.Method.Step(bh.Field, state, h)
		state = state.Add(delta)
	}

	radiance = radiance.Add(attenuation.MultiplyVec(bh.Sky.Color(state.Vel.Normalize())))
	return Result{Color: radiance, Outcome: outcome, Steps: steps}
}
