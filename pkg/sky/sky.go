// Package sky resolves the colour seen by rays that escape the skybox.
package sky

import (
	"math"

	"github.com/joe-loach/kerrbhy/pkg/core"
	"github.com/joe-loach/kerrbhy/pkg/texture"
)

// Sky returns the background radiance in a unit direction
type Sky interface {
	Color(dir core.Vec3) core.Vec3
}

// UV maps a unit direction onto equirectangular coordinates:
// u = 0.5 - atan2(z, x)/(2π), v = 0.5 - asin(-y)/π
func UV(dir core.Vec3) core.Vec2 {
	return core.NewVec2(
		0.5-math.Atan2(dir.Z, dir.X)*core.Inv2Pi,
		0.5-math.Asin(core.Clamp(-dir.Y, -1, 1))*core.InvPi,
	)
}

// Direction is the inverse of UV
func Direction(uv core.Vec2) core.Vec3 {
	phi := (0.5 - uv.X) * 2 * math.Pi
	y := -math.Sin((0.5 - uv.Y) * math.Pi)
	ring := math.Sqrt(math.Max(0, 1-y*y))
	return core.NewVec3(ring*math.Cos(phi), y, ring*math.Sin(phi))
}

// TextureSky looks the direction up in an equirectangular starmap
type TextureSky struct {
	Texture *texture.Texture2D
	Sampler texture.Sampler
}

// NewTextureSky creates a texture sky with bilinear filtering and wrapping
func NewTextureSky(tex *texture.Texture2D) *TextureSky {
	return &TextureSky{
		Texture: tex,
		Sampler: texture.Sampler{Filter: texture.Linear, EdgeMode: texture.Wrap},
	}
}

func (s *TextureSky) Color(dir core.Vec3) core.Vec3 {
	return s.Texture.Sample(s.Sampler, UV(dir)).XYZ()
}

// BakeStarfield renders any sky into an equirectangular texture, sampling
// each texel at its centre.
func BakeStarfield(sky Sky, width, height int) *texture.Texture2D {
	pixels := make([]core.Vec4, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			uv := core.NewVec2((float64(x)+0.5)/float64(width), (float64(y)+0.5)/float64(height))
			pixels[y*width+x] = sky.Color(Direction(uv)).Extend(1)
		}
	}
	return &texture.Texture2D{Width: width, Height: height, Pixels: pixels}
}
