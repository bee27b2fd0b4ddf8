// Package texture holds floating point RGBA images and the samplers used to
// read them with texture coordinates.
package texture

import (
	"fmt"

	"github.com/joe-loach/kerrbhy/pkg/core"
)

// Texture2D is a floating point RGBA image
type Texture2D struct {
	Width  int
	Height int
	Pixels []core.Vec4 // Row-major: Pixels[y*Width + x], y=0 is the top row
}

// NewTexture2D creates a texture from row-major pixels
func NewTexture2D(width, height int, pixels []core.Vec4) (*Texture2D, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid texture size %dx%d", width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("texture %dx%d needs %d pixels, got %d", width, height, width*height, len(pixels))
	}
	return &Texture2D{Width: width, Height: height, Pixels: pixels}, nil
}

// At returns the texel at integer coordinates, which must be in range
func (t *Texture2D) At(x, y int) core.Vec4 {
	return t.Pixels[y*t.Width+x]
}

// Sample reads the texture at uv using the given sampler
func (t *Texture2D) Sample(s Sampler, uv core.Vec2) core.Vec4 {
	return s.Sample(t, uv)
}
