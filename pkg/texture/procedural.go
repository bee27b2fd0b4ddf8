package texture

import (
	"github.com/joe-loach/kerrbhy/pkg/core"
)

// NewSolidTexture creates a 1x1 texture of a single colour
func NewSolidTexture(color core.Vec4) *Texture2D {
	return &Texture2D{Width: 1, Height: 1, Pixels: []core.Vec4{color}}
}

// NewCheckerboardTexture creates a procedural checkerboard pattern texture
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec4) *Texture2D {
	pixels := make([]core.Vec4, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			checkX := x / checkSize
			checkY := y / checkSize

			if (checkX+checkY)%2 == 0 {
				pixels[y*width+x] = color1
			} else {
				pixels[y*width+x] = color2
			}
		}
	}

	return &Texture2D{Width: width, Height: height, Pixels: pixels}
}
