package texture

import (
	"math"

	"github.com/joe-loach/kerrbhy/pkg/core"
)

// Filter selects how texels are combined
type Filter int

const (
	// Nearest returns the texel containing the coordinate
	Nearest Filter = iota
	// Linear blends the four closest texel centres
	Linear
)

// EdgeMode controls addressing outside [0, 1)
type EdgeMode int

const (
	// Wrap repeats the texture in both directions
	Wrap EdgeMode = iota
)

// Sampler describes how a texture is read
type Sampler struct {
	Filter   Filter
	EdgeMode EdgeMode
}

// apply maps an integer texel coordinate into [0, size)
func (e EdgeMode) apply(i, size int) int {
	switch e {
	case Wrap:
		i %= size
		if i < 0 {
			i += size
		}
	}
	return i
}

// Sample reads tex at uv, where (0,0) is the top-left corner and (1,1) the
// bottom-right.
func (s Sampler) Sample(tex *Texture2D, uv core.Vec2) core.Vec4 {
	x := uv.X * float64(tex.Width)
	y := uv.Y * float64(tex.Height)

	switch s.Filter {
	case Linear:
		// shift to texel centres
		x -= 0.5
		y -= 0.5

		x0 := math.Floor(x)
		y0 := math.Floor(y)
		fx := x - x0
		fy := y - y0

		ix0 := s.EdgeMode.apply(int(x0), tex.Width)
		iy0 := s.EdgeMode.apply(int(y0), tex.Height)
		ix1 := s.EdgeMode.apply(int(x0)+1, tex.Width)
		iy1 := s.EdgeMode.apply(int(y0)+1, tex.Height)

		top := tex.At(ix0, iy0).Lerp(tex.At(ix1, iy0), fx)
		bottom := tex.At(ix0, iy1).Lerp(tex.At(ix1, iy1), fx)
		return top.Lerp(bottom, fy)
	default:
		ix := s.EdgeMode.apply(int(math.Floor(x)), tex.Width)
		iy := s.EdgeMode.apply(int(math.Floor(y)), tex.Height)
		return tex.At(ix, iy)
	}
}
