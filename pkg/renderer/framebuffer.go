package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"runtime"

	"github.com/joe-loach/kerrbhy/pkg/core"
	"golang.org/x/sync/errgroup"
)

// FrameBuffer is a row-major grid of RGBA colours with y=0 at the top.
// Each pixel also counts the values blended into it since the last reset.
type FrameBuffer struct {
	width  int
	height int
	pixels []core.Vec4
	counts []int
}

// NewFrameBuffer creates a zeroed buffer of the given size
func NewFrameBuffer(width, height int) *FrameBuffer {
	fb := &FrameBuffer{}
	fb.Resize(width, height)
	return fb
}

// Width returns the buffer width in pixels
func (fb *FrameBuffer) Width() int { return fb.width }

// Height returns the buffer height in pixels
func (fb *FrameBuffer) Height() int { return fb.height }

// Resize changes the dimensions and clears every pixel to zero
func (fb *FrameBuffer) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	fb.width = width
	fb.height = height
	fb.pixels = make([]core.Vec4, width*height)
	fb.counts = make([]int, width*height)
}

// ResetBlend restarts every pixel's running mean. Pixels keep their colour
// until something is blended into them.
func (fb *FrameBuffer) ResetBlend() {
	clear(fb.counts)
}

// BlendCount returns the number of values blended into (x, y) since the last
// reset
func (fb *FrameBuffer) BlendCount(x, y int) int {
	return fb.counts[y*fb.width+x]
}

// At returns the pixel at (x, y)
func (fb *FrameBuffer) At(x, y int) core.Vec4 {
	return fb.pixels[y*fb.width+x]
}

// Set overwrites the pixel at (x, y)
func (fb *FrameBuffer) Set(x, y int, c core.Vec4) {
	fb.pixels[y*fb.width+x] = c
}

// Blend folds c into the running mean at (x, y), weighted by the number of
// values that pixel already holds. The first blend after a reset overwrites.
func (fb *FrameBuffer) Blend(x, y int, c core.Vec4) {
	i := y*fb.width + x
	t := 1.0 / float64(fb.counts[i]+1)
	fb.pixels[i] = fb.pixels[i].Multiply(1 - t).Add(c.Multiply(t))
	fb.counts[i]++
}

// ParForEach replaces every pixel with fn(x, y, prior). Rows run in
// parallel; fn must only depend on its arguments.
func (fb *FrameBuffer) ParForEach(ctx context.Context, fn func(x, y int, prior core.Vec4) core.Vec4) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for y := 0; y < fb.height; y++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := fb.pixels[y*fb.width : (y+1)*fb.width]
			for x := range row {
				row[x] = fn(x, y, row[x])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("frame buffer: %w", err)
	}
	return nil
}

// Bytes returns the buffer as 8-bit RGBA, row-major, four bytes per pixel
func (fb *FrameBuffer) Bytes() []byte {
	out := make([]byte, 0, len(fb.pixels)*4)
	for _, c := range fb.pixels {
		out = append(out, toByte(c.X), toByte(c.Y), toByte(c.Z), toByte(c.W))
	}
	return out
}

// Image returns a copy of the buffer as an image
func (fb *FrameBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	copy(img.Pix, fb.Bytes())
	return img
}

// Region copies the pixels within bounds into a new image positioned at
// the origin
func (fb *FrameBuffer) Region(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, fb.width, fb.height))
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, vec4ToColor(fb.At(x, y)))
		}
	}
	return img
}

func vec4ToColor(c core.Vec4) color.RGBA {
	return color.RGBA{R: toByte(c.X), G: toByte(c.Y), B: toByte(c.Z), A: toByte(c.W)}
}

func toByte(v float64) uint8 {
	return uint8(255 * core.Clamp(v, 0, 1))
}
