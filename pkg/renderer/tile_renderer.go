package renderer

import (
	"image"

	"github.com/joe-loach/kerrbhy/pkg/core"
)

// WorkgroupSize is the edge length of a square tile; one tile is the CPU
// equivalent of one compute workgroup
const WorkgroupSize = 16

// Dispatch returns the number of workgroups needed to cover a width x height
// image
func Dispatch(width, height int) (int, int) {
	return (width + WorkgroupSize - 1) / WorkgroupSize, (height + WorkgroupSize - 1) / WorkgroupSize
}

// Tile is a rectangular region of the image rendered as one task
type Tile struct {
	ID     int
	Bounds image.Rectangle
}

// NewTileGrid splits the image into WorkgroupSize tiles in row-major order.
// Edge tiles are clipped to the image.
func NewTileGrid(width, height int) []*Tile {
	gx, gy := Dispatch(width, height)
	tiles := make([]*Tile, 0, gx*gy)

	for ty := 0; ty < gy; ty++ {
		for tx := 0; tx < gx; tx++ {
			bounds := image.Rect(
				tx*WorkgroupSize,
				ty*WorkgroupSize,
				min((tx+1)*WorkgroupSize, width),
				min((ty+1)*WorkgroupSize, height),
			)
			tiles = append(tiles, &Tile{ID: len(tiles), Bounds: bounds})
		}
	}
	return tiles
}

// TileRenderer runs one frame of the kernel over tiles of a shared buffer
type TileRenderer struct {
	shader *Shader
	params FrameParams
	seed   uint64
	buffer *FrameBuffer
}

// NewTileRenderer creates a renderer for the frame described by params
func NewTileRenderer(shader *Shader, params FrameParams, seed uint64, buffer *FrameBuffer) *TileRenderer {
	return &TileRenderer{
		shader: shader,
		params: params,
		seed:   seed,
		buffer: buffer,
	}
}

// RenderTileBounds takes one sample for each pixel in bounds and blends it
// into the buffer. A discarded sample leaves the pixel and its blend count
// alone. Tiles never overlap, so concurrent calls on distinct tiles are safe.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle) RenderStats {
	stats := RenderStats{}
	frame := tr.params.Sample
	width := tr.buffer.Width()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sampler := core.NewPixelSampler(tr.seed, y*width+x, frame)
			prior := tr.buffer.At(x, y)

			c, ps := tr.shader.ShadePixel(x, y, 1, sampler, prior)
			if ps.SampleCount > 0 {
				tr.buffer.Blend(x, y, c)
			}

			stats.TotalPixels++
			stats.TotalSamples++
			stats.DiscardedSamples += ps.Discarded
		}
	}
	return stats
}
