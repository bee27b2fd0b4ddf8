package loaders

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/joe-loach/kerrbhy/pkg/core"
	"github.com/joe-loach/kerrbhy/pkg/texture"
)

// exrMagic opens every OpenEXR file
var exrMagic = []byte{0x76, 0x2f, 0x31, 0x01}

// LoadImage loads an OpenEXR, PNG, JPEG, BMP, TIFF or WebP image as a float
// RGBA texture
func LoadImage(filename string) (*texture.Texture2D, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	tex, err := DecodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return tex, nil
}

// DecodeImage decodes OpenEXR or any registered image format from r
func DecodeImage(r io.Reader) (*texture.Texture2D, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(len(exrMagic)); err == nil && bytes.Equal(magic, exrMagic) {
		return DecodeEXR(br)
	}

	img, _, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img)
}

// FromImage converts a decoded image to a texture with straight alpha in [0, 1]
func FromImage(img image.Image) (*texture.Texture2D, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec4, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBA64Model.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA64)
			pixels[y*width+x] = core.NewVec4(
				float64(c.R)/65535.0,
				float64(c.G)/65535.0,
				float64(c.B)/65535.0,
				float64(c.A)/65535.0,
			)
		}
	}

	return texture.NewTexture2D(width, height, pixels)
}

// DecodeEXR decodes an OpenEXR image. Values keep their full float range, so
// HDR starmaps are not clipped to [0, 1].
func DecodeEXR(r io.Reader) (*texture.Texture2D, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read EXR: %w", err)
	}
	img, err := exr.Decode(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode EXR: %w", err)
	}
	return FromEXR(img)
}

// FromEXR converts a decoded EXR image to a texture
func FromEXR(img *exr.RGBAImage) (*texture.Texture2D, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec4, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.RGBA(x+bounds.Min.X, y+bounds.Min.Y)
			pixels[y*width+x] = core.NewVec4(float64(r), float64(g), float64(b), float64(a))
		}
	}

	return texture.NewTexture2D(width, height, pixels)
}
