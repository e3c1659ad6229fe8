package layermode

import (
	"image"

	"github.com/mdouchement/hdr"

	limage "github.com/gogpu/layermode/internal/image"
)

// Buffer is a rectangle of straight-alpha RGBA float samples in linear
// light. See NewBuffer and BufferFromImage.
type Buffer = limage.Buffer

// Mask is a rectangle of coverage values in [0,1].
type Mask = limage.Mask

// NewBuffer allocates a transparent buffer covering r.
func NewBuffer(r image.Rectangle) (*Buffer, error) {
	return limage.NewBuffer(r)
}

// BufferFromImage converts an 8-bit image to linear light.
func BufferFromImage(src image.Image) (*Buffer, error) {
	return limage.FromImage(src)
}

// BufferFromHDR reads a high dynamic range image, which already holds
// linear light. Every sample is opaque.
func BufferFromHDR(src hdr.Image) (*Buffer, error) {
	return limage.FromHDR(src)
}

// NewMask returns a fully covering mask over r.
func NewMask(r image.Rectangle) (*Mask, error) {
	return limage.NewMask(r)
}

// MaskFromImage reads a mask from the alpha channel of src.
func MaskFromImage(src image.Image) (*Mask, error) {
	return limage.MaskFromImage(src)
}
