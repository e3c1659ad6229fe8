// Package image provides the float pixel buffers layers are composited in.
//
// A Buffer stores straight-alpha RGBA samples as float32, four per pixel,
// in linear light. Rows are contiguous so a row can be handed to a
// processing function as a scanline without copying.
package image

import (
	"image"

	"github.com/pkg/errors"
)

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned for an empty rectangle.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")
)

// Buffer is a rectangle of linear-light RGBA float samples.
//
// Thread safety: concurrent writers must touch disjoint rows.
type Buffer struct {
	pix    []float32
	rect   image.Rectangle
	stride int
}

// NewBuffer allocates a transparent buffer covering r.
func NewBuffer(r image.Rectangle) (*Buffer, error) {
	if r.Empty() {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%v", r)
	}
	stride := r.Dx() * 4
	return &Buffer{
		pix:    make([]float32, stride*r.Dy()),
		rect:   r,
		stride: stride,
	}, nil
}

// FromPix wraps existing samples without copying.
func FromPix(pix []float32, r image.Rectangle) (*Buffer, error) {
	if r.Empty() {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%v", r)
	}
	stride := r.Dx() * 4
	if len(pix) < stride*r.Dy() {
		return nil, errors.Wrapf(ErrDataTooSmall, "%d floats for %v", len(pix), r)
	}
	return &Buffer{pix: pix, rect: r, stride: stride}, nil
}

// Bounds returns the area covered by the buffer.
func (b *Buffer) Bounds() image.Rectangle {
	return b.rect
}

// Pix returns the backing samples.
func (b *Buffer) Pix() []float32 {
	return b.pix
}

// Row returns the samples of row y, or nil when y is outside the buffer.
func (b *Buffer) Row(y int) []float32 {
	if y < b.rect.Min.Y || y >= b.rect.Max.Y {
		return nil
	}
	off := (y - b.rect.Min.Y) * b.stride
	return b.pix[off : off+b.stride : off+b.stride]
}

// Span returns the samples of row y between x0 and x1, clipped to the
// buffer. The second result is the x of the first returned sample.
func (b *Buffer) Span(y, x0, x1 int) ([]float32, int) {
	row := b.Row(y)
	x0 = max(x0, b.rect.Min.X)
	x1 = min(x1, b.rect.Max.X)
	if row == nil || x1 <= x0 {
		return nil, x0
	}
	return row[(x0-b.rect.Min.X)*4 : (x1-b.rect.Min.X)*4], x0
}

func (b *Buffer) offset(x, y int) (int, bool) {
	if !image.Pt(x, y).In(b.rect) {
		return 0, false
	}
	return (y-b.rect.Min.Y)*b.stride + (x-b.rect.Min.X)*4, true
}

// At returns the sample at (x, y); transparent black outside the buffer.
func (b *Buffer) At(x, y int) [4]float32 {
	i, ok := b.offset(x, y)
	if !ok {
		return [4]float32{}
	}
	return [4]float32(b.pix[i : i+4])
}

// Set stores a sample; points outside the buffer are ignored.
func (b *Buffer) Set(x, y int, p [4]float32) {
	if i, ok := b.offset(x, y); ok {
		copy(b.pix[i:i+4], p[:])
	}
}

// Fill sets every sample to p.
func (b *Buffer) Fill(p [4]float32) {
	for i := 0; i < len(b.pix); i += 4 {
		copy(b.pix[i:i+4], p[:])
	}
}

// Clear makes the buffer transparent black.
func (b *Buffer) Clear() {
	clear(b.pix)
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		pix:    append([]float32(nil), b.pix...),
		rect:   b.rect,
		stride: b.stride,
	}
}
