package image

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// Mask is a rectangle of coverage values in [0,1], one per pixel.
type Mask struct {
	pix  []float32
	rect image.Rectangle
}

// NewMask returns a mask covering r with every value set to 1.
func NewMask(r image.Rectangle) (*Mask, error) {
	if r.Empty() {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%v", r)
	}
	m := &Mask{pix: make([]float32, r.Dx()*r.Dy()), rect: r}
	m.Fill(1)
	return m, nil
}

// MaskFromImage reads the alpha channel of src over its bounds.
func MaskFromImage(src image.Image) (*Mask, error) {
	r := src.Bounds()
	if r.Empty() {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%v", r)
	}
	m := &Mask{pix: make([]float32, r.Dx()*r.Dy()), rect: r}
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			a := color.AlphaModel.Convert(src.At(x, y)).(color.Alpha).A
			m.pix[i] = float32(a) / 255
			i++
		}
	}
	return m, nil
}

// Bounds returns the area covered by the mask.
func (m *Mask) Bounds() image.Rectangle {
	return m.rect
}

// Span returns the coverage of row y between x0 and x1. Pixels outside the
// mask are uncovered, so the span is written into dst (grown as needed)
// with zeros where the mask does not reach.
func (m *Mask) Span(dst []float32, y, x0, x1 int) []float32 {
	n := x1 - x0
	if n <= 0 {
		return dst[:0]
	}
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	clear(dst)
	if y < m.rect.Min.Y || y >= m.rect.Max.Y {
		return dst
	}
	lo, hi := max(x0, m.rect.Min.X), min(x1, m.rect.Max.X)
	if hi <= lo {
		return dst
	}
	w := m.rect.Dx()
	row := m.pix[(y-m.rect.Min.Y)*w:]
	copy(dst[lo-x0:hi-x0], row[lo-m.rect.Min.X:hi-m.rect.Min.X])
	return dst
}

// At returns the coverage at (x, y), zero outside the mask.
func (m *Mask) At(x, y int) float32 {
	if !image.Pt(x, y).In(m.rect) {
		return 0
	}
	return m.pix[(y-m.rect.Min.Y)*m.rect.Dx()+x-m.rect.Min.X]
}

// Set stores the coverage at (x, y), clamped to [0,1].
func (m *Mask) Set(x, y int, v float32) {
	if image.Pt(x, y).In(m.rect) {
		m.pix[(y-m.rect.Min.Y)*m.rect.Dx()+x-m.rect.Min.X] = min(max(v, 0), 1)
	}
}

// Fill sets every value to v.
func (m *Mask) Fill(v float32) {
	v = min(max(v, 0), 1)
	for i := range m.pix {
		m.pix[i] = v
	}
}
