package image

import (
	"image"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/hdrcolor"
	"golang.org/x/image/draw"

	"github.com/gogpu/layermode/internal/color"
)

// FromImage converts src to linear light. Samples are read through an
// NRGBA copy, so any image.Image model is accepted.
func FromImage(src image.Image) (*Buffer, error) {
	r := src.Bounds()
	b, err := NewBuffer(r)
	if err != nil {
		return nil, err
	}

	nrgba, ok := src.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(r)
		draw.Draw(nrgba, r, src, r.Min, draw.Src)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := nrgba.PixOffset(r.Min.X, y)
		color.DecodeRow(b.Row(y), nrgba.Pix[off:off+r.Dx()*4])
	}
	return b, nil
}

// ToNRGBA encodes the buffer as 8-bit sRGB.
func (b *Buffer) ToNRGBA() *image.NRGBA {
	dst := image.NewNRGBA(b.rect)
	for y := b.rect.Min.Y; y < b.rect.Max.Y; y++ {
		off := dst.PixOffset(b.rect.Min.X, y)
		color.EncodeRow(dst.Pix[off:off+b.rect.Dx()*4], b.Row(y))
	}
	return dst
}

// ScaleTo resamples the buffer into r with bilinear filtering, going
// through 8-bit sRGB.
func (b *Buffer) ScaleTo(r image.Rectangle) (*Buffer, error) {
	dst := image.NewNRGBA(r)
	draw.BiLinear.Scale(dst, r, b.ToNRGBA(), b.rect, draw.Src, nil)
	return FromImage(dst)
}

// FromHDR reads a high dynamic range image. HDR images carry no alpha, so
// every sample is opaque.
func FromHDR(src hdr.Image) (*Buffer, error) {
	r := src.Bounds()
	b, err := NewBuffer(r)
	if err != nil {
		return nil, err
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := b.Row(y)
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, _ := src.HDRAt(x, y).HDRRGBA()
			i := (x - r.Min.X) * 4
			row[i], row[i+1], row[i+2], row[i+3] = float32(cr), float32(cg), float32(cb), 1
		}
	}
	return b, nil
}

// ToHDR returns the buffer as an HDR RGB image, with colour premultiplied
// by alpha so transparent areas read as black.
func (b *Buffer) ToHDR() *hdr.RGB {
	dst := hdr.NewRGB(b.rect)
	for y := b.rect.Min.Y; y < b.rect.Max.Y; y++ {
		row := b.Row(y)
		for x := b.rect.Min.X; x < b.rect.Max.X; x++ {
			i := (x - b.rect.Min.X) * 4
			a := float64(row[i+3])
			dst.SetRGB(x, y, hdrcolor.RGB{
				R: float64(row[i]) * a,
				G: float64(row[i+1]) * a,
				B: float64(row[i+2]) * a,
			})
		}
	}
	return dst
}
