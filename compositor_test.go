package layermode

import (
	"image"
	"math"
	"testing"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/mdouchement/hdrtool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(t *testing.T, r image.Rectangle, p Pixel) *Buffer {
	t.Helper()
	buf, err := NewBuffer(r)
	require.NoError(t, err)
	buf.Fill(p)
	return buf
}

func gradient(t *testing.T, r image.Rectangle) *Buffer {
	t.Helper()
	buf, err := NewBuffer(r)
	require.NoError(t, err)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			fx := float32(x-r.Min.X) / float32(r.Dx())
			fy := float32(y-r.Min.Y) / float32(r.Dy())
			buf.Set(x, y, Pixel{fx, fy, 1 - fx, 0.5 + fy/2})
		}
	}
	return buf
}

func TestCompositeNormal(t *testing.T) {
	c := NewCompositor(WithWorkers(2))
	defer c.Close()

	dst := filled(t, image.Rect(0, 0, 8, 8), Pixel{1, 0, 0, 1})
	l := NewLayer("blue", filled(t, image.Rect(0, 0, 8, 8), Pixel{0, 0, 1, 1}), Normal)

	require.NoError(t, c.Composite(dst, l))
	assertPixel(t, Pixel{0, 0, 1, 1}, dst.Row(3)[12:16], 1e-5)
}

func TestCompositeMultiplyInLinearLight(t *testing.T) {
	c := NewCompositor()
	defer c.Close()

	grey := Pixel{0.5, 0.5, 0.5, 1}
	dst := filled(t, image.Rect(0, 0, 3, 3), grey)
	modern := NewLayer("m", filled(t, image.Rect(0, 0, 3, 3), grey), Multiply)
	require.NoError(t, c.Composite(dst, modern))
	assertPixel(t, Pixel{0.2537159, 0.2537159, 0.2537159, 1}, dst.Row(1)[4:8], 1e-4)

	// Legacy modes composite in perceptual space: 0.5 linear is about 0.7354
	// perceptual, squared is 0.5407, which is 0.2537 linear as well.
	dst = filled(t, image.Rect(0, 0, 3, 3), grey)
	legacy := NewLayer("l", filled(t, image.Rect(0, 0, 3, 3), grey), MultiplyLegacy)
	require.NoError(t, c.Composite(dst, legacy))
	assertPixel(t, Pixel{0.2537159, 0.2537159, 0.2537159, 1}, dst.Row(1)[4:8], 1e-4)
}

func TestCompositeOffsetAndClip(t *testing.T) {
	c := NewCompositor(WithBandHeight(1))
	defer c.Close()

	red := Pixel{1, 0, 0, 1}
	dst := filled(t, image.Rect(0, 0, 4, 4), red)
	l := NewLayer("green", filled(t, image.Rect(0, 0, 2, 2), Pixel{0, 1, 0, 1}), NormalLinear)
	l.SetOffset(image.Pt(3, 3))

	require.NoError(t, c.Composite(dst, l))
	assertPixel(t, Pixel{0, 1, 0, 1}, dst.Row(3)[12:16], tolerance)
	assertPixel(t, red, dst.Row(2)[12:16], tolerance)
	assertPixel(t, red, dst.Row(3)[8:12], tolerance)

	l.SetOffset(image.Pt(10, 10))
	before := dst.Clone()
	require.NoError(t, c.Composite(dst, l))
	assert.Equal(t, before.Pix(), dst.Pix(), "layer outside the destination")
}

func TestCompositeMask(t *testing.T) {
	c := NewCompositor()
	defer c.Close()

	dst := filled(t, image.Rect(0, 0, 2, 1), Pixel{1, 0, 0, 1})
	l := NewLayer("blue", filled(t, image.Rect(0, 0, 2, 1), Pixel{0, 0, 1, 1}), NormalLinear)
	mask, err := NewMask(image.Rect(0, 0, 2, 1))
	require.NoError(t, err)
	mask.Set(0, 0, 0)
	mask.Set(1, 0, 0.5)
	l.SetMask(mask)

	require.NoError(t, c.Composite(dst, l))
	assertPixel(t, Pixel{1, 0, 0, 1}, dst.Row(0)[0:4], tolerance)
	assertPixel(t, Pixel{0.5, 0, 0.5, 1}, dst.Row(0)[4:8], tolerance)
}

func TestCompositeHiddenLayer(t *testing.T) {
	c := NewCompositor()
	defer c.Close()

	dst := filled(t, image.Rect(0, 0, 2, 2), Pixel{1, 0, 0, 1})
	l := NewLayer("blue", filled(t, image.Rect(0, 0, 2, 2), Pixel{0, 0, 1, 1}), Normal)
	l.SetVisible(false)

	require.NoError(t, c.Composite(dst, l))
	assertPixel(t, Pixel{1, 0, 0, 1}, dst.Row(1)[4:8], 0)
	assert.Error(t, c.Composite(nil, l))
}

func TestFlattenIsIndependentOfBanding(t *testing.T) {
	r := image.Rect(0, 0, 37, 29)
	build := func() []*Layer {
		screen := NewLayer("screen", gradient(t, r), Screen)
		screen.SetOpacity(0.7)
		hue := NewLayer("hue", filled(t, image.Rect(0, 0, 20, 20), Pixel{0.9, 0.2, 0.1, 0.8}), LCHHue)
		hue.SetOffset(image.Pt(5, 4))
		dissolve := NewLayer("dissolve", filled(t, r, Pixel{0.1, 0.3, 0.9, 0.5}), Dissolve)
		return []*Layer{screen, hue, dissolve}
	}

	serial := NewCompositor(WithWorkers(1), WithBandHeight(r.Dy()))
	defer serial.Close()
	banded := NewCompositor(WithWorkers(4), WithBandHeight(3))
	defer banded.Close()

	a := gradient(t, r)
	b := gradient(t, r)
	require.NoError(t, serial.Flatten(a, build()...))
	require.NoError(t, banded.Flatten(b, build()...))

	assert.Equal(t, a.Pix(), b.Pix())
	assert.InDelta(t, 1, hdrtool.HDRSSIM(a.ToHDR(), b.ToHDR()), 1e-9)
}

func TestFlattenOrder(t *testing.T) {
	c := NewCompositor()
	defer c.Close()

	r := image.Rect(0, 0, 2, 2)
	dst := filled(t, r, Pixel{0, 0, 0, 0})
	red := NewLayer("red", filled(t, r, Pixel{1, 0, 0, 1}), NormalLinear)
	blue := NewLayer("blue", filled(t, r, Pixel{0, 0, 1, 1}), NormalLinear)

	require.NoError(t, c.Flatten(dst, red, blue))
	assertPixel(t, Pixel{0, 0, 1, 1}, dst.Row(0)[0:4], tolerance)

	require.NoError(t, c.Flatten(dst, blue, red))
	assertPixel(t, Pixel{1, 0, 0, 1}, dst.Row(0)[0:4], tolerance)
}

func TestCompositorDirtyTracking(t *testing.T) {
	c := NewCompositor(WithDirtyTracking(true), WithTileSize(8))
	defer c.Close()

	dst := filled(t, image.Rect(0, 0, 32, 32), Pixel{1, 1, 1, 1})
	l := NewLayer("spot", filled(t, image.Rect(0, 0, 4, 4), Pixel{0, 0, 0, 1}), Normal)
	l.SetOffset(image.Pt(10, 18))

	require.NoError(t, c.Composite(dst, l))
	assert.Equal(t, []image.Rectangle{image.Rect(8, 16, 16, 24)}, c.Dirty())
	assert.Empty(t, c.Dirty(), "Dirty clears the region")

	untracked := NewCompositor()
	defer untracked.Close()
	require.NoError(t, untracked.Composite(dst, l))
	assert.Nil(t, untracked.Dirty())
}

func TestCompositeAfterClose(t *testing.T) {
	c := NewCompositor(WithWorkers(2))
	c.Close()

	dst := filled(t, image.Rect(0, 0, 4, 4), Pixel{1, 0, 0, 1})
	l := NewLayer("blue", filled(t, image.Rect(0, 0, 4, 4), Pixel{0, 0, 1, 1}), NormalLinear)
	require.NoError(t, c.Composite(dst, l))
	assertPixel(t, Pixel{0, 0, 1, 1}, dst.Row(2)[8:12], tolerance)
}

func TestCompositeReusesScratchRows(t *testing.T) {
	c := NewCompositor(WithWorkers(1), WithBandHeight(64))
	defer c.Close()

	r := image.Rect(0, 0, 5, 4)
	seeded, err := NewBuffer(scratchRect(r.Dx()))
	require.NoError(t, err)
	seeded.Fill(Pixel{float32(math.NaN()), -7, 42, 3})
	c.rows.Put(seeded)

	dst := filled(t, r, Pixel{1, 0, 0, 1})
	l := NewLayer("half", filled(t, r, Pixel{0, 0, 1, 1}), Normal)
	mask, err := NewMask(r)
	require.NoError(t, err)
	mask.Fill(0)
	mask.Set(0, 2, 1)
	l.SetMask(mask)

	require.NoError(t, c.Composite(dst, l))
	assertPixel(t, Pixel{0, 0, 1, 1}, dst.Row(2)[0:4], 1e-5)
	assertPixel(t, Pixel{1, 0, 0, 1}, dst.Row(2)[8:12], 1e-5)

	assert.Same(t, seeded, c.rows.Get(scratchRect(r.Dx())))
}

func TestCompositeHDRLayer(t *testing.T) {
	c := NewCompositor()
	defer c.Close()

	r := image.Rect(0, 0, 4, 4)
	img := hdr.NewRGB(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGB(x, y, hdrcolor.RGB{R: 0.5, G: 0.5, B: 0.5})
		}
	}
	src, err := BufferFromHDR(img)
	require.NoError(t, err)

	dst := filled(t, r, Pixel{0.5, 0.5, 0.5, 1})
	require.NoError(t, c.Composite(dst, NewLayer("hdr", src, Multiply)))
	assertPixel(t, Pixel{0.2537159, 0.2537159, 0.2537159, 1}, dst.Row(3)[4:8], 1e-4)
}
