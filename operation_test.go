package layermode

import (
	"image"
	"math"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-6

func assertPixel(t *testing.T, want Pixel, got []float32, eps float64, msgAndArgs ...any) {
	t.Helper()
	require.Len(t, got, 4)
	for c := range 4 {
		assert.InDelta(t, want[c], got[c], eps, msgAndArgs...)
	}
}

func process(t *testing.T, op *Operation, in, layer Pixel) []float32 {
	t.Helper()
	out := make([]float32, 4)
	require.NoError(t, op.Process(in[:], layer[:], nil, out, image.Rectangle{}))
	return out
}

func TestOperations(t *testing.T) {
	names := Operations()
	for _, name := range []string{
		OpNormal, OpDissolve, OpBehind, OpLayerMode, OpColorErase,
		OpErase, OpReplace, OpAntiErase, OpLuminance,
		"lm:multiply-legacy", "lm:softlight-legacy", "lm:hsv-value-legacy",
	} {
		assert.Contains(t, names, name)
	}
	assert.NotContains(t, names, "lm:overlay-legacy")
	assert.IsNonDecreasing(t, names)

	for _, name := range names {
		op, err := NewOperation(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, op.Name())
	}
}

func TestNewOperationUnknown(t *testing.T) {
	op, err := NewOperation("lm:bogus")
	assert.Nil(t, op)
	assert.True(t, errors.Is(err, ErrUnknownOperation))
}

// Scenario: opaque blue over opaque red in Normal replaces the backdrop.
func TestNormalOpaqueReplacesBackdrop(t *testing.T) {
	out := process(t, NewModeOperation(Normal), Pixel{1, 0, 0, 1}, Pixel{0, 0, 1, 1})
	assertPixel(t, Pixel{0, 0, 1, 1}, out, tolerance)
}

// Scenario: half transparent green over half transparent red.
func TestNormalHalfAlphaOver(t *testing.T) {
	out := process(t, NewModeOperation(Normal), Pixel{1, 0, 0, 0.5}, Pixel{0, 1, 0, 0.5})
	assertPixel(t, Pixel{1.0 / 3, 2.0 / 3, 0, 0.75}, out, tolerance)
}

func TestSrcOverFullCoverageIsIdempotent(t *testing.T) {
	backdrops := []Pixel{{0, 0, 0, 0}, {1, 1, 1, 1}, {0.3, 0.6, 0.1, 0.4}, {0.9, 0.2, 0.5, 0.01}}
	layer := Pixel{0.25, 0.5, 0.75, 1}
	for _, m := range []Mode{Normal, NormalLinear} {
		op := NewModeOperation(m)
		for _, bg := range backdrops {
			assertPixel(t, layer, process(t, op, bg, layer), tolerance, "%v over %v", m, bg)
		}
	}
}

func TestZeroCoverageLeavesBackdrop(t *testing.T) {
	bg := Pixel{0.3, 0.6, 0.1, 0.4}
	for _, m := range Modes() {
		switch m {
		case Behind, BehindLinear, Replace:
			// dst-atop and replace take the layer alpha.
			continue
		}
		op := NewModeOperation(m)
		out := process(t, op, bg, Pixel{0.8, 0.1, 0.4, 0})
		assertPixel(t, bg, out, 0, "%v with transparent layer", m)

		op.SetOpacity(0)
		out = process(t, op, bg, Pixel{0.8, 0.1, 0.4, 1})
		assertPixel(t, bg, out, 0, "%v at zero opacity", m)
	}
}

func TestLegacyMultiplyDiffersFromModern(t *testing.T) {
	grey := Pixel{0.5, 0.5, 0.5, 1}

	legacy := process(t, NewModeOperation(MultiplyLegacy), grey, grey)
	modern := process(t, NewModeOperation(Multiply), grey, grey)

	assertPixel(t, Pixel{0.25, 0.25, 0.25, 1}, legacy, tolerance)
	assertPixel(t, Pixel{0.2537159, 0.2537159, 0.2537159, 1}, modern, 1e-4)
	assert.Greater(t, math.Abs(float64(legacy[0]-modern[0])), 1e-3)
}

func TestOperationResolvesAuto(t *testing.T) {
	tests := []struct {
		mode      Mode
		blend     ColorSpace
		composite ColorSpace
		cmode     CompositeMode
	}{
		{Normal, ColorSpaceRGBPerceptual, ColorSpaceRGBPerceptual, CompositeSrcOver},
		{NormalLinear, ColorSpaceRGBLinear, ColorSpaceRGBLinear, CompositeSrcOver},
		{Multiply, ColorSpaceRGBPerceptual, ColorSpaceRGBLinear, CompositeSrcAtop},
		{LCHColor, ColorSpaceLAB, ColorSpaceRGBLinear, CompositeSrcAtop},
		{BurnLegacy, ColorSpaceRGBPerceptual, ColorSpaceRGBPerceptual, CompositeSrcAtop},
		{Erase, ColorSpaceRGBLinear, ColorSpaceRGBLinear, CompositeSrcAtop},
	}
	for _, tt := range tests {
		op := NewModeOperation(tt.mode)
		assert.Equal(t, tt.blend, op.BlendSpace(), "%v", tt.mode)
		assert.Equal(t, tt.composite, op.CompositeSpace(), "%v", tt.mode)
		assert.Equal(t, tt.cmode, op.CompositeMode(), "%v", tt.mode)
	}

	assert.Equal(t, CompositeDstAtop, NewPaintOperation(Behind).CompositeMode())
	assert.Equal(t, CompositeSrcOver, NewPaintOperation(Multiply).CompositeMode())
}

func TestOperationOverrides(t *testing.T) {
	op := NewModeOperation(Multiply)
	op.SetCompositeMode(CompositeSrcOver)
	op.SetCompositeSpace(ColorSpaceRGBPerceptual)
	op.SetBlendSpace(ColorSpaceRGBLinear)
	assert.Equal(t, CompositeSrcOver, op.CompositeMode())
	assert.Equal(t, ColorSpaceRGBPerceptual, op.CompositeSpace())
	assert.Equal(t, ColorSpaceRGBLinear, op.BlendSpace())

	// src-over onto an empty backdrop shows the layer unblended.
	out := process(t, op, Pixel{}, Pixel{0.4, 0.5, 0.6, 1})
	assertPixel(t, Pixel{0.4, 0.5, 0.6, 1}, out, tolerance)

	op.SetOpacity(3)
	assert.Equal(t, float32(1), op.Opacity())
}

func TestOperationSetMode(t *testing.T) {
	op, err := NewOperation(OpLayerMode)
	require.NoError(t, err)
	assert.Equal(t, Normal, op.Mode())
	require.NoError(t, op.SetMode(Screen))
	assert.Equal(t, Screen, op.Mode())

	err = op.SetMode(DodgeLegacy)
	assert.True(t, errors.Is(err, ErrUnknownMode))

	legacy, err := NewOperation("lm:softlight-legacy")
	require.NoError(t, err)
	assert.NoError(t, legacy.SetMode(OverlayLegacy))
	assert.Error(t, legacy.SetMode(Multiply))
	assert.Error(t, legacy.SetMode(Mode(ModeCount)))

	out := process(t, op, Pixel{0.5, 0.5, 0.5, 1}, Pixel{0.5, 0.5, 0.5, 1})
	assert.Greater(t, out[0], float32(0.5), "screen lightens")
}

func TestLuminanceOperation(t *testing.T) {
	op, err := NewOperation(OpLuminance)
	require.NoError(t, err)
	assert.Equal(t, KindLuminance, op.Kind())
	assert.Equal(t, ColorSpaceRGBLinear, op.CompositeSpace())

	out := process(t, op, Pixel{0.2, 0.2, 0.2, 1}, Pixel{0.4, 0.4, 0.4, 1})
	assertPixel(t, Pixel{0.4, 0.4, 0.4, 1}, out, 1e-5)
}

func TestProcessChecksSizes(t *testing.T) {
	op := NewModeOperation(Normal)
	roi := image.Rect(0, 0, 2, 2)
	buf := make([]float32, 16)

	assert.NoError(t, op.Process(buf, buf, make([]float32, 4), buf, roi))

	err := op.Process(buf[:12], nil, nil, buf, roi)
	assert.True(t, errors.Is(err, ErrSizeMismatch))
	err = op.Process(buf, buf[:4], nil, buf, roi)
	assert.True(t, errors.Is(err, ErrSizeMismatch))
	err = op.Process(buf, nil, make([]float32, 3), buf, roi)
	assert.True(t, errors.Is(err, ErrSizeMismatch))
	err = op.Process(buf, nil, nil, buf[:8], roi)
	assert.True(t, errors.Is(err, ErrSizeMismatch))

	assert.NoError(t, op.Process(nil, nil, nil, nil, image.Rectangle{}))
}

func TestProcessMaskAndInPlace(t *testing.T) {
	op := NewModeOperation(NormalLinear)
	in := []float32{1, 0, 0, 1, 1, 0, 0, 1}
	layer := []float32{0, 0, 1, 1, 0, 0, 1, 1}
	mask := []float32{0, 0.5}

	require.NoError(t, op.Process(in, layer, mask, in, image.Rectangle{}))
	assertPixel(t, Pixel{1, 0, 0, 1}, in[0:4], tolerance)
	assertPixel(t, Pixel{0.5, 0, 0.5, 1}, in[4:8], tolerance)
}

func TestProcessConcurrent(t *testing.T) {
	op := NewModeOperation(Softlight)
	want := process(t, op, Pixel{0.3, 0.4, 0.5, 0.8}, Pixel{0.7, 0.2, 0.9, 0.6})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				out := make([]float32, 4)
				in := Pixel{0.3, 0.4, 0.5, 0.8}
				layer := Pixel{0.7, 0.2, 0.9, 0.6}
				if err := op.Process(in[:], layer[:], nil, out, image.Rectangle{}); err != nil {
					t.Error(err)
					return
				}
				if [4]float32(out) != [4]float32(want) {
					t.Errorf("got %v, want %v", out, want)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestEveryModeProducesFiniteOutput(t *testing.T) {
	samples := []Pixel{{0, 0, 0, 1}, {1, 1, 1, 1}, {0.5, 0.1, 0.9, 0.5}, {0, 0, 0, 0}}
	for _, m := range Modes() {
		op := NewModeOperation(m)
		for _, bg := range samples {
			for _, fg := range samples {
				out := process(t, op, bg, fg)
				for c, v := range out {
					f := float64(v)
					if math.IsNaN(f) || math.IsInf(f, 0) {
						t.Errorf("%v: bg %v fg %v channel %d = %v", m, bg, fg, c, v)
					}
				}
			}
		}
	}
}
