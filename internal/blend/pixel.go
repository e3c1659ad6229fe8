// Package blend implements the per-pixel mathematics of layer modes.
//
// A layer mode combines a background sample ("in") with a layer sample in
// two steps. A blend function computes the blended colour in the mode's
// blend space, then a composite function applies coverage (layer alpha,
// opacity and mask) with one of the Porter-Duff operators in the composite
// space. Processing adapters run both steps over a scanline.
//
// All samples are straight (non-premultiplied) RGBA float32. Nothing in this
// package keeps state, so every function may be called from any goroutine.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
//   - Porter, Duff. Compositing Digital Images (1984)
package blend

import "math"

// Pixel is one straight-alpha RGBA sample.
type Pixel [4]float32

// Channel indices.
const (
	R = iota
	G
	B
	A
)

// epsilon guards channel divisions.
const epsilon = 1e-6

// load reads the sample starting at row[i].
func load(row []float32, i int) Pixel {
	return Pixel{row[i], row[i+1], row[i+2], row[i+3]}
}

// store writes p into row starting at i.
func (p Pixel) store(row []float32, i int) {
	row[i], row[i+1], row[i+2], row[i+3] = p[R], p[G], p[B], p[A]
}

// layerAt returns the layer sample at i, or a transparent one when the
// layer input is absent.
func layerAt(layer []float32, i int) Pixel {
	if layer == nil {
		return Pixel{}
	}
	return load(layer, i)
}

// maskAt returns the coverage of sample n; a nil mask covers fully.
func maskAt(mask []float32, n int) float32 {
	if mask == nil {
		return 1
	}
	return mask[n]
}

// withRGB returns p with its colour channels replaced.
func (p Pixel) withRGB(r, g, b float32) Pixel {
	return Pixel{r, g, b, p[A]}
}

// safeDiv returns a/b, or 0 when b is too close to zero for the quotient to
// be meaningful.
func safeDiv(a, b float32) float32 {
	if b > -epsilon && b < epsilon {
		return 0
	}
	q := a / b
	if math.IsInf(float64(q), 0) || math.IsNaN(float64(q)) {
		return 0
	}
	return q
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func min3(a, b, c float32) float32 { return min(a, min(b, c)) }
func max3(a, b, c float32) float32 { return max(a, max(b, c)) }
