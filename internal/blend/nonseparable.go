package blend

import (
	"math"

	"github.com/gogpu/layermode/internal/color"
)

// hsvEpsilon is the smallest channel spread treated as having a hue.
const hsvEpsilon = 0.0001

// lumaEpsilon floors the luminance a ratio is divided by.
const lumaEpsilon = 1e-19

// HSVHue takes the hue of layer and the saturation and value of in. The
// layer's RGB is rescaled onto the backdrop's channel range, which keeps the
// computation in RGB.
func HSVHue(in, layer Pixel) Pixel {
	comp := layer
	if layer[A] == 0 {
		return comp
	}

	lMin, lMax := min3(layer[R], layer[G], layer[B]), max3(layer[R], layer[G], layer[B])
	lDelta := lMax - lMin
	if lDelta <= hsvEpsilon {
		return comp.withRGB(in[R], in[G], in[B])
	}

	iMin, iMax := min3(in[R], in[G], in[B]), max3(in[R], in[G], in[B])
	ratio := (iMax - iMin) / lDelta
	offset := iMin - lMin*ratio
	for c := R; c < A; c++ {
		comp[c] = layer[c]*ratio + offset
	}
	return comp
}

// HSVSaturation takes the saturation of layer and the hue and value of in.
func HSVSaturation(in, layer Pixel) Pixel {
	comp := layer
	if layer[A] == 0 {
		return comp
	}

	iMin, iMax := min3(in[R], in[G], in[B]), max3(in[R], in[G], in[B])
	iDelta := iMax - iMin
	if iDelta <= hsvEpsilon {
		return comp.withRGB(in[R], in[G], in[B])
	}

	lMin, lMax := min3(layer[R], layer[G], layer[B]), max3(layer[R], layer[G], layer[B])
	lSat := safeDiv(lMax-lMin, lMax)
	iSat := iDelta / iMax
	ratio := safeDiv(lSat, iSat)
	for c := R; c < A; c++ {
		comp[c] = (in[c]-iMax)*ratio + iMax
	}
	return comp
}

// HSVColor takes the hue and saturation of layer and the HSL lightness of
// in. The layer is rescaled around its lightness so that the distance to the
// nearer of black and white shrinks or grows to the backdrop's. A black or
// white layer has no hue and yields a gray of the backdrop's lightness.
func HSVColor(in, layer Pixel) Pixel {
	comp := layer
	if layer[A] == 0 {
		return comp
	}

	inL := (min3(in[R], in[G], in[B]) + max3(in[R], in[G], in[B])) / 2
	layerL := (min3(layer[R], layer[G], layer[B]) + max3(layer[R], layer[G], layer[B])) / 2

	layerRange := min(layerL, 1-layerL)
	if layerRange <= epsilon {
		return comp.withRGB(inL, inL, inL)
	}

	ratio := min(inL, 1-inL) / layerRange
	offset := inL - layerL*ratio
	for c := R; c < A; c++ {
		comp[c] = layer[c]*ratio + offset
	}
	return comp
}

// HSVValue takes the value of layer and the hue and saturation of in.
func HSVValue(in, layer Pixel) Pixel {
	comp := layer
	if layer[A] == 0 {
		return comp
	}

	lMax := max3(layer[R], layer[G], layer[B])
	iMax := max3(in[R], in[G], in[B])
	if iMax < epsilon {
		return comp.withRGB(lMax, lMax, lMax)
	}

	ratio := lMax / iMax
	for c := R; c < A; c++ {
		comp[c] = in[c] * ratio
	}
	return comp
}

// chroma returns the length of the (a, b) vector of a LAB sample.
func chroma(p Pixel) float32 {
	return float32(math.Hypot(float64(p[G]), float64(p[B])))
}

// LCHHue takes the hue angle of layer and the lightness and chroma of in.
// Samples are LAB. The hue is carried as the direction of the layer's
// (a, b) vector scaled to the backdrop chroma, so there is no angle
// arithmetic to wrap.
func LCHHue(in, layer Pixel) Pixel {
	comp := layer
	if layer[A] == 0 {
		return comp
	}

	comp[R] = in[R]
	lc := chroma(layer)
	if lc <= hsvEpsilon {
		comp[G], comp[B] = in[G], in[B]
		return comp
	}
	k := chroma(in) / lc
	comp[G], comp[B] = layer[G]*k, layer[B]*k
	return comp
}

// LCHChroma takes the chroma of layer and the lightness and hue of in.
func LCHChroma(in, layer Pixel) Pixel {
	comp := layer
	if layer[A] == 0 {
		return comp
	}

	comp[R] = in[R]
	ic := chroma(in)
	if ic <= hsvEpsilon {
		comp[G], comp[B] = in[G], in[B]
		return comp
	}
	k := chroma(layer) / ic
	comp[G], comp[B] = in[G]*k, in[B]*k
	return comp
}

// LCHColor takes hue and chroma of layer and the lightness of in.
func LCHColor(in, layer Pixel) Pixel {
	comp := layer
	if layer[A] == 0 {
		return comp
	}
	comp[R] = in[R]
	return comp
}

// LCHLightness takes the lightness of layer and hue and chroma of in.
func LCHLightness(in, layer Pixel) Pixel {
	comp := layer
	if layer[A] == 0 {
		return comp
	}
	comp[G], comp[B] = in[G], in[B]
	return comp
}

func luminance(p Pixel) float32 {
	return color.Luminance(p[R], p[G], p[B])
}

// scaleLuminance returns in with its colour scaled so that its luminance
// matches the luminance of target. A black backdrop cannot be scaled and
// yields target's colour instead.
func scaleLuminance(in, target Pixel) Pixel {
	inY := luminance(in)
	if inY < epsilon {
		return in.withRGB(target[R], target[G], target[B])
	}
	ratio := luminance(target) / inY
	return in.withRGB(in[R]*ratio, in[G]*ratio, in[B]*ratio)
}

// luminanceOnly keeps whichever of in and its luminance-matched candidate
// is darker (or lighter), comparing luminance rather than channels.
func luminanceOnly(in, layer Pixel, darken bool) Pixel {
	comp := layer
	if layer[A] == 0 {
		return comp
	}

	candidate := scaleLuminance(in, layer)
	inY, candY := luminance(in), luminance(candidate)

	keep := inY >= candY
	if darken {
		keep = inY <= candY
	}
	if keep {
		return comp.withRGB(in[R], in[G], in[B])
	}
	return comp.withRGB(candidate[R], candidate[G], candidate[B])
}

// LuminanceDarkenOnly keeps the darker of in and the candidate by
// luminance. In a perceptual blend space this compares luma.
func LuminanceDarkenOnly(in, layer Pixel) Pixel {
	return luminanceOnly(in, layer, true)
}

// LuminanceLightenOnly keeps the lighter of in and the candidate by
// luminance.
func LuminanceLightenOnly(in, layer Pixel) Pixel {
	return luminanceOnly(in, layer, false)
}
