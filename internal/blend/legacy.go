package blend

import "github.com/gogpu/layermode/internal/color"

// The legacy modes reproduce the arithmetic of the integer compositor that
// predates linear-light blending. Every formula keeps its own evaluation
// order and clamping; do not merge them with the modern functions even
// where the algebra agrees.

// processLegacy blends per channel with f and composites with the
// min-coverage rule. Samples are used as delivered, in the composite space.
func processLegacy(p *Params, in, layer, mask, out []float32, samples int, f func(in, layer Pixel) Pixel) {
	for n := 0; n < samples; n++ {
		i := n * 4
		bg, fg := load(in, i), layerAt(layer, i)
		m := maskAt(mask, n)

		comp := fg
		if fg[A] != 0 && bg[A] != 0 {
			comp = f(bg, fg)
			comp[A] = fg[A]
		}
		CompositeLegacy(bg, comp, p.Opacity, m).store(out, i)
	}
}

// ProcessMultiplyLegacy runs the legacy multiply mode.
func ProcessMultiplyLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		var comp Pixel
		for c := R; c < A; c++ {
			comp[c] = in[c] * layer[c]
		}
		return comp
	})
}

// ProcessScreenLegacy runs the legacy screen mode.
func ProcessScreenLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		var comp Pixel
		for c := R; c < A; c++ {
			comp[c] = 1 - (1-in[c])*(1-layer[c])
		}
		return comp
	})
}

// ProcessSoftlightLegacy runs the legacy soft light mode. The legacy
// overlay mode shares it: the old overlay formula was a soft light.
func ProcessSoftlightLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		var comp Pixel
		for c := R; c < A; c++ {
			multiply := in[c] * layer[c]
			screen := 1 - (1-in[c])*(1-layer[c])
			comp[c] = (1-in[c])*multiply + in[c]*screen
		}
		return comp
	})
}

// ProcessDifferenceLegacy runs the legacy difference mode.
func ProcessDifferenceLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		var comp Pixel
		for c := R; c < A; c++ {
			comp[c] = in[c] - layer[c]
			if comp[c] < 0 {
				comp[c] = -comp[c]
			}
		}
		return comp
	})
}

// ProcessAdditionLegacy runs the legacy addition mode, clamped to [0,1].
func ProcessAdditionLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		var comp Pixel
		for c := R; c < A; c++ {
			comp[c] = clamp01(in[c] + layer[c])
		}
		return comp
	})
}

// ProcessSubtractLegacy runs the legacy subtract mode, clamped to [0,1].
func ProcessSubtractLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		var comp Pixel
		for c := R; c < A; c++ {
			comp[c] = clamp01(in[c] - layer[c])
		}
		return comp
	})
}

// ProcessDarkenOnlyLegacy runs the legacy darken only mode.
func ProcessDarkenOnlyLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		var comp Pixel
		for c := R; c < A; c++ {
			if layer[c] < in[c] {
				comp[c] = layer[c]
			} else {
				comp[c] = in[c]
			}
		}
		return comp
	})
}

// ProcessLightenOnlyLegacy runs the legacy lighten only mode.
func ProcessLightenOnlyLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		var comp Pixel
		for c := R; c < A; c++ {
			if layer[c] > in[c] {
				comp[c] = layer[c]
			} else {
				comp[c] = in[c]
			}
		}
		return comp
	})
}

// ProcessDivideLegacy runs the legacy divide mode.
func ProcessDivideLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		var comp Pixel
		for c := R; c < A; c++ {
			comp[c] = min((4294967296.0/4294967295.0*in[c])/(1.0/4294967295.0+layer[c]), 1)
		}
		return comp
	})
}

// ProcessDodgeLegacy runs the legacy dodge mode.
func ProcessDodgeLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		var comp Pixel
		for c := R; c < A; c++ {
			comp[c] = min(in[c]*256/(256-255*layer[c]), 1)
		}
		return comp
	})
}

// ProcessBurnLegacy runs the legacy burn mode.
func ProcessBurnLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		var comp Pixel
		for c := R; c < A; c++ {
			comp[c] = clamp01(1 - (1-in[c])*256/(255*layer[c]+1))
		}
		return comp
	})
}

// ProcessHardlightLegacy runs the legacy hard light mode.
func ProcessHardlightLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		var comp Pixel
		for c := R; c < A; c++ {
			if layer[c] > 0.5 {
				comp[c] = min(1-(1-in[c])*(1-(layer[c]-0.5)*2), 1)
			} else {
				comp[c] = min(in[c]*(layer[c]*2), 1)
			}
		}
		return comp
	})
}

// ProcessGrainExtractLegacy runs the legacy grain extract mode.
func ProcessGrainExtractLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		var comp Pixel
		for c := R; c < A; c++ {
			comp[c] = clamp01(in[c] - layer[c] + 0.5)
		}
		return comp
	})
}

// ProcessGrainMergeLegacy runs the legacy grain merge mode.
func ProcessGrainMergeLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		var comp Pixel
		for c := R; c < A; c++ {
			comp[c] = clamp01(in[c] + layer[c] - 0.5)
		}
		return comp
	})
}

// ProcessHSVHueLegacy takes the HSV hue of the layer. A layer without
// saturation leaves the backdrop unchanged, so black never paints red.
func ProcessHSVHueLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		lh, ls, _ := color.RGBToHSV(layer[R], layer[G], layer[B])
		h, s, v := color.RGBToHSV(in[R], in[G], in[B])
		if ls != 0 {
			h = lh
		}
		var comp Pixel
		comp[R], comp[G], comp[B] = color.HSVToRGB(h, s, v)
		return comp
	})
}

// ProcessHSVSaturationLegacy takes the HSV saturation of the layer.
func ProcessHSVSaturationLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		_, ls, _ := color.RGBToHSV(layer[R], layer[G], layer[B])
		h, _, v := color.RGBToHSV(in[R], in[G], in[B])
		var comp Pixel
		comp[R], comp[G], comp[B] = color.HSVToRGB(h, ls, v)
		return comp
	})
}

// ProcessHSVColorLegacy takes hue and saturation of the layer and the
// lightness of the backdrop. Despite the name it works in HSL.
func ProcessHSVColorLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		lh, ls, _ := color.RGBToHSL(layer[R], layer[G], layer[B])
		_, _, l := color.RGBToHSL(in[R], in[G], in[B])
		var comp Pixel
		comp[R], comp[G], comp[B] = color.HSLToRGB(lh, ls, l)
		return comp
	})
}

// ProcessHSVValueLegacy takes the HSV value of the layer.
func ProcessHSVValueLegacy(p *Params, in, layer, mask, out []float32, samples int) {
	processLegacy(p, in, layer, mask, out, samples, func(in, layer Pixel) Pixel {
		_, _, lv := color.RGBToHSV(layer[R], layer[G], layer[B])
		h, s, _ := color.RGBToHSV(in[R], in[G], in[B])
		var comp Pixel
		comp[R], comp[G], comp[B] = color.HSVToRGB(h, s, lv)
		return comp
	})
}
