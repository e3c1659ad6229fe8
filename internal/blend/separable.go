package blend

// Func computes the blended colour of layer over in. The result carries the
// layer's alpha; colour channels are only meaningful where that alpha is
// non-zero.
type Func func(in, layer Pixel) Pixel

// separable applies a per-channel blend to the colour channels of a sample.
// Fully transparent layer samples are returned untouched.
func separable(in, layer Pixel, blendChan func(in, layer float32) float32) Pixel {
	comp := layer
	if layer[A] == 0 {
		return comp
	}
	for c := R; c < A; c++ {
		comp[c] = blendChan(in[c], layer[c])
	}
	return comp
}

// Normal returns the layer sample unchanged.
func Normal(_, layer Pixel) Pixel { return layer }

// Multiply: in * layer
func Multiply(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 { return i * l })
}

// Screen: 1 - (1-in)*(1-layer)
func Screen(in, layer Pixel) Pixel {
	return separable(in, layer, screen)
}

func screen(i, l float32) float32 { return 1 - (1-i)*(1-l) }

// Overlay is Hardlight with the roles of the samples swapped.
func Overlay(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 {
		if i < 0.5 {
			return 2 * i * l
		}
		return 1 - 2*(1-l)*(1-i)
	})
}

// Difference: |in - layer|
func Difference(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 {
		if i > l {
			return i - l
		}
		return l - i
	})
}

// Addition: in + layer
func Addition(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 { return i + l })
}

// Subtract: in - layer
func Subtract(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 { return i - l })
}

// DarkenOnly: min(in, layer)
func DarkenOnly(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 { return min(i, l) })
}

// LightenOnly: max(in, layer)
func LightenOnly(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 { return max(i, l) })
}

// Divide: in / layer
func Divide(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 {
		if l > -epsilon && l < epsilon {
			if i > 0 {
				return 1
			}
			return 0
		}
		return i / l
	})
}

// Dodge: in / (1 - layer), capped at 1
func Dodge(in, layer Pixel) Pixel {
	return separable(in, layer, dodge)
}

func dodge(i, l float32) float32 {
	d := 1 - l
	if d < epsilon {
		if i > 0 {
			return 1
		}
		return 0
	}
	return min(i/d, 1)
}

// Burn: 1 - (1 - in) / layer, clamped to [0,1]
func Burn(in, layer Pixel) Pixel {
	return separable(in, layer, burn)
}

func burn(i, l float32) float32 {
	if l < epsilon {
		if i >= 1 {
			return 1
		}
		return 0
	}
	return clamp01(1 - (1-i)/l)
}

// Hardlight multiplies or screens depending on the layer.
func Hardlight(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 {
		var v float32
		if l > 0.5 {
			v = 1 - (1-i)*(1-(l-0.5)*2)
		} else {
			v = i * l * 2
		}
		return min(v, 1)
	})
}

// Softlight mixes multiply and screen weighted by the backdrop.
func Softlight(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 {
		return (1-i)*(i*l) + i*screen(i, l)
	})
}

// GrainExtract: in - layer + 0.5
func GrainExtract(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 { return i - l + 0.5 })
}

// GrainMerge: in + layer - 0.5
func GrainMerge(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 { return i + l - 0.5 })
}

// VividLight burns or dodges depending on the layer.
func VividLight(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 {
		if l <= 0.5 {
			return burn(i, 2*l)
		}
		return dodge(i, 2*(l-0.5))
	})
}

// PinLight replaces the backdrop depending on the layer.
func PinLight(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 {
		if l > 0.5 {
			return max(i, 2*(l-0.5))
		}
		return min(i, 2*l)
	})
}

// LinearLight: in + 2*layer - 1
func LinearLight(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 {
		if l <= 0.5 {
			return i + 2*l - 1
		}
		return i + 2*(l-0.5)
	})
}

// HardMix thresholds the sum of the samples.
func HardMix(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 {
		if i+l < 1 {
			return 0
		}
		return 1
	})
}

// Exclusion: 0.5 - 2*(in-0.5)*(layer-0.5)
func Exclusion(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 {
		return 0.5 - 2*(i-0.5)*(l-0.5)
	})
}

// LinearBurn: in + layer - 1
func LinearBurn(in, layer Pixel) Pixel {
	return separable(in, layer, func(i, l float32) float32 { return i + l - 1 })
}
