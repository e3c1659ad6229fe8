package blend

// ProcessNormal composites the layer sample itself.
func ProcessNormal(p *Params, in, layer, mask, out []float32, samples int) {
	composite := GetCompositeFunc(p.CompositeMode.Resolve())
	for n := 0; n < samples; n++ {
		i := n * 4
		composite(load(in, i), layerAt(layer, i), p.Opacity, maskAt(mask, n)).store(out, i)
	}
}

// ProcessBehind paints the layer underneath the backdrop.
func ProcessBehind(p *Params, in, layer, mask, out []float32, samples int) {
	mode := p.CompositeMode.Resolve()
	for n := 0; n < samples; n++ {
		i := n * 4
		bg, fg := load(in, i), layerAt(layer, i)
		coverage := fg[A] * p.Opacity * maskAt(mask, n)

		res := bg
		switch mode {
		case CompositeSrcOver:
			res[A] = coverage + (1-coverage)*bg[A]
			if res[A] != 0 {
				ratio := bg[A] / res[A]
				for c := R; c < A; c++ {
					res[c] = (bg[c]-fg[c])*ratio + fg[c]
				}
			}
		case CompositeDstAtop:
			res[A] = coverage
			if coverage != 0 {
				for c := R; c < A; c++ {
					res[c] = (bg[c]-fg[c])*bg[A] + fg[c]
				}
			}
		case CompositeSrcIn:
			res[A] = bg[A] * coverage
		}
		res.store(out, i)
	}
}

// ProcessDissolve replaces backdrop samples with opaque layer samples at
// random, with a probability equal to the coverage. The pattern depends only
// on the absolute position of the sample, so tiles line up.
func ProcessDissolve(p *Params, in, layer, mask, out []float32, samples int) {
	composite := GetCompositeFunc(p.CompositeMode.Resolve())
	x0, y0 := p.ROI.Min.X, p.ROI.Min.Y
	width := p.ROI.Dx()
	if width <= 0 {
		width = samples
	}

	for n := 0; n < samples; n++ {
		i := n * 4
		bg, fg := load(in, i), layerAt(layer, i)
		coverage := fg[A] * p.Opacity * maskAt(mask, n)

		var hit float32
		if noise(x0+n%width, y0+n/width) < coverage {
			hit = 1
		}
		composite(bg, fg.opaque(), hit, 1).store(out, i)
	}
}

func (p Pixel) opaque() Pixel {
	p[A] = 1
	return p
}

// noise returns a deterministic value in [0,1) for a pixel position.
func noise(x, y int) float32 {
	h := uint32(x)*0x9E3779B1 ^ uint32(y)*0x85EBCA77
	h ^= h >> 16
	h *= 0x7FEB352D
	h ^= h >> 15
	h *= 0x846CA68B
	h ^= h >> 16
	return float32(h>>8) / (1 << 24)
}

// ProcessErase removes backdrop coverage where the layer is painted.
func ProcessErase(p *Params, in, layer, mask, out []float32, samples int) {
	mode := p.CompositeMode.Resolve()
	for n := 0; n < samples; n++ {
		i := n * 4
		bg, fg := load(in, i), layerAt(layer, i)
		coverage := fg[A] * p.Opacity * maskAt(mask, n)

		res := bg
		switch mode {
		case CompositeSrcOver:
			res[A] = bg[A] + coverage - 2*bg[A]*coverage
			if res[A] != 0 {
				ratio := bg[A] * (1 - coverage) / res[A]
				for c := R; c < A; c++ {
					res[c] = ratio*bg[c] + (1-ratio)*fg[c]
				}
			}
		case CompositeDstAtop:
			res = fg
			res[A] = (1 - bg[A]) * coverage
		case CompositeSrcIn:
			res[A] = 0
		default:
			res[A] = bg[A] * (1 - coverage)
		}
		res.store(out, i)
	}
}

// ProcessAntiErase restores backdrop coverage where the layer is painted.
// The backdrop colour is kept and the composite mode is not consulted.
func ProcessAntiErase(p *Params, in, layer, mask, out []float32, samples int) {
	for n := 0; n < samples; n++ {
		i := n * 4
		bg, fg := load(in, i), layerAt(layer, i)
		value := p.Opacity * maskAt(mask, n)

		bg[A] += (1 - bg[A]) * fg[A] * value
		bg.store(out, i)
	}
}

// ProcessReplace interpolates from the backdrop towards the layer by
// opacity times mask, alpha included. Colours are interpolated
// premultiplied.
func ProcessReplace(p *Params, in, layer, mask, out []float32, samples int) {
	mode := p.CompositeMode.Resolve()
	for n := 0; n < samples; n++ {
		i := n * 4
		bg, fg := load(in, i), layerAt(layer, i)
		value := p.Opacity * maskAt(mask, n)

		mixed := (fg[A]-bg[A])*value + bg[A]
		res := bg
		if mixed != 0 {
			ratio := fg[A] * value / mixed
			for c := R; c < A; c++ {
				res[c] = (fg[c]-bg[c])*ratio + bg[c]
			}
		}

		switch mode {
		case CompositeSrcAtop:
			res[A] = bg[A]
		case CompositeDstAtop:
			res[A] = fg[A] * value
		case CompositeSrcIn:
			res[A] = min(bg[A], fg[A]*value)
		default:
			res[A] = mixed
		}
		res.store(out, i)
	}
}

// ProcessColorErase makes the layer colour transparent in the backdrop,
// turning the backdrop into the colour that, composited over the layer
// colour, would reproduce it.
func ProcessColorErase(p *Params, in, layer, mask, out []float32, samples int) {
	mode := p.CompositeMode.Resolve()
	for n := 0; n < samples; n++ {
		i := n * 4
		bg, fg := load(in, i), layerAt(layer, i)
		coverage := fg[A] * p.Opacity * maskAt(mask, n)
		if coverage == 0 {
			bg.store(out, i)
			continue
		}

		erased, alpha := colorToAlpha(bg, fg)

		res := bg
		switch mode {
		case CompositeDstAtop, CompositeSrcIn:
			res = erased
			res[A] = bg[A] * alpha * coverage
		default:
			keep := 1 - coverage + coverage*alpha
			res[A] = bg[A] * keep
			if keep > epsilon {
				for c := R; c < A; c++ {
					res[c] = (bg[c]*(1-coverage) + erased[c]*alpha*coverage) / keep
				}
			}
		}
		res.store(out, i)
	}
}

// colorToAlpha returns the colour and the opacity that in would need to
// reproduce itself when composited over the colour of key.
func colorToAlpha(in, key Pixel) (Pixel, float32) {
	var alpha float32
	for c := R; c < A; c++ {
		col, bgcol := clamp01(in[c]), clamp01(key[c])
		if col-bgcol > -epsilon && col-bgcol < epsilon {
			continue
		}
		var a float32
		if col > bgcol {
			a = (col - bgcol) / (1 - bgcol)
		} else {
			a = (bgcol - col) / bgcol
		}
		alpha = max(alpha, a)
	}

	res := in
	if alpha <= epsilon {
		return res.withRGB(0, 0, 0), 0
	}
	for c := R; c < A; c++ {
		res[c] = (in[c]-key[c])/alpha + key[c]
	}
	return res, alpha
}
