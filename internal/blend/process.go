package blend

import (
	"image"

	"github.com/gogpu/layermode/internal/color"
)

// Params configures one run of a processing adapter.
type Params struct {
	// Opacity scales the coverage of the layer, in [0,1].
	Opacity float32

	// BlendSpace and CompositeSpace are resolved spaces; adapters never see
	// SpaceAuto. Input and output scanlines are in CompositeSpace.
	BlendSpace     color.Space
	CompositeSpace color.Space

	// CompositeMode is a resolved composite mode.
	CompositeMode CompositeMode

	// Blend is used by ProcessLayerMode. Nil means Normal.
	Blend Func

	// ROI locates the samples in the image, row-major. Only position
	// dependent adapters (dissolve) read it. An empty ROI means a single
	// row starting at the origin.
	ROI image.Rectangle
}

// ProcessFunc runs a layer mode over samples samples. in, layer and out hold
// 4*samples floats; mask holds samples floats or is nil. layer may be nil,
// which is treated as fully transparent. out may alias in.
type ProcessFunc func(p *Params, in, layer, mask, out []float32, samples int)

// ProcessLayerMode is the generic adapter shared by every mode whose
// behaviour is fully described by a blend function, blend space, composite
// space and composite mode.
func ProcessLayerMode(p *Params, in, layer, mask, out []float32, samples int) {
	blendFn := p.Blend
	if blendFn == nil {
		blendFn = Normal
	}
	mode := p.CompositeMode.Resolve()
	composite := GetCompositeFunc(mode)
	convert := p.BlendSpace != p.CompositeSpace &&
		p.BlendSpace != color.SpaceAuto && p.CompositeSpace != color.SpaceAuto

	for n := 0; n < samples; n++ {
		i := n * 4
		bg, fg, m := load(in, i), layerAt(layer, i), maskAt(mask, n)

		comp := fg
		if fg[A] != 0 && m != 0 && p.Opacity != 0 {
			if convert {
				comp = blendIn(blendFn, bg, fg, p.CompositeSpace, p.BlendSpace)
			} else {
				comp = blendFn(bg, fg)
			}
			if mode == CompositeSrcOver {
				comp = mixBackdrop(bg, fg, comp)
			}
		}

		composite(bg, comp, p.Opacity, m).store(out, i)
	}
}

// blendIn runs f with both samples converted from the composite space into
// the blend space and converts the result back.
func blendIn(f Func, in, layer Pixel, composite, blend color.Space) Pixel {
	in = Pixel(color.Convert([4]float32(in), composite, blend))
	layer = Pixel(color.Convert([4]float32(layer), composite, blend))
	return Pixel(color.Convert([4]float32(f(in, layer)), blend, composite))
}

// ProcessLuminance transfers the luminance of layer onto in and composites
// the result with the legacy min-coverage rule. Luminance is measured in
// linear light whatever the composite space.
func ProcessLuminance(p *Params, in, layer, mask, out []float32, samples int) {
	linear := color.SpaceRGBLinear
	for n := 0; n < samples; n++ {
		i := n * 4
		bg, fg := load(in, i), layerAt(layer, i)

		lbg := Pixel(color.Convert([4]float32(bg), p.CompositeSpace, linear))
		lfg := Pixel(color.Convert([4]float32(fg), p.CompositeSpace, linear))
		ratio := luminance(lfg) / max(luminance(lbg), lumaEpsilon)
		comp := lbg.withRGB(lbg[R]*ratio, lbg[G]*ratio, lbg[B]*ratio)
		comp = Pixel(color.Convert([4]float32(comp), linear, p.CompositeSpace))
		comp[A] = fg[A]

		CompositeLegacy(bg, comp, p.Opacity, maskAt(mask, n)).store(out, i)
	}
}
