package layermode

import (
	"github.com/gogpu/layermode/internal/blend"
	"github.com/gogpu/layermode/internal/color"
)

// ColorSpace identifies the space a mode blends or composites in.
type ColorSpace = color.Space

// Color spaces.
const (
	ColorSpaceAuto          = color.SpaceAuto
	ColorSpaceRGBLinear     = color.SpaceRGBLinear
	ColorSpaceRGBPerceptual = color.SpaceRGBPerceptual
	ColorSpaceLAB           = color.SpaceLAB
)

// CompositeMode is the Porter-Duff operator applying a layer's coverage.
type CompositeMode = blend.CompositeMode

// Composite modes.
const (
	CompositeAuto    = blend.CompositeAuto
	CompositeSrcOver = blend.CompositeSrcOver
	CompositeSrcAtop = blend.CompositeSrcAtop
	CompositeSrcIn   = blend.CompositeSrcIn
	CompositeDstAtop = blend.CompositeDstAtop
)

// ProcessFunc is the scanline entry point of a mode. in, layer and out hold
// four floats per sample and mask one; a nil layer is transparent and a nil
// mask covers fully. out may alias in.
type ProcessFunc = blend.ProcessFunc

// BlendFunc combines a backdrop and a layer sample.
type BlendFunc = blend.Func

// Pixel is one straight-alpha RGBA sample.
type Pixel = blend.Pixel
