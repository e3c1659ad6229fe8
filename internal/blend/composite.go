package blend

import "fmt"

// CompositeMode selects the Porter-Duff operator used to apply coverage.
type CompositeMode uint8

const (
	// CompositeAuto lets the layer mode decide; it resolves to src-over.
	CompositeAuto CompositeMode = iota
	// CompositeSrcOver is the union of layer and backdrop coverage.
	CompositeSrcOver
	// CompositeSrcAtop clips the layer to the backdrop's coverage.
	CompositeSrcAtop
	// CompositeSrcIn is the intersection of both coverages.
	CompositeSrcIn
	// CompositeDstAtop clips the backdrop to the layer's coverage.
	CompositeDstAtop
)

var compositeNames = [...]string{
	CompositeAuto:    "auto",
	CompositeSrcOver: "src-over",
	CompositeSrcAtop: "src-atop",
	CompositeSrcIn:   "src-in",
	CompositeDstAtop: "dst-atop",
}

// String returns the key name of the composite mode.
func (m CompositeMode) String() string {
	if int(m) < len(compositeNames) {
		return compositeNames[m]
	}
	return fmt.Sprintf("CompositeMode(%d)", m)
}

// ParseCompositeMode returns the composite mode with the given key name.
func ParseCompositeMode(name string) (CompositeMode, bool) {
	for i, n := range compositeNames {
		if n == name {
			return CompositeMode(i), true
		}
	}
	return CompositeAuto, false
}

// Resolve replaces CompositeAuto with src-over.
func (m CompositeMode) Resolve() CompositeMode {
	if m == CompositeAuto {
		return CompositeSrcOver
	}
	return m
}

// CompositeFunc applies the coverage of comp (its alpha times opacity times
// mask) over the background sample in.
type CompositeFunc func(in, comp Pixel, opacity, mask float32) Pixel

// GetCompositeFunc returns the composite function for the given mode.
// Unknown modes and CompositeAuto fall back to src-over.
func GetCompositeFunc(mode CompositeMode) CompositeFunc {
	switch mode {
	case CompositeSrcAtop:
		return SrcAtop
	case CompositeSrcIn:
		return SrcIn
	case CompositeDstAtop:
		return DstAtop
	default:
		return SrcOver
	}
}

// SrcOver composites comp over in. The result covers the union of both.
func SrcOver(in, comp Pixel, opacity, mask float32) Pixel {
	coverage := comp[A] * opacity * mask
	alpha := coverage + (1-coverage)*in[A]

	out := in
	out[A] = alpha
	if coverage == 0 || alpha == 0 {
		return out
	}

	ratio := coverage / alpha
	for c := R; c < A; c++ {
		out[c] = (comp[c]-in[c])*ratio + in[c]
	}
	return out
}

// SrcAtop composites comp onto in without changing the backdrop coverage.
func SrcAtop(in, comp Pixel, opacity, mask float32) Pixel {
	coverage := comp[A] * opacity * mask

	out := in
	if coverage == 0 {
		return out
	}
	for c := R; c < A; c++ {
		out[c] = (comp[c]-in[c])*coverage + in[c]
	}
	return out
}

// SrcIn keeps comp where both comp and in are covered.
func SrcIn(in, comp Pixel, opacity, mask float32) Pixel {
	coverage := comp[A] * opacity * mask

	out := in
	out[A] = in[A] * coverage
	if out[A] == 0 {
		return out
	}
	out[R], out[G], out[B] = comp[R], comp[G], comp[B]
	return out
}

// DstAtop keeps in where comp is covered, showing comp through the
// uncovered part of in.
func DstAtop(in, comp Pixel, opacity, mask float32) Pixel {
	coverage := comp[A] * opacity * mask

	out := in
	out[A] = coverage
	if coverage == 0 {
		return out
	}
	for c := R; c < A; c++ {
		out[c] = (in[c]-comp[c])*in[A] + comp[c]
	}
	return out
}

// CompositeLegacy is the compositing rule of the legacy modes: coverage is
// limited by the smaller of the two alphas and the backdrop alpha is kept.
func CompositeLegacy(in, comp Pixel, opacity, mask float32) Pixel {
	coverage := min(in[A], comp[A]) * opacity * mask
	alpha := in[A] + (1-in[A])*coverage

	out := in
	if coverage == 0 || alpha == 0 {
		return out
	}
	ratio := coverage / alpha
	for c := R; c < A; c++ {
		out[c] = comp[c]*ratio + in[c]*(1-ratio)
	}
	return out
}

// mixBackdrop blends comp with the unblended layer according to how much
// backdrop lies underneath, so that blending only happens where a backdrop
// exists. Used before src-over compositing.
func mixBackdrop(in, layer, comp Pixel) Pixel {
	if in[A] == 1 {
		return comp
	}
	for c := R; c < A; c++ {
		comp[c] = in[A]*(comp[c]-layer[c]) + layer[c]
	}
	return comp
}
