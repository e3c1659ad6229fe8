package layermode

import (
	"image"
	"sort"

	"github.com/pkg/errors"

	"github.com/gogpu/layermode/internal/blend"
)

// Operation names.
const (
	OpNormal     = "lm:normal"
	OpDissolve   = "lm:dissolve"
	OpBehind     = "lm:behind"
	OpLayerMode  = "lm:layer-mode"
	OpColorErase = "lm:color-erase"
	OpErase      = "lm:erase"
	OpReplace    = "lm:replace"
	OpAntiErase  = "lm:anti-erase"
	OpLuminance  = "lm:luminance-mode"
)

// catalogueEntry is what an operation name resolves to.
type catalogueEntry struct {
	kind Kind
	fn   ProcessFunc
	mode Mode // mode configured by NewOperation
}

// catalogue holds every operation named by the mode table plus the
// stand-alone luminance operation.
var catalogue = buildCatalogue()

func buildCatalogue() map[string]catalogueEntry {
	c := map[string]catalogueEntry{
		OpLayerMode: {kind: KindLayerMode, fn: blend.ProcessLayerMode, mode: Normal},
		OpLuminance: {kind: KindLuminance, fn: blend.ProcessLuminance, mode: Normal},
	}
	for i := range infos {
		in := &infos[i]
		if _, ok := c[in.OperationName]; ok {
			continue
		}
		c[in.OperationName] = catalogueEntry{kind: in.Kind, fn: in.Function, mode: in.Mode}
	}
	return c
}

// Operations returns the registered operation names, sorted.
func Operations() []string {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Operation runs one layer mode over scanlines. Settings left on auto are
// resolved from the configured mode when Process runs.
//
// An Operation is not safe for concurrent configuration, but Process may be
// called from several goroutines once it is configured.
type Operation struct {
	name string
	kind Kind
	fn   ProcessFunc

	mode           Mode
	blendFn        BlendFunc
	opacity        float32
	blendSpace     ColorSpace
	compositeSpace ColorSpace
	compositeMode  CompositeMode
}

// NewOperation returns the operation registered under name, configured for
// the first mode it serves with auto spaces and composite mode.
func NewOperation(name string) (*Operation, error) {
	e, ok := catalogue[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownOperation, "%q", name)
	}
	op := &Operation{name: name, kind: e.kind, fn: e.fn, opacity: 1}
	op.configure(e.mode, CompositeAuto)
	Logger().Debug("layermode: operation created", "op", name, "kind", e.kind)
	return op, nil
}

// NewModeOperation returns an operation compositing a layer in mode m, with
// the spaces and composite mode the table gives for m.
func NewModeOperation(m Mode) *Operation {
	return newModeOperation(m, false)
}

// NewPaintOperation is NewModeOperation using the paint composite mode.
func NewPaintOperation(m Mode) *Operation {
	return newModeOperation(m, true)
}

func newModeOperation(m Mode, paint bool) *Operation {
	in := info(m)
	op := &Operation{name: in.OperationName, kind: in.Kind, fn: in.Function, opacity: 1}
	mode := in.CompositeMode
	if paint {
		mode = in.PaintCompositeMode
	}
	op.configure(in.Mode, mode)
	return op
}

func (o *Operation) configure(m Mode, mode CompositeMode) {
	o.mode = m
	o.blendFn = infos[m].Blend
	o.compositeMode = mode
}

// Name returns the registered name of the operation.
func (o *Operation) Name() string { return o.name }

// Kind returns the processing strategy of the operation.
func (o *Operation) Kind() Kind { return o.kind }

// Mode returns the configured mode.
func (o *Operation) Mode() Mode { return o.mode }

// SetMode selects the mode the operation runs. The generic operation
// accepts any mode processed by blend function; every other operation
// accepts only the modes it implements.
func (o *Operation) SetMode(m Mode) error {
	if !m.Valid() {
		return errors.Wrapf(ErrUnknownMode, "mode %d", int(m))
	}
	in := &infos[m]
	switch o.kind {
	case KindLayerMode:
		if in.Kind != KindLayerMode && in.Kind != KindNormal {
			return errors.Wrapf(ErrUnknownMode, "%v is not a blend mode", m)
		}
	case KindLuminance:
	default:
		if in.OperationName != o.name {
			return errors.Wrapf(ErrUnknownMode, "%v is not served by %s", m, o.name)
		}
	}
	o.configure(m, o.compositeMode)
	return nil
}

// SetOpacity sets the layer opacity, clamped to [0,1].
func (o *Operation) SetOpacity(opacity float32) {
	o.opacity = min(max(opacity, 0), 1)
}

// Opacity returns the layer opacity.
func (o *Operation) Opacity() float32 { return o.opacity }

// SetBlendSpace overrides the blend space. Auto selects the mode default.
func (o *Operation) SetBlendSpace(s ColorSpace) { o.blendSpace = s }

// SetCompositeSpace overrides the composite space. Auto selects the mode
// default.
func (o *Operation) SetCompositeSpace(s ColorSpace) { o.compositeSpace = s }

// SetCompositeMode overrides the composite mode. Auto selects the mode
// default.
func (o *Operation) SetCompositeMode(m CompositeMode) { o.compositeMode = m }

func (o *Operation) wantsLinear() bool {
	return o.kind == KindLuminance || infos[o.mode].Flags&FlagWantsLinearData != 0
}

// CompositeSpace returns the resolved composite space: the space Process
// expects its scanlines in.
func (o *Operation) CompositeSpace() ColorSpace {
	s := o.compositeSpace
	if s == ColorSpaceAuto {
		s = infos[o.mode].CompositeSpace
	}
	return s.Resolve(o.wantsLinear())
}

// BlendSpace returns the resolved blend space.
func (o *Operation) BlendSpace() ColorSpace {
	s := o.blendSpace
	if s == ColorSpaceAuto {
		s = infos[o.mode].BlendSpace
	}
	return s.Resolve(o.wantsLinear())
}

// CompositeMode returns the resolved composite mode.
func (o *Operation) CompositeMode() CompositeMode {
	m := o.compositeMode
	if m == CompositeAuto {
		m = infos[o.mode].CompositeMode
	}
	return m.Resolve()
}

// params returns the resolved adapter parameters.
func (o *Operation) params(roi image.Rectangle) blend.Params {
	return blend.Params{
		Opacity:        o.opacity,
		BlendSpace:     o.BlendSpace(),
		CompositeSpace: o.CompositeSpace(),
		CompositeMode:  o.CompositeMode(),
		Blend:          o.blendFn,
		ROI:            roi,
	}
}

// Process composites layer onto in, writing out. Scanlines are in the
// operation's composite space. roi gives the position of the samples in the
// image and its area is the sample count; an empty roi processes len(in)/4
// samples as one row at the origin. layer and mask may be nil; out may be in.
func (o *Operation) Process(in, layer, mask, out []float32, roi image.Rectangle) error {
	samples := roi.Dx() * roi.Dy()
	if roi.Empty() {
		samples = len(in) / 4
		roi = image.Rect(0, 0, samples, 1)
	}
	if err := checkScanlines(in, layer, mask, out, samples); err != nil {
		return errors.Wrap(err, o.name)
	}
	if samples == 0 {
		return nil
	}
	p := o.params(roi)
	o.fn(&p, in, layer, mask, out, samples)
	return nil
}

func checkScanlines(in, layer, mask, out []float32, samples int) error {
	n := samples * 4
	switch {
	case len(in) < n:
		return errors.Wrapf(ErrSizeMismatch, "input holds %d floats, want %d", len(in), n)
	case len(out) < n:
		return errors.Wrapf(ErrSizeMismatch, "output holds %d floats, want %d", len(out), n)
	case layer != nil && len(layer) < n:
		return errors.Wrapf(ErrSizeMismatch, "layer holds %d floats, want %d", len(layer), n)
	case mask != nil && len(mask) < samples:
		return errors.Wrapf(ErrSizeMismatch, "mask holds %d values, want %d", len(mask), samples)
	}
	return nil
}
