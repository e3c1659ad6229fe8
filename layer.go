package layermode

import (
	"image"
	"sync"

	"github.com/pkg/errors"
)

// Layer is a buffer composited onto a backdrop in some mode.
//
// Settings left on auto follow the mode. Overrides of the blend space,
// composite space and composite mode are rejected with ErrImmutable when the
// mode fixes them. The operation used for compositing is built on demand
// and cached until a setting changes.
//
// Thread safety: Layer is safe for concurrent use.
type Layer struct {
	mu sync.Mutex

	name    string
	buf     *Buffer
	mask    *Mask
	offset  image.Point
	visible bool

	mode           Mode
	opacity        float32
	blendSpace     ColorSpace
	compositeSpace ColorSpace
	compositeMode  CompositeMode

	op *Operation
}

// NewLayer returns a visible, fully opaque layer showing buf in mode m. An
// invalid mode is replaced by Normal.
func NewLayer(name string, buf *Buffer, m Mode) *Layer {
	if !m.Valid() {
		Logger().Warn("layermode: unknown layer mode, using normal", "layer", name, "mode", int(m))
		m = Normal
	}
	return &Layer{
		name:    name,
		buf:     buf,
		visible: true,
		mode:    m,
		opacity: 1,
	}
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Buffer returns the layer pixels.
func (l *Layer) Buffer() *Buffer { return l.buf }

// Bounds returns the area the layer covers on the backdrop.
func (l *Layer) Bounds() image.Rectangle {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.buf == nil {
		return image.Rectangle{}
	}
	return l.buf.Bounds().Add(l.offset)
}

// Offset returns the translation applied to the buffer.
func (l *Layer) Offset() image.Point {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.offset
}

// SetOffset moves the layer.
func (l *Layer) SetOffset(p image.Point) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.offset = p
}

// Mask returns the layer mask, or nil.
func (l *Layer) Mask() *Mask {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mask
}

// SetMask attaches a mask in buffer coordinates. Nil removes it.
func (l *Layer) SetMask(m *Mask) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mask = m
}

// Visible reports whether the layer takes part in compositing.
func (l *Layer) Visible() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.visible
}

// SetVisible shows or hides the layer.
func (l *Layer) SetVisible(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.visible = v
}

// Mode returns the layer mode.
func (l *Layer) Mode() Mode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mode
}

// SetMode changes the mode. Overrides the new mode does not allow are
// reset to auto.
func (l *Layer) SetMode(m Mode) error {
	if !m.Valid() {
		return errors.Wrapf(ErrUnknownMode, "mode %d", int(m))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setMode(m)
	return nil
}

func (l *Layer) setMode(m Mode) {
	if l.mode == m {
		return
	}
	l.mode = m
	if !IsBlendSpaceMutable(m) {
		l.blendSpace = ColorSpaceAuto
	}
	if !IsCompositeSpaceMutable(m) {
		l.compositeSpace = ColorSpaceAuto
	}
	if !IsCompositeModeMutable(m) {
		l.compositeMode = CompositeAuto
	}
	l.op = nil
}

// SetGroup switches the layer to the equivalent of its mode in g. It
// reports false and keeps the mode when g has no equivalent.
func (l *Layer) SetGroup(g Group) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := ForGroup(l.mode, g)
	if !ok {
		return false
	}
	l.setMode(m)
	return true
}

// Opacity returns the layer opacity.
func (l *Layer) Opacity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.opacity
}

// SetOpacity sets the opacity, clamped to [0,1].
func (l *Layer) SetOpacity(opacity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.opacity = min(max(opacity, 0), 1)
	l.op = nil
}

// BlendSpace returns the blend space override, auto when unset.
func (l *Layer) BlendSpace() ColorSpace {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.blendSpace
}

// SetBlendSpace overrides the blend space of the mode.
func (l *Layer) SetBlendSpace(s ColorSpace) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s != ColorSpaceAuto && !IsBlendSpaceMutable(l.mode) {
		return errors.Wrapf(ErrImmutable, "blend space of %v", l.mode)
	}
	l.blendSpace = s
	l.op = nil
	return nil
}

// CompositeSpace returns the composite space override, auto when unset.
func (l *Layer) CompositeSpace() ColorSpace {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.compositeSpace
}

// SetCompositeSpace overrides the composite space of the mode.
func (l *Layer) SetCompositeSpace(s ColorSpace) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s != ColorSpaceAuto && !IsCompositeSpaceMutable(l.mode) {
		return errors.Wrapf(ErrImmutable, "composite space of %v", l.mode)
	}
	l.compositeSpace = s
	l.op = nil
	return nil
}

// CompositeMode returns the composite mode override, auto when unset.
func (l *Layer) CompositeMode() CompositeMode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.compositeMode
}

// SetCompositeMode overrides the composite mode of the mode.
func (l *Layer) SetCompositeMode(m CompositeMode) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m != CompositeAuto && !IsCompositeModeMutable(l.mode) {
		return errors.Wrapf(ErrImmutable, "composite mode of %v", l.mode)
	}
	l.compositeMode = m
	l.op = nil
	return nil
}

// Operation returns the operation compositing the layer. The result must
// not be reconfigured; it is shared until a layer setting changes.
func (l *Layer) Operation() *Operation {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.op == nil {
		op := NewModeOperation(l.mode)
		op.SetOpacity(l.opacity)
		op.SetBlendSpace(l.blendSpace)
		op.SetCompositeSpace(l.compositeSpace)
		op.SetCompositeMode(l.compositeMode)
		l.op = op
	}
	return l.op
}
