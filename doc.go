// Package layermode composites image layers with the layer modes of a
// raster image editor.
//
// # Overview
//
// Every Mode is described by a static table entry (see Lookup) giving its
// flags, the colour spaces it blends and composites in, its Porter-Duff
// composite mode, and the scanline function implementing it. The table is
// indexed by Mode and checked when the package is initialised.
//
// Modes are presented to users in four groups: default, linear light,
// perceptual and legacy. GroupModes lists the members of a group and
// ForGroup translates a mode into its equivalent in another group.
//
// # Quick Start
//
//	bg, _ := layermode.BufferFromImage(background)
//	fg, _ := layermode.BufferFromImage(foreground)
//
//	layer := layermode.NewLayer("glow", fg, layermode.Screen)
//	layer.SetOpacity(0.8)
//
//	c := layermode.NewCompositor()
//	defer c.Close()
//	if err := c.Composite(bg, layer); err != nil {
//	    return err
//	}
//	out := bg.ToNRGBA()
//
// # Scanlines
//
// Lower-level callers run an Operation directly on scanlines. Samples are
// straight-alpha RGBA float32 values, four per pixel, in the operation's
// composite space:
//
//	op := layermode.NewModeOperation(layermode.Multiply)
//	err := op.Process(in, layer, nil, out, image.Rectangle{})
//
// # Colour spaces
//
// Buffers store linear light. A mode that blends in perceptual space or in
// CIE LAB converts samples for the blend step only; compositing happens in
// the composite space of the mode.
package layermode
