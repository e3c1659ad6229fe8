package layermode

import (
	"image"
	"sync"

	"github.com/pkg/errors"

	"github.com/gogpu/layermode/internal/color"
	limage "github.com/gogpu/layermode/internal/image"
	"github.com/gogpu/layermode/internal/parallel"
)

// Compositor composites layers onto buffers in horizontal bands on a pool
// of goroutines.
//
// Buffers hold linear light. Each band is converted into the composite space
// of the layer's operation, processed, and converted back.
//
// Thread safety: Compositor is safe for concurrent use, but composites
// sharing a destination buffer must not overlap in time.
type Compositor struct {
	opts compositorOptions
	pool *parallel.WorkerPool
	rows *limage.Pool

	mu    sync.Mutex
	dirty *parallel.DirtyRegion
}

// NewCompositor starts a compositor. Call Close to stop its workers.
func NewCompositor(opts ...CompositorOption) *Compositor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Compositor{
		opts: o,
		pool: parallel.NewWorkerPool(o.workers),
	}
	c.rows = limage.NewPool(c.pool.Workers())
	Logger().Debug("layermode: compositor started",
		"workers", c.pool.Workers(), "band_height", o.bandHeight, "dirty_tracking", o.dirty)
	return c
}

// Close stops the worker goroutines. Composites after Close run on the
// calling goroutine.
func (c *Compositor) Close() {
	c.pool.Close()
}

// scratchRect is the bounds of the pooled buffer a band converts through:
// row 0 holds the backdrop, row 1 the layer and row 2 the mask.
func scratchRect(width int) image.Rectangle {
	return image.Rect(0, 0, width, 3)
}

// Composite applies l onto dst over the area where both overlap. Hidden
// layers and layers without a buffer leave dst untouched.
func (c *Compositor) Composite(dst *Buffer, l *Layer) error {
	if dst == nil {
		return errors.Wrap(ErrSizeMismatch, "nil destination")
	}
	if !l.Visible() || l.Buffer() == nil {
		return nil
	}
	area := l.Bounds().Intersect(dst.Bounds())
	if area.Empty() {
		return nil
	}

	op := l.Operation()
	space := op.CompositeSpace()
	off := l.Offset()
	src := l.Buffer()
	mask := l.Mask()
	width := area.Dx()

	var (
		errMu    sync.Mutex
		firstErr error
	)
	c.pool.Bands(area.Min.Y, area.Max.Y, c.opts.bandHeight, func(y0, y1 int) {
		s := c.rows.Get(scratchRect(width))
		defer c.rows.Put(s)
		in, layerRow, maskRow := s.Row(0), s.Row(1), s.Row(2)[:width]

		for y := y0; y < y1; y++ {
			out, _ := dst.Span(y, area.Min.X, area.Max.X)
			layer, _ := src.Span(y-off.Y, area.Min.X-off.X, area.Max.X-off.X)

			color.ConvertRow(in, out, width, color.SpaceRGBLinear, space)
			color.ConvertRow(layerRow, layer, width, color.SpaceRGBLinear, space)

			var m []float32
			if mask != nil {
				m = mask.Span(maskRow, y-off.Y, area.Min.X-off.X, area.Max.X-off.X)
			}

			roi := image.Rect(area.Min.X, y, area.Max.X, y+1)
			if err := op.Process(in, layerRow, m, in, roi); err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				return
			}
			color.ConvertRow(out, in, width, space, color.SpaceRGBLinear)
		}
	})
	if firstErr != nil {
		return errors.Wrapf(firstErr, "composite layer %q", l.Name())
	}

	c.markDirty(dst.Bounds(), area)
	return nil
}

// Flatten composites layers onto dst from the bottom (first) to the top.
func (c *Compositor) Flatten(dst *Buffer, layers ...*Layer) error {
	for _, l := range layers {
		if err := c.Composite(dst, l); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compositor) markDirty(bounds, area image.Rectangle) {
	if !c.opts.dirty {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dirty == nil || c.dirty.Bounds() != bounds {
		c.dirty = parallel.NewDirtyRegion(bounds, c.opts.tileSize)
	}
	c.dirty.MarkRect(area)
}

// Dirty returns the tiles changed since the last call, in row-major order,
// and clears them. It returns nil unless dirty tracking is enabled. Tiles
// refer to the most recently composited destination.
func (c *Compositor) Dirty() []image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dirty == nil {
		return nil
	}
	return c.dirty.GetAndClear()
}
