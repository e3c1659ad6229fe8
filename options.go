package layermode

// CompositorOption configures a Compositor during creation.
//
// Example:
//
//	c := layermode.NewCompositor(
//	    layermode.WithWorkers(4),
//	    layermode.WithDirtyTracking(true),
//	)
//	defer c.Close()
type CompositorOption func(*compositorOptions)

type compositorOptions struct {
	workers    int
	bandHeight int
	dirty      bool
	tileSize   int
}

func defaultOptions() compositorOptions {
	return compositorOptions{
		workers:    0, // GOMAXPROCS
		bandHeight: 16,
	}
}

// WithWorkers sets the number of goroutines compositing bands. Zero or less
// uses GOMAXPROCS.
func WithWorkers(n int) CompositorOption {
	return func(o *compositorOptions) {
		o.workers = n
	}
}

// WithBandHeight sets how many rows one work item composites. Values below
// one are ignored.
func WithBandHeight(rows int) CompositorOption {
	return func(o *compositorOptions) {
		if rows > 0 {
			o.bandHeight = rows
		}
	}
}

// WithDirtyTracking records the tiles each composite changes, reported by
// Compositor.Dirty.
func WithDirtyTracking(enabled bool) CompositorOption {
	return func(o *compositorOptions) {
		o.dirty = enabled
	}
}

// WithTileSize sets the edge of a dirty tile in pixels.
func WithTileSize(size int) CompositorOption {
	return func(o *compositorOptions) {
		if size > 0 {
			o.tileSize = size
		}
	}
}
