package parallel

import (
	"image"
	"math/bits"
	"sync/atomic"
)

// DefaultTileSize is the edge of a dirty tile in pixels.
const DefaultTileSize = 64

// DirtyRegion records changed tiles of an image in an atomic bitmap, one
// bit per tile. Marking is lock-free.
type DirtyRegion struct {
	bounds         image.Rectangle
	size           int
	tilesX, tilesY int
	words          []atomic.Uint64
}

// NewDirtyRegion tracks bounds in tiles of size pixels. Returns nil for an
// empty bounds. A size of zero or less uses DefaultTileSize.
func NewDirtyRegion(bounds image.Rectangle, size int) *DirtyRegion {
	if bounds.Empty() {
		return nil
	}
	if size <= 0 {
		size = DefaultTileSize
	}
	tx := (bounds.Dx() + size - 1) / size
	ty := (bounds.Dy() + size - 1) / size
	return &DirtyRegion{
		bounds: bounds,
		size:   size,
		tilesX: tx,
		tilesY: ty,
		words:  make([]atomic.Uint64, (tx*ty+63)/64),
	}
}

func (d *DirtyRegion) mark(tx, ty int) {
	i := ty*d.tilesX + tx
	d.words[i/64].Or(1 << (i & 63))
}

// MarkRect marks every tile intersecting r. Parts of r outside the tracked
// bounds are ignored.
func (d *DirtyRegion) MarkRect(r image.Rectangle) {
	r = r.Intersect(d.bounds)
	if r.Empty() {
		return
	}
	r = r.Sub(d.bounds.Min)
	for ty := r.Min.Y / d.size; ty <= (r.Max.Y-1)/d.size; ty++ {
		for tx := r.Min.X / d.size; tx <= (r.Max.X-1)/d.size; tx++ {
			d.mark(tx, ty)
		}
	}
}

// tile returns the pixel rectangle of tile index i, clipped to the bounds.
func (d *DirtyRegion) tile(i int) image.Rectangle {
	x := d.bounds.Min.X + (i%d.tilesX)*d.size
	y := d.bounds.Min.Y + (i/d.tilesX)*d.size
	return image.Rect(x, y, x+d.size, y+d.size).Intersect(d.bounds)
}

// GetAndClear returns the dirty tiles in row-major order and clears them.
func (d *DirtyRegion) GetAndClear() []image.Rectangle {
	var rects []image.Rectangle
	for w := range d.words {
		word := d.words[w].Swap(0)
		for word != 0 {
			b := bits.TrailingZeros64(word)
			rects = append(rects, d.tile(w*64+b))
			word &^= 1 << b
		}
	}
	return rects
}

// Bounds returns the tracked area.
func (d *DirtyRegion) Bounds() image.Rectangle {
	return d.bounds
}
