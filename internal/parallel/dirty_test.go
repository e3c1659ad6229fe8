package parallel

import (
	"image"
	"sync"
	"testing"
)

func TestDirtyRegion_Create(t *testing.T) {
	tests := []struct {
		name   string
		bounds image.Rectangle
		size   int
		nilOK  bool
		tiles  int
	}{
		{"exact", image.Rect(0, 0, 128, 128), 64, false, 4},
		{"partial", image.Rect(0, 0, 100, 10), 64, false, 2},
		{"default size", image.Rect(0, 0, 65, 64), 0, false, 2},
		{"empty", image.Rectangle{}, 64, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDirtyRegion(tt.bounds, tt.size)
			if tt.nilOK {
				if d != nil {
					t.Fatal("expected nil region")
				}
				return
			}
			if d == nil {
				t.Fatal("unexpected nil region")
			}
			if got := d.GetAndClear(); len(got) != 0 {
				t.Errorf("new region has dirty tiles %v", got)
			}
			d.MarkRect(tt.bounds)
			if got := d.GetAndClear(); len(got) != tt.tiles {
				t.Errorf("tiles after marking the bounds = %d, want %d", len(got), tt.tiles)
			}
		})
	}
}

func TestDirtyRegion_MarkRect(t *testing.T) {
	d := NewDirtyRegion(image.Rect(0, 0, 256, 256), 64)

	d.MarkRect(image.Rect(60, 60, 70, 70))
	got := d.GetAndClear()
	want := []image.Rectangle{
		image.Rect(0, 0, 64, 64),
		image.Rect(64, 0, 128, 64),
		image.Rect(0, 64, 64, 128),
		image.Rect(64, 64, 128, 128),
	}
	if len(got) != len(want) {
		t.Fatalf("GetAndClear() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tile %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDirtyRegion_MarkRectClipped(t *testing.T) {
	d := NewDirtyRegion(image.Rect(0, 0, 64, 64), 32)

	d.MarkRect(image.Rect(-100, -100, -1, -1))
	if got := d.GetAndClear(); len(got) != 0 {
		t.Errorf("rectangle outside bounds marked %v", got)
	}
	d.MarkRect(image.Rect(40, 40, 500, 500))
	got := d.GetAndClear()
	if len(got) != 1 || got[0] != image.Rect(32, 32, 64, 64) {
		t.Errorf("GetAndClear() = %v, want [(32,32)-(64,64)]", got)
	}
}

func TestDirtyRegion_OffsetBounds(t *testing.T) {
	d := NewDirtyRegion(image.Rect(100, 100, 164, 164), 32)

	d.MarkRect(image.Rect(140, 100, 141, 101))
	rects := d.GetAndClear()
	if len(rects) != 1 {
		t.Fatalf("GetAndClear() = %v, want one tile", rects)
	}
	if want := image.Rect(132, 100, 164, 132); rects[0] != want {
		t.Errorf("tile = %v, want %v", rects[0], want)
	}
}

func TestDirtyRegion_GetAndClear(t *testing.T) {
	d := NewDirtyRegion(image.Rect(0, 0, 100, 100), 64)
	d.MarkRect(d.Bounds())

	rects := d.GetAndClear()
	want := []image.Rectangle{
		image.Rect(0, 0, 64, 64),
		image.Rect(64, 0, 100, 64),
		image.Rect(0, 64, 64, 100),
		image.Rect(64, 64, 100, 100),
	}
	if len(rects) != len(want) {
		t.Fatalf("GetAndClear() = %v, want %v", rects, want)
	}
	for i := range want {
		if rects[i] != want[i] {
			t.Errorf("tile %d = %v, want %v", i, rects[i], want[i])
		}
	}
	if got := d.GetAndClear(); len(got) != 0 {
		t.Errorf("region should be clean after GetAndClear, got %v", got)
	}
}

func TestDirtyRegion_ManyTiles(t *testing.T) {
	// 20x20 tiles spans more than one bitmap word.
	d := NewDirtyRegion(image.Rect(0, 0, 160, 160), 8)
	d.MarkRect(d.Bounds())
	rects := d.GetAndClear()
	if len(rects) != 400 {
		t.Fatalf("tiles = %d, want 400", len(rects))
	}
	if last := rects[399]; last != image.Rect(152, 152, 160, 160) {
		t.Errorf("last tile = %v", last)
	}
}

func TestDirtyRegion_ConcurrentMark(t *testing.T) {
	d := NewDirtyRegion(image.Rect(0, 0, 512, 512), 16)

	var wg sync.WaitGroup
	for row := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.MarkRect(image.Rect(0, row*16, 512, row*16+16))
		}()
	}
	wg.Wait()

	if got := len(d.GetAndClear()); got != 32*32 {
		t.Errorf("tiles = %d, want %d", got, 32*32)
	}
}
