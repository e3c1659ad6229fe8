package image

import (
	"image"
	"image/color"
	"testing"
)

func TestNewMask(t *testing.T) {
	m, err := NewMask(image.Rect(0, 0, 3, 2))
	if err != nil {
		t.Fatal(err)
	}
	if got := m.At(2, 1); got != 1 {
		t.Errorf("At(2, 1) = %v, want 1", got)
	}
	if got := m.At(3, 1); got != 0 {
		t.Errorf("At outside = %v, want 0", got)
	}
	if _, err := NewMask(image.Rectangle{}); err == nil {
		t.Error("NewMask(empty) should fail")
	}
}

func TestMaskSetClamps(t *testing.T) {
	m, _ := NewMask(image.Rect(0, 0, 2, 2))
	m.Set(0, 0, 2)
	m.Set(1, 0, -1)
	if m.At(0, 0) != 1 || m.At(1, 0) != 0 {
		t.Errorf("Set did not clamp: %v %v", m.At(0, 0), m.At(1, 0))
	}
}

func TestMaskSpan(t *testing.T) {
	m, _ := NewMask(image.Rect(2, 0, 5, 1))
	m.Set(3, 0, 0.5)

	got := m.Span(nil, 0, 0, 6)
	want := []float32{0, 0, 1, 0.5, 1, 0}
	if len(got) != len(want) {
		t.Fatalf("Span = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Span[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	outside := m.Span(got, 4, 0, 3)
	for i, v := range outside {
		if v != 0 {
			t.Errorf("row outside mask: Span[%d] = %v", i, v)
		}
	}
	if len(m.Span(nil, 0, 3, 3)) != 0 {
		t.Error("empty span should have zero length")
	}
}

func TestMaskFromImage(t *testing.T) {
	src := image.NewAlpha(image.Rect(0, 0, 2, 1))
	src.SetAlpha(0, 0, color.Alpha{A: 255})
	src.SetAlpha(1, 0, color.Alpha{A: 51})

	m, err := MaskFromImage(src)
	if err != nil {
		t.Fatal(err)
	}
	if m.At(0, 0) != 1 {
		t.Errorf("At(0, 0) = %v, want 1", m.At(0, 0))
	}
	if got := m.At(1, 0); got < 0.199 || got > 0.201 {
		t.Errorf("At(1, 0) = %v, want 0.2", got)
	}
}
