package color

import (
	"math"
	"testing"
)

// TestSRGBToLinearAccuracy tests that the LUT matches the analytic curve.
func TestSRGBToLinearAccuracy(t *testing.T) {
	for i := 0; i < 256; i++ {
		fast := SRGBToLinearFast(uint8(i))
		slow := SRGBToLinear(float32(i) / 255)
		if diff := math.Abs(float64(fast - slow)); diff > 1e-4 {
			t.Errorf("sRGB %d: fast=%f, slow=%f, error=%f", i, fast, slow, diff)
		}
	}
}

// TestSRGBRoundTrip tests that sRGB -> linear -> sRGB preserves bytes.
func TestSRGBRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		srgb := uint8(i)
		result := LinearToSRGBFast(SRGBToLinearFast(srgb))
		diff := int(result) - int(srgb)
		if diff < -1 || diff > 1 {
			t.Errorf("Round trip %d -> %d (error=%d)", srgb, result, diff)
		}
	}
}

func TestLinearToSRGBFastClamps(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{1, 255},
		{2, 255},
		{float32(math.NaN()), 0},
	}
	for _, tt := range tests {
		if got := LinearToSRGBFast(tt.in); got != tt.want {
			t.Errorf("LinearToSRGBFast(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDecodeEncodeRow(t *testing.T) {
	src := []uint8{0, 128, 255, 255, 10, 20, 30, 64}
	buf := make([]float32, len(src))
	DecodeRow(buf, src)

	if buf[0] != 0 || buf[2] != 1 || buf[3] != 1 {
		t.Errorf("DecodeRow = %v", buf)
	}
	if !floatNear(buf[7], 64.0/255, 1e-6) {
		t.Errorf("DecodeRow alpha = %v, want %v", buf[7], 64.0/255)
	}

	out := make([]uint8, len(src))
	EncodeRow(out, buf)
	for i := range src {
		diff := int(out[i]) - int(src[i])
		if diff < -1 || diff > 1 {
			t.Errorf("EncodeRow[%d] = %d, want %d", i, out[i], src[i])
		}
	}
}
