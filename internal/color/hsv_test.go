package color

import "testing"

func TestHSVRoundTrip(t *testing.T) {
	tests := [][3]float32{
		{1, 0, 0},
		{0.2, 0.6, 0.4},
		{0.9, 0.9, 0.1},
		{0.5, 0.5, 0.5},
	}
	for _, rgb := range tests {
		h, s, v := RGBToHSV(rgb[0], rgb[1], rgb[2])
		r, g, b := HSVToRGB(h, s, v)
		if !floatNear(r, rgb[0], 1e-5) || !floatNear(g, rgb[1], 1e-5) || !floatNear(b, rgb[2], 1e-5) {
			t.Errorf("HSV round trip %v -> (%v, %v, %v)", rgb, r, g, b)
		}

		h, s, l := RGBToHSL(rgb[0], rgb[1], rgb[2])
		r, g, b = HSLToRGB(h, s, l)
		if !floatNear(r, rgb[0], 1e-5) || !floatNear(g, rgb[1], 1e-5) || !floatNear(b, rgb[2], 1e-5) {
			t.Errorf("HSL round trip %v -> (%v, %v, %v)", rgb, r, g, b)
		}
	}
}

func TestRGBToHSVPrimaries(t *testing.T) {
	h, s, v := RGBToHSV(0, 0, 1)
	if !floatNear(h, 240, 1e-4) || s != 1 || v != 1 {
		t.Errorf("RGBToHSV(blue) = (%v, %v, %v), want (240, 1, 1)", h, s, v)
	}
}
