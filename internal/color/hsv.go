package color

import "github.com/lucasb-eyer/go-colorful"

// RGBToHSV returns hue in degrees [0,360), saturation and value.
func RGBToHSV(r, g, b float32) (h, s, v float32) {
	H, S, V := colorful.Color{R: float64(r), G: float64(g), B: float64(b)}.Hsv()
	return float32(H), float32(S), float32(V)
}

// HSVToRGB is the inverse of RGBToHSV.
func HSVToRGB(h, s, v float32) (r, g, b float32) {
	c := colorful.Hsv(float64(h), float64(s), float64(v))
	return float32(c.R), float32(c.G), float32(c.B)
}

// RGBToHSL returns hue in degrees [0,360), saturation and lightness.
func RGBToHSL(r, g, b float32) (h, s, l float32) {
	H, S, L := colorful.Color{R: float64(r), G: float64(g), B: float64(b)}.Hsl()
	return float32(H), float32(S), float32(L)
}

// HSLToRGB is the inverse of RGBToHSL.
func HSLToRGB(h, s, l float32) (r, g, b float32) {
	c := colorful.Hsl(float64(h), float64(s), float64(l))
	return float32(c.R), float32(c.G), float32(c.B)
}
