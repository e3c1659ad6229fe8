package color

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// SRGBToLinear converts an sRGB component to linear (EOTF - Electro-Optical Transfer Function).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
// Values outside [0,1] are extended by mirroring around zero, so
// out-of-gamut results of a blend survive a round trip.
func SRGBToLinear(s float32) float32 {
	if s < 0 {
		return -SRGBToLinear(-s)
	}
	if s <= 0.04045 {
		return s / 12.92
	}
	return float32(math.Pow(float64((s+0.055)/1.055), 2.4))
}

// LinearToSRGB converts a linear component to sRGB (OETF - Opto-Electronic Transfer Function).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
func LinearToSRGB(l float32) float32 {
	if l < 0 {
		return -LinearToSRGB(-l)
	}
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*float32(math.Pow(float64(l), 1.0/2.4)) - 0.055
}

// LinearToLAB converts linear RGB to CIE LAB with L in [0,100].
func LinearToLAB(r, g, b float32) (l, a, bb float32) {
	x, y, z := colorful.LinearRgbToXyz(float64(r), float64(g), float64(b))
	L, A, B := colorful.XyzToLab(x, y, z)
	return float32(L * 100), float32(A * 100), float32(B * 100)
}

// LABToLinear converts CIE LAB with L in [0,100] to linear RGB.
func LABToLinear(l, a, b float32) (r, g, bb float32) {
	x, y, z := colorful.LabToXyz(float64(l)/100, float64(a)/100, float64(b)/100)
	R, G, B := colorful.XyzToLinearRgb(x, y, z)
	return float32(R), float32(G), float32(B)
}

// Convert returns p, an RGBA sample in space from, expressed in space to.
// SpaceAuto on either side is treated as no conversion.
func Convert(p [4]float32, from, to Space) [4]float32 {
	if from == to || from == SpaceAuto || to == SpaceAuto {
		return p
	}

	// Bring the sample to linear RGB first.
	switch from {
	case SpaceRGBPerceptual:
		p[0], p[1], p[2] = SRGBToLinear(p[0]), SRGBToLinear(p[1]), SRGBToLinear(p[2])
	case SpaceLAB:
		p[0], p[1], p[2] = LABToLinear(p[0], p[1], p[2])
	}

	switch to {
	case SpaceRGBPerceptual:
		p[0], p[1], p[2] = LinearToSRGB(p[0]), LinearToSRGB(p[1]), LinearToSRGB(p[2])
	case SpaceLAB:
		p[0], p[1], p[2] = LinearToLAB(p[0], p[1], p[2])
	}
	return p
}

// ConvertRow converts samples RGBA samples from src into dst.
// dst and src may be the same slice.
func ConvertRow(dst, src []float32, samples int, from, to Space) {
	if samples <= 0 {
		return
	}
	if from == to || from == SpaceAuto || to == SpaceAuto {
		if &dst[0] != &src[0] {
			copy(dst[:samples*4], src[:samples*4])
		}
		return
	}
	for i := 0; i < samples*4; i += 4 {
		p := Convert([4]float32{src[i], src[i+1], src[i+2], src[i+3]}, from, to)
		dst[i], dst[i+1], dst[i+2], dst[i+3] = p[0], p[1], p[2], p[3]
	}
}
