package color

import "math"

// sRGBToLinearLUT maps an 8-bit sRGB value to linear float32.
var sRGBToLinearLUT [256]float32

// linearToSRGBLUT maps a 12-bit quantised linear value to 8-bit sRGB.
var linearToSRGBLUT [4096]uint8

func init() {
	for i := 0; i < 256; i++ {
		sRGBToLinearLUT[i] = SRGBToLinear(float32(i) / 255)
	}
	for i := 0; i < 4096; i++ {
		s := float64(LinearToSRGB(float32(i) / 4095))
		linearToSRGBLUT[i] = uint8(math.Max(0, math.Min(255, s*255+0.5)))
	}
}

// SRGBToLinearFast converts an sRGB byte to linear float32 using a lookup table.
//
//	r := SRGBToLinearFast(128) // ~0.2159 (not 0.5!)
func SRGBToLinearFast(s uint8) float32 {
	return sRGBToLinearLUT[s]
}

// LinearToSRGBFast converts a linear float32 to an sRGB byte using a lookup
// table. Input is clamped to [0,1].
//
//	s := LinearToSRGBFast(0.5) // 188 (not 128!)
func LinearToSRGBFast(l float32) uint8 {
	if !(l > 0) {
		return 0
	}
	if l >= 1 {
		return 255
	}
	return linearToSRGBLUT[int(l*4095+0.5)]
}

// DecodeRow turns non-premultiplied 8-bit sRGB RGBA into linear float RGBA.
// len(dst) must be at least len(src).
func DecodeRow(dst []float32, src []uint8) {
	for i := 0; i+3 < len(src); i += 4 {
		dst[i] = sRGBToLinearLUT[src[i]]
		dst[i+1] = sRGBToLinearLUT[src[i+1]]
		dst[i+2] = sRGBToLinearLUT[src[i+2]]
		dst[i+3] = float32(src[i+3]) / 255
	}
}

// EncodeRow is the inverse of DecodeRow. Values are clamped.
func EncodeRow(dst []uint8, src []float32) {
	for i := 0; i+3 < len(src); i += 4 {
		dst[i] = LinearToSRGBFast(src[i])
		dst[i+1] = LinearToSRGBFast(src[i+1])
		dst[i+2] = LinearToSRGBFast(src[i+2])
		dst[i+3] = unitToByte(src[i+3])
	}
}

func unitToByte(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
