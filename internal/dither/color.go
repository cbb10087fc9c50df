package dither

import "math"

// sRGB transfer function constants (IEC 61966-2-1).
const (
	gamma         = 2.4
	decodeKnee    = 0.04045
	encodeKnee    = 0.0031308
	linearSlope   = 12.92
	gammaOffset   = 0.055
	gammaScale    = 1.055
	lumaRed       = 0.2126
	lumaGreen     = 0.7152
	lumaBlue      = 0.0722
	bytesPerPixel = 4
)

// srgbToLinearLUT maps an 8-bit sRGB channel to linear light.
// Filled at init from SRGBToLinear so values are bit-identical to the formula.
var srgbToLinearLUT [256]float64

func init() {
	for i := range srgbToLinearLUT {
		srgbToLinearLUT[i] = SRGBToLinear(float64(i) / 255)
	}
}

// SRGBToLinear decodes a gamma-encoded channel value in [0,1].
func SRGBToLinear(c float64) float64 {
	if c < decodeKnee {
		return c / linearSlope
	}
	return math.Pow((c+gammaOffset)/gammaScale, gamma)
}

// LinearToSRGB encodes a linear-light value in [0,1].
func LinearToSRGB(c float64) float64 {
	if c <= encodeKnee {
		return linearSlope * c
	}
	return gammaScale*math.Pow(c, 1/gamma) - gammaOffset
}

// Luminance returns the BT.709 relative luminance of linear r, g, b.
// The conversions force rounding of each product so no platform fuses them
// into FMA; white must decode to exactly 1.
func Luminance(r, g, b float64) float64 {
	return float64(lumaRed*r) + float64(lumaGreen*g) + float64(lumaBlue*b)
}

// Decode converts a packed RGBA buffer into linear luminance pixels.
// Bytes past the last complete pixel are ignored; callers that need a
// strict shape check use ValidateShape first.
func Decode(rgba []byte, width int) *Image {
	n := len(rgba) / bytesPerPixel
	pixels := make([]Pixel, n)
	for i := range pixels {
		p := rgba[i*bytesPerPixel : i*bytesPerPixel+bytesPerPixel]
		pixels[i] = Pixel{
			L: Luminance(srgbToLinearLUT[p[0]], srgbToLinearLUT[p[1]], srgbToLinearLUT[p[2]]),
			A: p[3],
		}
	}
	return &Image{Pixels: pixels, Width: width}
}

// Encode converts the image back to a packed RGBA buffer. Each pixel's
// luminance is written as a true gray into R, G and B; alpha is kept.
func (img *Image) Encode() []byte {
	out := make([]byte, len(img.Pixels)*bytesPerPixel)
	for i, px := range img.Pixels {
		v := encodeChannel(px.L)
		o := out[i*bytesPerPixel : i*bytesPerPixel+bytesPerPixel]
		o[0], o[1], o[2], o[3] = v, v, v, px.A
	}
	return out
}

func encodeChannel(l float64) uint8 {
	switch {
	case l <= 0:
		l = 0
	case l >= 1:
		l = 1
	}
	return uint8(math.Round(LinearToSRGB(l) * 255))
}
