// Package dither converts RGBA rasters to black-and-white using linear-light
// luminance and one of several dithering strategies.
//
// Pixels are decoded from 8-bit sRGB to linear luminance, thresholded by the
// selected Method, and encoded back as gray RGBA with the original alpha.
// Every strategy returns a new Image; the receiver is never modified.
package dither

import "math/rand/v2"

// Pixel is one decoded pixel: linear luminance and the untouched alpha.
// L is nominally in [0,1] but may leave that range during error diffusion.
type Pixel struct {
	L float64
	A uint8
}

// Image is a row-major sequence of pixels with an explicit width.
type Image struct {
	Pixels []Pixel
	Width  int
}

// Height returns len(Pixels) / Width.
func (img *Image) Height() int {
	if img.Width <= 0 {
		return 0
	}
	return len(img.Pixels) / img.Width
}

// Clone returns a deep copy.
func (img *Image) Clone() *Image {
	return &Image{
		Pixels: append([]Pixel(nil), img.Pixels...),
		Width:  img.Width,
	}
}

// MeanLuminance averages L over all pixels. For a binary image this is the
// fraction of white pixels.
func (img *Image) MeanLuminance() float64 {
	if len(img.Pixels) == 0 {
		return 0
	}
	var sum float64
	for _, px := range img.Pixels {
		sum += px.L
	}
	return sum / float64(len(img.Pixels))
}

// threshold returns 1 when l is strictly above t, else 0.
func threshold(l, t float64) float64 {
	if l > t {
		return 1
	}
	return 0
}

// mapPixels builds a new image by applying fn to every pixel luminance in
// row-major order, keeping alpha.
func (img *Image) mapPixels(fn func(i int, l float64) float64) *Image {
	out := &Image{Pixels: make([]Pixel, len(img.Pixels)), Width: img.Width}
	for i, px := range img.Pixels {
		out.Pixels[i] = Pixel{L: fn(i, px.L), A: px.A}
	}
	return out
}

// Grayscale returns the image unchanged; encoding it yields plain gray.
func (img *Image) Grayscale() *Image {
	return img.Clone()
}

// Quantise thresholds every pixel at mid-gray.
func (img *Image) Quantise() *Image {
	return img.mapPixels(func(_ int, l float64) float64 {
		return threshold(l, 0.5)
	})
}

// WhiteNoise thresholds every pixel against a fresh uniform draw from rng.
// Exactly one draw is taken per pixel in row-major order, so a seeded rng
// gives reproducible output.
func (img *Image) WhiteNoise(rng *rand.Rand) *Image {
	return img.mapPixels(func(_ int, l float64) float64 {
		return threshold(l, rng.Float64())
	})
}

// Bayer applies ordered dithering with the order-n Bayer matrix.
//
// The lookup index is (x mod m)*m + (y mod m): x picks the matrix row and
// y the column. This fixes the tiling orientation of the pattern.
func (img *Image) Bayer(n int) *Image {
	matrix := BayerMatrix(n)
	m := BayerSize(n)
	scale := float64(m * m)
	width := img.Width
	return img.mapPixels(func(i int, l float64) float64 {
		x, y := i%width, i/width
		t := float64(matrix[(x%m)*m+y%m]) / scale
		return threshold(l, t)
	})
}

// Floyd–Steinberg weights, in sixteenths.
const (
	fsRight       = 7.0 / 16.0
	fsBottomLeft  = 3.0 / 16.0
	fsBottom      = 5.0 / 16.0
	fsBottomRight = 1.0 / 16.0
)

// FloydSteinberg applies error diffusion in strict row-major order.
// Each pixel is thresholded at mid-gray and its quantisation error is pushed
// to the right, bottom-left, bottom and bottom-right neighbours that exist.
func (img *Image) FloydSteinberg() *Image {
	out := img.Clone()
	width, height := out.Width, out.Height()
	px := out.Pixels
	for i := range px {
		old := px[i].L
		quantised := threshold(old, 0.5)
		px[i].L = quantised
		diffuse(px, width, height, i, old-quantised)
	}
	return out
}

// diffuse adds the error of pixel i to its not yet visited neighbours.
// Pixels in a trailing partial row are treated as having no row below.
func diffuse(px []Pixel, width, height, i int, qerr float64) {
	if qerr == 0 {
		return
	}
	x, y := i%width, i/width
	right := x+1 < width && i+1 < len(px)
	below := y+1 < height

	if right {
		px[i+1].L += qerr * fsRight
	}
	if x > 0 && below {
		px[i+width-1].L += qerr * fsBottomLeft
	}
	if below {
		px[i+width].L += qerr * fsBottom
	}
	if right && below {
		px[i+width+1].L += qerr * fsBottomRight
	}
}
