// Package imageio bridges image files and the packed RGBA buffers the
// dither engine works on.
package imageio

import (
	"fmt"
	"image"
	"io"
	"math/rand/v2"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/monodither/internal/dither"
)

// Open reads and decodes an image file. See Decode.
func Open(path string) (*image.NRGBA, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads any registered image format, applies EXIF orientation and
// returns a tightly packed, origin-anchored NRGBA copy along with the
// format name reported by the decoder.
func Decode(r io.Reader) (*image.NRGBA, string, error) {
	// imaging.Decode hides the format name, so sniff it separately.
	rs, ok := r.(io.ReadSeeker)
	format := ""
	if ok {
		if _, f, err := image.DecodeConfig(rs); err == nil {
			format = f
		}
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, "", fmt.Errorf("rewind: %w", err)
		}
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", err
	}
	return imaging.Clone(img), format, nil
}

// Dither runs the engine over img's pixel buffer and returns a new image
// of the same bounds.
func Dither(img *image.NRGBA, m dither.Method, rng *rand.Rand) (*image.NRGBA, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	pix := packed(img)
	out, err := dither.Transform(pix, w, m, rng)
	if err != nil {
		return nil, err
	}
	return &image.NRGBA{
		Pix:    out,
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	}, nil
}

// packed returns img's pixels without row padding.
func packed(img *image.NRGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	rowLen := 4 * w
	if img.Stride == rowLen {
		start := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y)
		return img.Pix[start : start+rowLen*h]
	}
	buf := make([]byte, 0, rowLen*h)
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		off := img.PixOffset(img.Rect.Min.X, y)
		buf = append(buf, img.Pix[off:off+rowLen]...)
	}
	return buf
}

// HasAlpha reports whether any pixel is not fully opaque.
func HasAlpha(img *image.NRGBA) bool {
	pix := packed(img)
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 0xff {
			return true
		}
	}
	return false
}

// MeanLuminance returns the average linear luminance of img in [0,1].
func MeanLuminance(img *image.NRGBA) float64 {
	return dither.Decode(packed(img), img.Rect.Dx()).MeanLuminance()
}
