package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/monodither/internal/dither"
)

func makeNRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x * 251) % 256),
				G: uint8((y * 179) % 256),
				B: uint8(((x + y) * 113) % 256),
				A: uint8(255 - x%4),
			})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecode_PNG(t *testing.T) {
	src := makeNRGBA(13, 7)
	img, format, err := Decode(bytes.NewReader(encodePNG(t, src)))
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" {
		t.Errorf("format: got %q, want png", format)
	}
	if img.Rect != image.Rect(0, 0, 13, 7) || img.Stride != 13*4 {
		t.Fatalf("layout: rect %v stride %d", img.Rect, img.Stride)
	}
	if !bytes.Equal(img.Pix, src.Pix) {
		t.Fatal("decoded pixels differ from source")
	}
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	if err := os.WriteFile(path, encodePNG(t, makeNRGBA(4, 4)), 0o644); err != nil {
		t.Fatal(err)
	}
	img, format, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" || img.Rect.Dx() != 4 {
		t.Fatalf("got format %q, width %d", format, img.Rect.Dx())
	}
	if _, _, err := Open(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDither_KeepsAlphaAndBounds(t *testing.T) {
	src := makeNRGBA(17, 5)
	out, err := Dither(src, dither.FloydSteinberg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rect != src.Rect {
		t.Fatalf("bounds: got %v, want %v", out.Rect, src.Rect)
	}
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i+3] != src.Pix[i+3] {
			t.Fatalf("pixel %d alpha changed", i/4)
		}
		if v := out.Pix[i]; v != 0 && v != 255 {
			t.Fatalf("pixel %d value %d not binary", i/4, v)
		}
	}
}

func TestDither_SubImage(t *testing.T) {
	full := makeNRGBA(10, 10)
	sub := full.SubImage(image.Rect(2, 3, 7, 9)).(*image.NRGBA)
	out, err := Dither(sub, dither.Grayscale, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rect != image.Rect(0, 0, 5, 6) {
		t.Fatalf("bounds: got %v", out.Rect)
	}
	// Alpha of the first output pixel comes from (2,3) of the full image.
	if got, want := out.Pix[3], full.NRGBAAt(2, 3).A; got != want {
		t.Fatalf("alpha: got %d, want %d", got, want)
	}
}

func TestDither_Empty(t *testing.T) {
	if _, err := Dither(image.NewNRGBA(image.Rect(0, 0, 0, 0)), dither.Quantise, nil); err == nil {
		t.Fatal("expected error for empty image")
	}
}

func TestHasAlpha(t *testing.T) {
	opaque := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for i := range opaque.Pix {
		opaque.Pix[i] = 0xff
	}
	if HasAlpha(opaque) {
		t.Error("opaque image reported as having alpha")
	}
	if !HasAlpha(makeNRGBA(4, 1)) {
		t.Error("translucent image not detected")
	}
}

func TestMeanLuminance(t *testing.T) {
	white := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range white.Pix {
		white.Pix[i] = 0xff
	}
	if m := MeanLuminance(white); m < 0.999 {
		t.Errorf("white: got %v", m)
	}
	if m := MeanLuminance(image.NewNRGBA(image.Rect(0, 0, 2, 2))); m != 0 {
		t.Errorf("black: got %v", m)
	}
}
