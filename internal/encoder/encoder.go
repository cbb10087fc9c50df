package encoder

import (
	"image"
)

// Encoder writes a dithered image in one output format.
type Encoder interface {
	// Format returns the format name ("png", "jpeg", "webp").
	Format() string

	// Encode serialises img. quality (1-100) only affects lossy formats.
	Encode(img image.Image, quality int) ([]byte, error)

	// Available reports whether the encoder can run on this machine.
	// External encoders (cwebp) may not be installed.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}

// DefaultQuality is used when a lossy encoder gets a quality outside 1-100.
// Dither patterns are high-frequency, so the default is higher than for photos.
const DefaultQuality = 90
