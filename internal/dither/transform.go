package dither

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	// ErrInvalidShape reports a buffer that is not a whole number of rows.
	ErrInvalidShape = errors.New("invalid image shape")
	// ErrRandomSource reports that the noise generator could not be seeded.
	ErrRandomSource = errors.New("random source unavailable")
	// ErrUnknownMethod reports a method tag or name outside the known set.
	ErrUnknownMethod = errors.New("unknown dithering method")
)

// ValidateShape checks that an RGBA buffer of n bytes holds at least one
// complete row of the given width and nothing beyond whole rows.
func ValidateShape(n, width int) error {
	switch {
	case width <= 0:
		return fmt.Errorf("%w: width %d must be positive", ErrInvalidShape, width)
	case n == 0:
		return fmt.Errorf("%w: empty buffer", ErrInvalidShape)
	case n%(bytesPerPixel*width) != 0:
		return fmt.Errorf("%w: %d bytes is not a multiple of %d (4 × width %d)",
			ErrInvalidShape, n, bytesPerPixel*width, width)
	}
	return nil
}

// NewRand returns a generator seeded from system entropy.
func NewRand() (*rand.Rand, error) {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	return rand.New(rand.NewChaCha8(seed)), nil
}

// NewSeededRand returns a deterministic generator for reproducible noise.
func NewSeededRand(seed uint64) *rand.Rand {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:], seed)
	return rand.New(rand.NewChaCha8(s))
}

// Apply runs the strategy selected by m on img.
// rng is only consulted by WhiteNoise; nil means a fresh entropy-seeded
// generator for this call.
func (img *Image) Apply(m Method, rng *rand.Rand) (*Image, error) {
	switch m {
	case Grayscale:
		return img.Grayscale(), nil
	case Quantise:
		return img.Quantise(), nil
	case WhiteNoise:
		if rng == nil {
			var err error
			if rng, err = NewRand(); err != nil {
				return nil, err
			}
		}
		return img.WhiteNoise(rng), nil
	case Bayer0, Bayer1, Bayer2, Bayer3:
		n, _ := m.BayerOrder()
		return img.Bayer(n), nil
	case FloydSteinberg:
		return img.FloydSteinberg(), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, uint8(m))
}

// Transform decodes a packed RGBA buffer, applies m and re-encodes it.
// The result has the same length as rgba. No output is returned on error.
func Transform(rgba []byte, width int, m Method, rng *rand.Rand) ([]byte, error) {
	if err := ValidateShape(len(rgba), width); err != nil {
		return nil, err
	}
	out, err := Decode(rgba, width).Apply(m, rng)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m, err)
	}
	return out.Encode(), nil
}
