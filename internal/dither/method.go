package dither

import (
	"fmt"
	"strconv"
	"strings"
)

// Method selects a dithering strategy. The numeric values are stable tags
// shared with external callers and must not be reordered.
type Method uint8

const (
	Grayscale      Method = 0
	Quantise       Method = 1
	WhiteNoise     Method = 2
	Bayer0         Method = 3
	Bayer1         Method = 4
	Bayer2         Method = 5
	Bayer3         Method = 6
	FloydSteinberg Method = 7
)

var methodNames = [...]string{
	Grayscale:      "grayscale",
	Quantise:       "quantise",
	WhiteNoise:     "white-noise",
	Bayer0:         "bayer-0",
	Bayer1:         "bayer-1",
	Bayer2:         "bayer-2",
	Bayer3:         "bayer-3",
	FloydSteinberg: "floyd-steinberg",
}

// methodAliases holds alternative spellings accepted by ParseMethod.
var methodAliases = map[string]Method{
	"gray":           Grayscale,
	"greyscale":      Grayscale,
	"quantize":       Quantise,
	"threshold":      Quantise,
	"whitenoise":     WhiteNoise,
	"noise":          WhiteNoise,
	"random":         WhiteNoise,
	"bayer0":         Bayer0,
	"bayer1":         Bayer1,
	"bayer2":         Bayer2,
	"bayer3":         Bayer3,
	"floydsteinberg": FloydSteinberg,
	"fs":             FloydSteinberg,
}

// Methods returns every method in tag order.
func Methods() []Method {
	ms := make([]Method, len(methodNames))
	for i := range ms {
		ms[i] = Method(i)
	}
	return ms
}

// Valid reports whether m is a known tag.
func (m Method) Valid() bool {
	return int(m) < len(methodNames)
}

func (m Method) String() string {
	if !m.Valid() {
		return fmt.Sprintf("method(%d)", uint8(m))
	}
	return methodNames[m]
}

// Binary reports whether the method emits only pure black or white.
func (m Method) Binary() bool {
	return m.Valid() && m != Grayscale
}

// BayerOrder returns the matrix order for Bayer0..Bayer3.
func (m Method) BayerOrder() (int, bool) {
	if m < Bayer0 || m > Bayer3 {
		return 0, false
	}
	return int(m - Bayer0), true
}

// ParseMethod accepts a canonical name, an alias, or a numeric tag.
// Matching is case-insensitive and treats '_' and ' ' like '-'.
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)

	for i, name := range methodNames {
		if key == name {
			return Method(i), nil
		}
	}
	if m, ok := methodAliases[strings.ReplaceAll(key, "-", "")]; ok {
		return m, nil
	}
	if n, err := strconv.ParseUint(key, 10, 8); err == nil && Method(n).Valid() {
		return Method(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
