package encoder

import (
	"fmt"
	"strings"
)

// priority is the preferred order of output formats.
var priority = []string{"png", "webp", "jpeg"}

// Registry holds the available encoders keyed by format.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry probes the built-in encoders and keeps the available ones.
func NewRegistry() *Registry {
	return NewRegistryWith(
		&PNGEncoder{},
		&WebPEncoder{},
		&JPEGEncoder{},
	)
}

// NewRegistryWith builds a registry from the given encoders, skipping any
// that are unavailable. A later encoder replaces an earlier one of the
// same format.
func NewRegistryWith(encs ...Encoder) *Registry {
	r := &Registry{encoders: make(map[string]Encoder)}
	for _, enc := range encs {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		}
	}
	return r
}

// Get returns the encoder for format, or nil if unavailable.
// "jpg" is accepted as an alias for "jpeg".
func (r *Registry) Get(format string) Encoder {
	return r.encoders[normalize(format)]
}

// Available returns the available format names in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range priority {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// ResolveFormats filters requested formats to those available, dropping
// duplicates. PNG is used when nothing requested is available, and added
// when the image has alpha but every resolved format would lose it.
func (r *Registry) ResolveFormats(requested []string, hasAlpha bool) []string {
	var resolved []string
	seen := map[string]bool{}
	keepsAlpha := false

	for _, f := range requested {
		f = normalize(f)
		if _, ok := r.encoders[f]; ok && !seen[f] {
			resolved = append(resolved, f)
			seen[f] = true
			if f != "jpeg" {
				keepsAlpha = true
			}
		}
	}

	if (len(resolved) == 0 || (hasAlpha && !keepsAlpha)) && r.encoders["png"] != nil && !seen["png"] {
		resolved = append(resolved, "png")
	}
	return resolved
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}

func normalize(format string) string {
	f := strings.ToLower(strings.TrimPrefix(format, "."))
	if f == "jpg" {
		return "jpeg"
	}
	return f
}
