package profile

import (
	"sort"

	"github.com/AnyUserName/monodither/internal/dither"
)

// DefaultName is used when no profile is requested.
const DefaultName = "eink"

// Profile is a named batch preset: which strategies to run and how to
// write the results.
type Profile struct {
	Name    string
	Methods []dither.Method // strategies applied to every image, in order
	Formats []string        // output formats in priority order
	Quality int             // quality 1-100 for lossy formats
}

// Built-in profiles.
var profiles = map[string]Profile{
	"eink": {
		Name:    "eink",
		Methods: []dither.Method{dither.FloydSteinberg},
		Formats: []string{"png"},
		Quality: 90,
	},
	"thermal": {
		Name:    "thermal",
		Methods: []dither.Method{dither.Bayer1, dither.FloydSteinberg},
		Formats: []string{"png"},
		Quality: 90,
	},
	"preview": {
		Name:    "preview",
		Methods: []dither.Method{dither.Grayscale, dither.Quantise, dither.Bayer2, dither.FloydSteinberg},
		Formats: []string{"webp", "png"},
		Quality: 85,
	},
	"all": {
		Name:    "all",
		Methods: dither.Methods(),
		Formats: []string{"png"},
		Quality: 90,
	},
}

// Get returns a copy of the named profile. Unknown names fall back to the
// default profile under the requested name.
func Get(name string) Profile {
	p, ok := profiles[name]
	if !ok {
		p = profiles[DefaultName]
		p.Name = name
	}
	p.Methods = append([]dither.Method(nil), p.Methods...)
	p.Formats = append([]string(nil), p.Formats...)
	return p
}

// Known reports whether name is a built-in profile.
func Known(name string) bool {
	_, ok := profiles[name]
	return ok
}

// Names returns the built-in profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
