package manifest

import "github.com/AnyUserName/monodither/internal/dither"

// Manifest is the top-level output of a monodither build.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	BasePath    string           `json:"base_path"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers int    `json:"workers"`
	Seed    uint64 `json:"seed,omitempty"` // base seed for white-noise; 0 = entropy
}

// Asset describes a single source image and its dithered variants.
type Asset struct {
	Original      OriginalInfo `json:"original"`
	MeanLuminance float64      `json:"mean_luminance"` // linear, 0-1
	Variants      []Variant    `json:"variants"`
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
	HasAlpha bool   `json:"has_alpha"`
}

// Variant is one dithered output of an asset.
type Variant struct {
	Method     dither.Method `json:"method"`
	Format     string        `json:"format"` // "png", "webp", "jpeg"
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Size       int64         `json:"size"`        // bytes on disk
	Hash       string        `json:"hash"`        // first 16 hex chars of xxhash64
	Path       string        `json:"path"`        // relative to base_path
	WhiteRatio float64       `json:"white_ratio"` // mean output luminance
}

// Stats aggregates build metrics.
type Stats struct {
	TotalInputBytes  int64          `json:"total_input_bytes"`
	TotalOutputBytes int64          `json:"total_output_bytes"`
	TotalAssets      int            `json:"total_assets"`
	TotalVariants    int            `json:"total_variants"`
	ByMethod         map[string]int `json:"by_method,omitempty"`
	Failed           int            `json:"failed,omitempty"` // sources that could not be processed
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the manifest's name inside an output directory.
const FileName = "monodither.manifest.json"
