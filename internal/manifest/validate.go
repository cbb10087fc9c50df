package manifest

import (
	"fmt"
	"os"
	"path/filepath"
)

// Validate checks the manifest for internal consistency and verifies that
// every referenced file exists under baseDir with the recorded size.
// It returns one message per problem found.
func (m *Manifest) Validate(baseDir string) []string {
	var errs []string

	if m.Version != SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	seenPaths := map[string]string{}
	for key, asset := range m.Assets {
		if asset.Original.Width <= 0 || asset.Original.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid original dimensions %dx%d",
				key, asset.Original.Width, asset.Original.Height))
		}
		if asset.MeanLuminance < 0 || asset.MeanLuminance > 1 {
			errs = append(errs, fmt.Sprintf("asset %q: mean luminance %.4f out of range", key, asset.MeanLuminance))
		}
		if len(asset.Variants) == 0 {
			errs = append(errs, fmt.Sprintf("asset %q: no variants", key))
		}

		for i, v := range asset.Variants {
			if !v.Method.Valid() {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: unknown method %d", key, i, uint8(v.Method)))
			}
			if v.Format == "" {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: empty format", key, i))
			}
			if v.Width != asset.Original.Width || v.Height != asset.Original.Height {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: dimensions %dx%d differ from original %dx%d",
					key, i, v.Width, v.Height, asset.Original.Width, asset.Original.Height))
			}
			if v.WhiteRatio < 0 || v.WhiteRatio > 1 {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: white ratio %.4f out of range", key, i, v.WhiteRatio))
			}
			if v.Hash == "" {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: missing hash", key, i))
			}
			if v.Path == "" {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: missing path", key, i))
				continue
			}

			if owner, dup := seenPaths[v.Path]; dup {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: path %q already used by %q", key, i, v.Path, owner))
			}
			seenPaths[v.Path] = key

			info, err := os.Stat(filepath.Join(baseDir, filepath.FromSlash(v.Path)))
			if err != nil {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: file not found: %s", key, i, v.Path))
			} else if v.Size > 0 && info.Size() != v.Size {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: size mismatch: manifest=%d, disk=%d",
					key, i, v.Size, info.Size()))
			}
		}
	}

	variantCount := 0
	for _, a := range m.Assets {
		variantCount += len(a.Variants)
	}
	if m.Stats.TotalAssets != len(m.Assets) {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, len(m.Assets)))
	}
	if m.Stats.TotalVariants != variantCount {
		errs = append(errs, fmt.Sprintf("stats.total_variants mismatch: %d != %d", m.Stats.TotalVariants, variantCount))
	}

	return errs
}
