package pipeline

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path"
	"path/filepath"

	"github.com/AnyUserName/monodither/internal/dither"
	"github.com/AnyUserName/monodither/internal/hasher"
	"github.com/AnyUserName/monodither/internal/imageio"
	"github.com/AnyUserName/monodither/internal/manifest"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// processImage decodes one source and writes a variant per method and
// output format.
func (p *Pipeline) processImage(src Source) processResult {
	result := processResult{key: src.Key}

	img, format, err := imageio.Open(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}
	if format == "" {
		format = src.Format
	}

	w, h := img.Rect.Dx(), img.Rect.Dy()
	hasAlpha := imageio.HasAlpha(img)
	result.asset = manifest.Asset{
		Original: manifest.OriginalInfo{
			Width:    w,
			Height:   h,
			Format:   format,
			Size:     src.Size,
			HasAlpha: hasAlpha,
		},
		MeanLuminance: imageio.MeanLuminance(img),
	}

	formats := p.registry.ResolveFormats(p.cfg.Profile.Formats, hasAlpha)
	if len(formats) == 0 {
		result.err = fmt.Errorf("%s: no usable output format in %v", src.RelPath, p.cfg.Profile.Formats)
		return result
	}

	keyDir := path.Dir(src.Key)
	if err := os.MkdirAll(filepath.Join(p.cfg.OutputDir, filepath.FromSlash(keyDir)), 0o755); err != nil {
		result.err = fmt.Errorf("create output dir for %s: %w", src.Key, err)
		return result
	}

	for _, m := range p.cfg.Profile.Methods {
		out, err := imageio.Dither(img, m, p.rngFor(src.Key, m))
		if err != nil {
			result.err = fmt.Errorf("%s %s: %w", src.RelPath, m, err)
			return result
		}
		whiteRatio := imageio.MeanLuminance(out)

		for _, f := range formats {
			enc := p.registry.Get(f)
			if enc == nil {
				continue
			}

			data, err := enc.Encode(out, p.cfg.Profile.Quality)
			if err != nil {
				p.log.Warn("encode failed", "key", src.Key, "method", m, "format", f, "error", err)
				continue
			}

			contentHash := hasher.ContentHash(data, 16)
			fileName := fmt.Sprintf("%s.%s.%s.%s", path.Base(src.Key), m, contentHash[:8], enc.Extension())
			relPath := path.Join(keyDir, fileName)

			outPath := filepath.Join(p.cfg.OutputDir, filepath.FromSlash(relPath))
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				result.err = fmt.Errorf("write %s: %w", relPath, err)
				return result
			}

			result.asset.Variants = append(result.asset.Variants, manifest.Variant{
				Method:     m,
				Format:     enc.Format(),
				Width:      w,
				Height:     h,
				Size:       int64(len(data)),
				Hash:       contentHash,
				Path:       relPath,
				WhiteRatio: whiteRatio,
			})
		}
	}

	return result
}

// rngFor returns the noise source for one asset and method. Without a
// configured seed it returns nil and the engine seeds from entropy.
func (p *Pipeline) rngFor(key string, m dither.Method) *rand.Rand {
	if p.cfg.Seed == 0 || m != dither.WhiteNoise {
		return nil
	}
	return dither.NewSeededRand(hasher.Seed(p.cfg.Seed, key))
}
