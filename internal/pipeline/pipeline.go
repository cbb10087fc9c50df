package pipeline

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/AnyUserName/monodither/internal/encoder"
	"github.com/AnyUserName/monodither/internal/logging"
	"github.com/AnyUserName/monodither/internal/manifest"
	"github.com/AnyUserName/monodither/internal/profile"
)

// Config holds all parameters for a build pipeline run.
type Config struct {
	InputDir  string
	OutputDir string
	Profile   profile.Profile
	Workers   int
	// Seed makes white-noise output reproducible; 0 draws from system entropy.
	Seed   uint64
	Logger *slog.Logger
	// Registry overrides the default encoder set.
	Registry *encoder.Registry
}

// Pipeline dithers every image under an input directory.
//
// Images are processed concurrently, one goroutine per image bounded by
// Workers. Each image is dithered on a single goroutine.
type Pipeline struct {
	cfg      Config
	log      *slog.Logger
	registry *encoder.Registry
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.Registry == nil {
		cfg.Registry = encoder.NewRegistry()
	}
	return &Pipeline{
		cfg:      cfg,
		log:      logging.WithComponent(cfg.Logger, logging.ComponentPipeline),
		registry: cfg.Registry,
	}
}

// Run executes the full build and returns the manifest.
// Individual image failures are logged and counted; Run only fails when
// nothing could be processed.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	p.log.Debug(p.registry.String())
	if len(p.cfg.Profile.Methods) == 0 {
		return nil, fmt.Errorf("profile %q has no methods", p.cfg.Profile.Name)
	}

	sources, err := ScanImages(p.cfg.InputDir, p.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	p.log.Debug("scan complete", "images", len(sources))

	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			p.log.Debug("processing", "key", s.Key)
			results[idx] = p.processImage(s)
			if results[idx].err == nil {
				p.log.Debug("done", "key", s.Key, "variants", len(results[idx].asset.Variants))
			}
		}(i, src)
	}
	wg.Wait()

	m := manifest.New(p.cfg.Profile.Name)
	var failed int
	for _, r := range results {
		if r.err != nil {
			p.log.Error("image failed", "key", r.key, "error", r.err)
			failed++
			continue
		}
		m.Assets[r.key] = r.asset
	}
	if failed == len(sources) {
		return nil, fmt.Errorf("all %d images failed to process", failed)
	}
	if failed > 0 {
		p.log.Warn("some images had errors", "failed", failed, "total", len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers: p.cfg.Workers,
		Seed:    p.cfg.Seed,
	}
	m.Stats.Failed = failed
	m.ComputeStats()
	return m, nil
}
