package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AnyUserName/monodither/internal/config"
	"github.com/AnyUserName/monodither/internal/dither"
	"github.com/AnyUserName/monodither/internal/manifest"
	"github.com/AnyUserName/monodither/internal/pipeline"
	"github.com/AnyUserName/monodither/internal/profile"
	"github.com/spf13/cobra"
)

var (
	buildOutDir  string
	buildProfile string
	buildWorkers int
	buildMethods []string
	buildFormats []string
	buildQuality int
	buildSeed    uint64
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Dither every image in a directory and write a manifest",
	Long: `Scans the input directory for images (png, jpg, jpeg, gif, webp, bmp,
tiff), dithers each with every method of the profile, encodes the
results and writes monodither.manifest.json.

Output filenames are content-addressed: <key>.<method>.<hash>.ext`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./monodither_out", "output directory")
	buildCmd.Flags().StringVarP(&buildProfile, "profile", "p", profile.DefaultName,
		"processing profile: "+strings.Join(profile.Names(), ", "))
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().StringSliceVar(&buildMethods, "methods", nil, "methods to run (overrides profile)")
	buildCmd.Flags().StringSliceVar(&buildFormats, "formats", nil, "output formats (overrides profile)")
	buildCmd.Flags().IntVarP(&buildQuality, "quality", "q", 0, "quality 1-100 (0 = profile default)")
	buildCmd.Flags().Uint64Var(&buildSeed, "seed", 0, "base seed for white-noise (0 = system entropy)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	stringFromEnv(cmd, "out", config.EnvOutDir, &buildOutDir)
	stringFromEnv(cmd, "profile", config.EnvProfile, &buildProfile)
	intFromEnv(cmd, "workers", config.EnvWorkers, &buildWorkers)

	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	prof, err := resolveProfile()
	if err != nil {
		return err
	}

	logger.Debug("build", "input", absInput, "output", absOutput)
	logger.Debug("profile", "name", prof.Name, "methods", prof.Methods,
		"formats", prof.Formats, "quality", prof.Quality)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Profile:   prof,
		Workers:   buildWorkers,
		Seed:      buildSeed,
		Logger:    baseLogger,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if err := manifest.WriteJSON(m, filepath.Join(absOutput, manifest.FileName)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(m, time.Since(start))
	return nil
}

// resolveProfile loads the requested profile and applies flag overrides.
func resolveProfile() (profile.Profile, error) {
	if !profile.Known(buildProfile) {
		logger.Warn("unknown profile, using defaults", "profile", buildProfile, "default", profile.DefaultName)
	}
	prof := profile.Get(buildProfile)

	if len(buildMethods) > 0 {
		prof.Methods = prof.Methods[:0]
		for _, s := range buildMethods {
			m, err := dither.ParseMethod(s)
			if err != nil {
				return prof, err
			}
			prof.Methods = append(prof.Methods, m)
		}
	}
	if len(buildFormats) > 0 {
		prof.Formats = buildFormats
	}
	if buildQuality > 0 {
		prof.Quality = buildQuality
	}
	return prof, nil
}

func printBuildReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║            monodither build complete             ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	stats := m.Stats
	fmt.Printf("  Assets:      %d\n", stats.TotalAssets)
	fmt.Printf("  Variants:    %d\n", stats.TotalVariants)
	if stats.Failed > 0 {
		fmt.Printf("  Failed:      %d images\n", stats.Failed)
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(stats.TotalOutputBytes))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	// Darkest assets first.
	if len(m.Assets) > 0 {
		type assetLum struct {
			key  string
			lum  float64
			size int64
		}
		var items []assetLum
		for key, a := range m.Assets {
			var outSum int64
			for _, v := range a.Variants {
				outSum += v.Size
			}
			items = append(items, assetLum{key, a.MeanLuminance, outSum})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].lum != items[j].lum {
				return items[i].lum < items[j].lum
			}
			return items[i].key < items[j].key
		})
		n := min(len(items), 10)
		fmt.Printf("  Darkest %d (mean luminance, output size):\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %5.3f  %8s\n", truncKey(it.key, 40), it.lum, formatBytes(it.size))
		}
		fmt.Println()
	}

	fmt.Printf("  Methods:     %s\n", strings.Join(detectMethods(m), ", "))
	fmt.Printf("  Formats:     %s\n", strings.Join(detectOutputFormats(m), ", "))
	fmt.Println()

	data, _ := json.Marshal(m)
	fmt.Printf("  Manifest:    %s (%s)\n", manifest.FileName, formatBytes(int64(len(data))))
	fmt.Println()
}

func detectMethods(m *manifest.Manifest) []string {
	set := map[dither.Method]bool{}
	for _, a := range m.Assets {
		for _, v := range a.Variants {
			set[v.Method] = true
		}
	}
	var out []string
	for _, method := range dither.Methods() {
		if set[method] {
			out = append(out, method.String())
		}
	}
	return out
}

func detectOutputFormats(m *manifest.Manifest) []string {
	set := map[string]bool{}
	for _, a := range m.Assets {
		for _, v := range a.Variants {
			set[v.Format] = true
		}
	}
	var out []string
	for _, f := range outputFormats {
		if set[f] {
			out = append(out, f)
		}
	}
	return out
}

// outputFormats is the display order of encoder formats.
var outputFormats = []string{"png", "webp", "jpeg"}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
