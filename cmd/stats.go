package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/monodither/internal/dither"
	"github.com/AnyUserName/monodither/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a built output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path, err := manifestPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}
	printStats(m)
	return nil
}

// manifestPath accepts either a manifest file or the directory holding one.
func manifestPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return filepath.Join(path, manifest.FileName), nil
	}
	return path, nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
		if m.BuildInfo.Seed != 0 {
			fmt.Printf("  Seed:             %d\n", m.BuildInfo.Seed)
		}
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total assets:     %d\n", s.TotalAssets)
	fmt.Printf("  Total variants:   %d\n", s.TotalVariants)
	if s.Failed > 0 {
		fmt.Printf("  Failed sources:   %d\n", s.Failed)
	}
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	fmt.Println()

	type agg struct {
		count int
		bytes int64
		white float64
	}

	formatStats := map[string]agg{}
	methodStats := map[dither.Method]agg{}
	for _, a := range m.Assets {
		for _, v := range a.Variants {
			fs := formatStats[v.Format]
			fs.count++
			fs.bytes += v.Size
			formatStats[v.Format] = fs

			ms := methodStats[v.Method]
			ms.count++
			ms.bytes += v.Size
			ms.white += v.WhiteRatio
			methodStats[v.Method] = ms
		}
	}

	fmt.Println("  Format breakdown:")
	for _, f := range outputFormats {
		if fs, ok := formatStats[f]; ok {
			fmt.Printf("    %-6s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
		}
	}
	fmt.Println()

	fmt.Println("  Method breakdown (files, size, mean white ratio):")
	for _, method := range dither.Methods() {
		if ms, ok := methodStats[method]; ok {
			fmt.Printf("    %-16s %4d  %9s  %5.3f\n",
				method, ms.count, formatBytes(ms.bytes), ms.white/float64(ms.count))
		}
	}
	fmt.Println()

	var warnings []string
	for key, a := range m.Assets {
		if len(a.Variants) == 0 {
			warnings = append(warnings, fmt.Sprintf("asset %q has no variants", key))
		}
		for _, v := range a.Variants {
			if v.Method.Binary() && (v.WhiteRatio == 0 || v.WhiteRatio == 1) && a.MeanLuminance > 0.05 && a.MeanLuminance < 0.95 {
				warnings = append(warnings, fmt.Sprintf("asset %q: %s output is a single colour", key, v.Method))
			}
		}
	}
	if len(warnings) > 0 {
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
		fmt.Println()
	}
}
