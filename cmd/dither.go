package cmd

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/monodither/internal/config"
	"github.com/AnyUserName/monodither/internal/dither"
	"github.com/AnyUserName/monodither/internal/encoder"
	"github.com/AnyUserName/monodither/internal/imageio"
	"github.com/AnyUserName/monodither/internal/logging"
	"github.com/AnyUserName/monodither/internal/rawio"
	"github.com/spf13/cobra"
)

var (
	ditherMethod  string
	ditherOut     string
	ditherFormat  string
	ditherQuality int
	ditherSeed    uint64
)

var ditherCmd = &cobra.Command{
	Use:   "dither <input>",
	Short: "Dither a single image file",
	Long: `Decodes an image (png, jpeg, gif, webp, bmp, tiff), dithers it with
the chosen method and writes the result.

Without --out the output is written next to the input as
<name>.<method>.<ext>. Use "-" to write to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runDither,
}

func init() {
	ditherCmd.Flags().StringVarP(&ditherMethod, "method", "m", dither.FloydSteinberg.String(), "dithering method (see `monodither methods`)")
	ditherCmd.Flags().StringVarP(&ditherOut, "out", "o", "", "output path, - for stdout")
	ditherCmd.Flags().StringVarP(&ditherFormat, "format", "f", "png", "output format: png, webp, jpeg")
	ditherCmd.Flags().IntVarP(&ditherQuality, "quality", "q", 0, "quality 1-100 for lossy formats (0 = default)")
	ditherCmd.Flags().Uint64Var(&ditherSeed, "seed", 0, "seed for white-noise (0 = system entropy)")
	rootCmd.AddCommand(ditherCmd)
}

func runDither(cmd *cobra.Command, args []string) error {
	input := args[0]
	stringFromEnv(cmd, "method", config.EnvMethod, &ditherMethod)

	m, err := dither.ParseMethod(ditherMethod)
	if err != nil {
		return err
	}

	reg := encoder.NewRegistry()
	logging.WithComponent(baseLogger, logging.ComponentEncoder).Debug(reg.String())
	enc := reg.Get(ditherFormat)
	if enc == nil {
		return fmt.Errorf("output format %q unavailable (%s)", ditherFormat, reg)
	}

	img, format, err := imageio.Open(input)
	if err != nil {
		return fmt.Errorf("decode %s: %w", input, err)
	}
	logger.Debug("decoded", "path", input, "format", format,
		"width", img.Rect.Dx(), "height", img.Rect.Dy())

	out, err := imageio.Dither(img, m, seededRand(ditherSeed))
	if err != nil {
		return fmt.Errorf("dither %s: %w", input, err)
	}

	data, err := enc.Encode(out, ditherQuality)
	if err != nil {
		return fmt.Errorf("encode %s: %w", enc.Format(), err)
	}

	outPath := ditherOut
	if outPath == "" {
		outPath = siblingPath(input, m, enc.Extension())
	}
	if err := rawio.WriteFile(outPath, data); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	if outPath != rawio.Stdio {
		logger.Info("wrote", "path", outPath, "method", m, "format", enc.Format(), "size", formatBytes(int64(len(data))))
	}
	return nil
}

// seededRand returns nil for seed 0 so the engine draws from entropy.
func seededRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return dither.NewSeededRand(seed)
}

// siblingPath names the default output of dithering input with m.
func siblingPath(input string, m dither.Method, ext string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return fmt.Sprintf("%s.%s.%s", base, m, ext)
}
