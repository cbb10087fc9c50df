package cmd

import (
	"fmt"

	"github.com/AnyUserName/monodither/internal/config"
	"github.com/AnyUserName/monodither/internal/dither"
	"github.com/AnyUserName/monodither/internal/rawio"
	"github.com/spf13/cobra"
)

var (
	rawWidth  int
	rawMethod string
	rawSeed   uint64
)

var rawCmd = &cobra.Command{
	Use:   "raw <in> <out>",
	Short: "Dither a packed RGBA buffer",
	Long: `Reads a headerless buffer of 8-bit RGBA pixels in row-major order,
dithers it and writes a buffer of the same length.

Either path may be "-" for stdin/stdout. Paths ending in .zst are
read and written zstd-compressed.`,
	Args: cobra.ExactArgs(2),
	RunE: runRaw,
}

func init() {
	rawCmd.Flags().IntVar(&rawWidth, "width", 0, "image width in pixels")
	rawCmd.Flags().StringVarP(&rawMethod, "method", "m", dither.FloydSteinberg.String(), "dithering method name or tag 0-7")
	rawCmd.Flags().Uint64Var(&rawSeed, "seed", 0, "seed for white-noise (0 = system entropy)")
	rawCmd.MarkFlagRequired("width")
	rootCmd.AddCommand(rawCmd)
}

func runRaw(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	stringFromEnv(cmd, "method", config.EnvMethod, &rawMethod)

	m, err := dither.ParseMethod(rawMethod)
	if err != nil {
		return err
	}

	buf, err := rawio.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read %s: %w", in, err)
	}
	if err := dither.ValidateShape(len(buf), rawWidth); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	logger.Debug("read raw buffer", "path", in, "bytes", len(buf),
		"width", rawWidth, "height", len(buf)/(4*rawWidth), "method", m)

	result, err := dither.Transform(buf, rawWidth, m, seededRand(rawSeed))
	if err != nil {
		return err
	}
	if err := rawio.WriteFile(out, result); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}
