package cmd

import (
	"fmt"
	"io"

	"github.com/AnyUserName/monodither/internal/dither"
	"github.com/spf13/cobra"
)

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List dithering methods and their numeric tags",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		printMethods(cmd.OutOrStdout())
	},
}

var methodDescriptions = map[dither.Method]string{
	dither.Grayscale:      "linear luminance, no thresholding",
	dither.Quantise:       "threshold at mid-gray",
	dither.WhiteNoise:     "threshold against uniform random noise",
	dither.Bayer0:         "ordered, 2x2 matrix",
	dither.Bayer1:         "ordered, 4x4 matrix",
	dither.Bayer2:         "ordered, 8x8 matrix",
	dither.Bayer3:         "ordered, 16x16 matrix",
	dither.FloydSteinberg: "error diffusion",
}

func init() {
	rootCmd.AddCommand(methodsCmd)
}

func printMethods(w io.Writer) {
	for _, m := range dither.Methods() {
		fmt.Fprintf(w, "  %d  %-16s %s\n", uint8(m), m, methodDescriptions[m])
	}
}
