package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AnyUserName/monodither/internal/dither"
	"github.com/spf13/cobra"
)

// maxPrintOrder bounds the matrices printed to a terminal (64×64).
const maxPrintOrder = 5

var bayerThresholds bool

var bayerCmd = &cobra.Command{
	Use:   "bayer <n>",
	Short: "Print the order-n Bayer threshold matrix",
	Long: `Prints the 2^(n+1) square Bayer matrix used by ordered dithering.
Rows are indexed by x and columns by y, matching how the matrix is
applied to images.`,
	Args: cobra.ExactArgs(1),
	RunE: runBayer,
}

func init() {
	bayerCmd.Flags().BoolVarP(&bayerThresholds, "thresholds", "t", false, "print normalised thresholds in [0,1) instead of ranks")
	rootCmd.AddCommand(bayerCmd)
}

func runBayer(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n > maxPrintOrder {
		return fmt.Errorf("order must be an integer in 0..%d, got %q", maxPrintOrder, args[0])
	}
	fmt.Fprint(cmd.OutOrStdout(), formatBayer(n, bayerThresholds))
	return nil
}

func formatBayer(n int, thresholds bool) string {
	size := dither.BayerSize(n)
	matrix := dither.BayerMatrix(n)
	cells := size * size
	width := len(strconv.Itoa(cells - 1))

	var b strings.Builder
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			v := matrix[row*size+col]
			if thresholds {
				fmt.Fprintf(&b, "%.4f", float64(v)/float64(cells))
			} else {
				fmt.Fprintf(&b, "%*d", width, v)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
