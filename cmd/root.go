package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/AnyUserName/monodither/internal/config"
	"github.com/AnyUserName/monodither/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool

	// baseLogger is handed to library packages; logger is the CLI's own.
	baseLogger = logging.Discard()
	logger     = baseLogger
)

var rootCmd = &cobra.Command{
	Use:   "monodither",
	Short: "Turn RGBA images into 1-bit monochrome",
	Long: `monodither converts colour images to black and white using
perceptual luminance and one of several dithering strategies:
plain thresholding, white noise, ordered Bayer matrices or
Floyd-Steinberg error diffusion.

Flags default from MONODITHER_* environment variables (or a .env file).`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if !cmd.Flags().Changed("verbose") {
			verbose = config.GetBool(config.EnvVerbose, verbose)
		}
		baseLogger = logging.New(os.Stderr, verbose)
		logger = logging.WithComponent(baseLogger, logging.ComponentCLI)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"monodither %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// stringFromEnv replaces *dst with the value of key unless the flag was
// set on the command line.
func stringFromEnv(cmd *cobra.Command, flag, key string, dst *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v := config.Get(key, *dst); v != *dst {
		configLog().Debug("flag from environment", "flag", flag, "key", key, "value", v)
		*dst = v
	}
}

// intFromEnv is stringFromEnv for integer flags.
func intFromEnv(cmd *cobra.Command, flag, key string, dst *int) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v := config.GetInt(key, *dst); v != *dst {
		configLog().Debug("flag from environment", "flag", flag, "key", key, "value", v)
		*dst = v
	}
}

func configLog() *slog.Logger {
	return logging.WithComponent(baseLogger, logging.ComponentConfig)
}
