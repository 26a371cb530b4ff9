package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ipedro/lcovify/internal/config"
	"github.com/ipedro/lcovify/internal/convert"
	"github.com/ipedro/lcovify/internal/logger"
)

// NewLcovifyCommand creates the root command for the lcovify tool.
func NewLcovifyCommand() *cobra.Command {
	var (
		format   string
		logLevel string
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "lcovify <input> <output>",
		Short: "Convert native coverage reports to LCOV tracefiles.",
		Long: `Lcovify converts coverage reports produced by native tooling into the
LCOV tracefile format understood by genhtml, coverage aggregators and
CI services.

Supported input formats:
  xccov    Xcode coverage JSON (xcrun xccov view --report --json), the default
  gocover  Go coverage profiles (go test -coverprofile)

Flag defaults may be set in lcovify.yaml, looked up in the working
directory, ./configs and $HOME/.config/lcovify:

  convert:
    format: "xccov"
    log_level: "info"
    color: true

Examples:
  # Convert an Xcode coverage report
  xcrun xccov view --report --json Result.xcresult > coverage.json
  lcovify coverage.json coverage.lcov

  # Convert a Go coverage profile
  lcovify --format gocover cover.out coverage.lcov

  # Verbose conversion without colors
  lcovify --log-level debug --no-color coverage.json coverage.lcov`,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Argument errors above have already printed usage;
			// failures from here on must not.
			cmd.SilenceUsage = true

			// 1. Load configuration defaults.
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// 2. Apply flag overrides.
			if format == "" {
				format = cfg.Convert.Format
			}
			if logLevel == "" {
				logLevel = cfg.Convert.LogLevel
			}

			logger.Init(logLevel)
			logger.SetLevel(logLevel)
			logger.SetColorEnable(cfg.Convert.Color && !noColor)

			// 3. Convert.
			input, output := args[0], args[1]
			if err := convert.File(format, input, output); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Converted %s to %s\n", input, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format (default from config, else xccov)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (default from config, else info)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable ANSI colors in log output")

	return cmd
}
