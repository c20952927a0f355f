// Package cli implements the statement-converter command line.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-converter/internal/config"
	"github.com/insightdelivered/statement-converter/internal/logger"
)

// Version is set at build time with -ldflags.
var Version = "dev"

type rootFlags struct {
	logLevel  string
	logFormat string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "statement-converter",
		Short: "Checking account statement PDF to Excel/CSV converter",
		Long: `Converts checking account statement PDFs into spreadsheets.

Account details, deposits, ATM withdrawals, checks paid and card purchases
are read from the statement text and written as an Excel workbook with one
sheet per category plus a combined view, or as CSV.

Configuration is read from the environment and an optional .env file
(LOG_LEVEL, LOG_FORMAT, CONVERT_WORKERS, DEFAULT_CSV_LAYOUT, HTTP_PORT).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format (json, console); overrides LOG_FORMAT")

	rootCmd.AddCommand(
		newConvertCommand(flags),
		newParseCommand(flags),
		newServeCommand(flags),
		newVersionCommand(),
	)
	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "statement-converter v%s\n", Version)
		},
	}
}

// setup loads configuration and builds the logger. Logs go to the
// command's stderr so stdout only carries command output.
func (f *rootFlags) setup(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.logFormat != "" {
		cfg.LogFormat = f.logFormat
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	return cfg, log, nil
}
