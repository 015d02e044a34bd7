// Package cmd provides CLI commands for reconciler.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"payment-reconciliation/internal/config"
	"payment-reconciliation/internal/fieldmap"
	"payment-reconciliation/internal/usecase"
)

// Process exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitEmptyLedger = 2
)

var (
	cfgFile   string
	debug     bool
	aliasFile string

	cfg *config.Config
)

// errEmptyLedger marks a run that stopped because no ledger movements were available.
var errEmptyLedger = errors.New("empty ledger")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "reconciler",
	Short: "Reconcile reported payments against the internal ledger",
	Long: `reconciler checks externally reported payments against the company ledger.

It supports:
- Ingesting the semicolon-delimited collections export (latin1 or utf-8)
- Reading payment uploads from .xlsx or .csv files
- Matching by amount (R$ 0.01 tolerance) and date, flagging date divergences
- Loading a JSON ledger extract into a SQLite store

Example:
  reconciler ingest --file cobranca.txt
  reconciler load-ledger --json extract.json --ledger-db ledger.db
  reconciler reconcile --upload pagamentos.xlsx --ledger-db ledger.db --from 2024-01-01 --to 2024-01-31`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		// Setup logging
		logLevel := slog.LevelInfo
		if debug || cfg.Debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
		return nil
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errEmptyLedger):
		return exitEmptyLedger
	default:
		slog.Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&aliasFile, "aliases", "", "YAML file overriding the header alias tables (default $RECON_ALIAS_FILE)")

	// Add subcommands
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(loadLedgerCmd)
}

// useCaseOptions builds the options shared by every command.
func useCaseOptions() ([]usecase.Option, error) {
	opts := []usecase.Option{usecase.WithLogger(slog.Default())}

	path := aliasFile
	if path == "" {
		path = cfg.AliasFile
	}
	if path == "" {
		return opts, nil
	}

	tables, err := fieldmap.LoadAliasFile(path, fieldmap.DefaultTables())
	if err != nil {
		return nil, fmt.Errorf("failed to load alias file: %w", err)
	}
	slog.Debug("Loaded alias tables", "path", path)
	return append(opts, usecase.WithTables(tables)), nil
}
