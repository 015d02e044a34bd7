package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"payment-reconciliation/internal/domain"
	"payment-reconciliation/internal/gateway"
)

var loadJSON string

// loadLedgerCmd represents the load-ledger command.
var loadLedgerCmd = &cobra.Command{
	Use:   "load-ledger",
	Short: "Load a JSON ledger extract into the SQLite ledger store",
	Long: `Append the movements of a JSON ledger extract to the SQLite ledger store
used by "reconcile --ledger-db".

Example:
  reconciler load-ledger --json extract.json --ledger-db ledger.db`,
	RunE: runLoadLedger,
}

func init() {
	loadLedgerCmd.Flags().StringVar(&loadJSON, "json", "", "path to the JSON ledger extract (required)")
	loadLedgerCmd.Flags().StringVar(&ledgerDB, "ledger-db", "", "SQLite ledger store (default $RECON_LEDGER_DB)")
	_ = loadLedgerCmd.MarkFlagRequired("json")
}

func runLoadLedger(cmd *cobra.Command, args []string) error {
	if ledgerDB != "" {
		cfg.Ledger.DBPath = ledgerDB
	}
	if err := cfg.Validate("ledger.dbPath", "ledger.table"); err != nil {
		return err
	}

	movements, err := gateway.NewJSONLedgerRepository(loadJSON).GetLedgerMovements(cmd.Context(), domain.Period{})
	if err != nil {
		return err
	}

	slog.Debug("Opening database", "path", cfg.Ledger.DBPath)
	store, err := gateway.OpenSQLiteLedger(cfg.Ledger.DBPath, cfg.Ledger.Table)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveLedgerMovements(cmd.Context(), movements); err != nil {
		return err
	}

	slog.Info("Ledger extract loaded", "movements", len(movements), "db", cfg.Ledger.DBPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d ledger movements into %s\n", len(movements), cfg.Ledger.DBPath)
	return nil
}
