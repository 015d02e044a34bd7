package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"payment-reconciliation/internal/domain"
	"payment-reconciliation/internal/gateway"
	"payment-reconciliation/internal/usecase"
)

var (
	uploadFile string
	ledgerDB   string
	ledgerJSON string
	sheet      string
	fromDate   string
	toDate     string
	output     string
)

// reconcileCmd represents the reconcile command.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Match an uploaded payment sheet against the ledger",
	Long: `Match every record of a payment upload against the ledger movements.

Each record ends up Matched (same amount and date), Divergent (same amount,
different date) or Unmatched. Records whose ledger counterpart was picked
among several equal candidates are listed as ties for manual review.

Exits with status 2 when the ledger has no movements for the period.

Example:
  reconciler reconcile --upload pagamentos.xlsx --ledger-db ledger.db --from 2024-01-01 --to 2024-01-31
  reconciler reconcile --upload pagamentos.csv --ledger-json extract.json --output json`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&uploadFile, "upload", "", "payment upload, .xlsx or .csv (required)")
	reconcileCmd.Flags().StringVar(&ledgerDB, "ledger-db", "", "SQLite ledger store (default $RECON_LEDGER_DB)")
	reconcileCmd.Flags().StringVar(&ledgerJSON, "ledger-json", "", "JSON ledger extract")
	reconcileCmd.Flags().StringVar(&sheet, "sheet", "", "workbook sheet (default $RECON_SHEET, then the first sheet)")
	reconcileCmd.Flags().StringVar(&fromDate, "from", "", "first movement date, YYYY-MM-DD")
	reconcileCmd.Flags().StringVar(&toDate, "to", "", "last movement date, YYYY-MM-DD")
	reconcileCmd.Flags().StringVar(&output, "output", "", "output format: table or json (default $RECON_OUTPUT)")
	_ = reconcileCmd.MarkFlagRequired("upload")
	reconcileCmd.MarkFlagsMutuallyExclusive("ledger-db", "ledger-json")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	period, err := parsePeriod(fromDate, toDate)
	if err != nil {
		return err
	}

	format := output
	if format == "" {
		format = cfg.Output
	}
	if format != "table" && format != "json" {
		return fmt.Errorf("invalid output format %q", format)
	}

	ledger, closeLedger, err := openLedger()
	if err != nil {
		return err
	}
	defer closeLedger()

	if sheet == "" {
		sheet = cfg.Upload.Sheet
	}

	opts, err := useCaseOptions()
	if err != nil {
		return err
	}
	uc := usecase.NewReconciliationUseCase(nil, gateway.NewSpreadsheetReader(sheet), ledger, opts...)

	slog.Debug("Reconciling", "upload", uploadFile, "from", period.From.String(), "to", period.To.String())
	result, err := uc.Reconcile(cmd.Context(), uploadFile, period)
	if errors.Is(err, domain.ErrEmptyLedger) {
		fmt.Fprintln(cmd.ErrOrStderr(), emptyLedgerPrompt)
		return errEmptyLedger
	}
	if err != nil {
		return err
	}

	if format == "json" {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to generate JSON report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}
	renderResult(cmd.OutOrStdout(), result)
	return nil
}

const emptyLedgerPrompt = `No ledger movements are available for this period.
Fetch the ledger extract first, for example:
  reconciler load-ledger --json extract.json --ledger-db ledger.db`

// openLedger picks the JSON extract when given, the SQLite store otherwise.
func openLedger() (usecase.LedgerRepository, func(), error) {
	if ledgerJSON != "" {
		return gateway.NewJSONLedgerRepository(ledgerJSON), func() {}, nil
	}

	if ledgerDB != "" {
		cfg.Ledger.DBPath = ledgerDB
	}
	if err := cfg.Validate("ledger.dbPath", "ledger.table"); err != nil {
		return nil, nil, err
	}

	slog.Debug("Opening database", "path", cfg.Ledger.DBPath)
	store, err := gateway.OpenSQLiteLedger(cfg.Ledger.DBPath, cfg.Ledger.Table)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

func parsePeriod(from, to string) (domain.Period, error) {
	var p domain.Period
	for _, b := range []struct {
		name  string
		value string
		dst   *domain.LocalDate
	}{
		{"from", from, &p.From},
		{"to", to, &p.To},
	} {
		if b.value == "" {
			continue
		}
		t, err := time.Parse(time.DateOnly, b.value)
		if err != nil {
			return domain.Period{}, fmt.Errorf("invalid --%s date %q: %w", b.name, b.value, err)
		}
		*b.dst = domain.DateOf(t)
	}

	if !p.From.IsAbsent() && !p.To.IsAbsent() && p.To.Before(p.From) {
		return domain.Period{}, fmt.Errorf("--to %s is before --from %s", p.To, p.From)
	}
	return p, nil
}
