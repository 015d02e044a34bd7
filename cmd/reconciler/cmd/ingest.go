package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"payment-reconciliation/internal/gateway"
	"payment-reconciliation/internal/usecase"
)

var (
	exportFile string
	encoding   string
)

// ingestCmd represents the ingest command.
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Parse the collections text export",
	Long: `Parse the semicolon-delimited collections export into ledger entries.

The result is printed as a JSON envelope with the entries and ingestion
statistics (record count, skipped rows by reason, total amount, run id).

Example:
  reconciler ingest --file cobranca.txt --encoding latin1`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&exportFile, "file", "", "path to the collections export (required)")
	ingestCmd.Flags().StringVar(&encoding, "encoding", "", "export encoding: latin1 or utf-8 (default $RECON_LEDGER_ENCODING)")
	_ = ingestCmd.MarkFlagRequired("file")
}

func runIngest(cmd *cobra.Command, args []string) error {
	enc := encoding
	if enc == "" {
		enc = cfg.Ledger.Encoding
	}

	reader, err := gateway.NewFileReader(enc)
	if err != nil {
		return err
	}

	opts, err := useCaseOptions()
	if err != nil {
		return err
	}
	uc := usecase.NewReconciliationUseCase(reader, nil, nil, opts...)

	slog.Debug("Ingesting ledger export", "file", exportFile, "encoding", enc)
	result, err := uc.ImportLedgerExport(cmd.Context(), exportFile)
	if err != nil {
		return err
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate JSON output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(output))

	if !result.Success {
		return errors.New(result.Error)
	}
	return nil
}
