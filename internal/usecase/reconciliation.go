package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"payment-reconciliation/internal/domain"
	"payment-reconciliation/internal/extract"
	"payment-reconciliation/internal/fieldmap"
	"payment-reconciliation/internal/matcher"
	"payment-reconciliation/internal/observe"
	"payment-reconciliation/internal/report"
)

// Option configures a ReconciliationUseCase.
type Option func(*ReconciliationUseCase)

// WithTables replaces the built-in header alias tables.
func WithTables(t fieldmap.Tables) Option {
	return func(uc *ReconciliationUseCase) { uc.tables = t }
}

// WithLogger sets the logger; row and match events are reported through it at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(uc *ReconciliationUseCase) { uc.logger = l }
}

// WithObserver receives row, field and match events instead of the logger.
func WithObserver(o observe.Observer) Option {
	return func(uc *ReconciliationUseCase) { uc.obs = o }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(uc *ReconciliationUseCase) { uc.now = now }
}

// WithRunID overrides the run identifier generator.
func WithRunID(newID func() string) Option {
	return func(uc *ReconciliationUseCase) { uc.newID = newID }
}

// ReconciliationUseCase orchestrates ingestion and reconciliation.
type ReconciliationUseCase struct {
	exports LedgerExportReader
	uploads UploadReader
	ledger  LedgerRepository

	tables fieldmap.Tables
	logger *slog.Logger
	obs    observe.Observer
	now    func() time.Time
	newID  func() string
}

// NewReconciliationUseCase creates a new instance of the usecase. Collaborators a command does
// not need may be nil.
func NewReconciliationUseCase(exports LedgerExportReader, uploads UploadReader, ledger LedgerRepository, opts ...Option) *ReconciliationUseCase {
	uc := &ReconciliationUseCase{
		exports: exports,
		uploads: uploads,
		ledger:  ledger,
		tables:  fieldmap.DefaultTables(),
		logger:  slog.Default(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ImportLedgerExport reads and parses the collections text export. Parse failures are reported in
// the envelope; the error return is reserved for failures reading the file.
func (uc *ReconciliationUseCase) ImportLedgerExport(ctx context.Context, path string) (domain.ExportResult, error) {
	table, err := uc.tables.Get(fieldmap.LedgerExportTable)
	if err != nil {
		return domain.ExportResult{}, err
	}

	text, err := uc.exports.ReadLedgerExport(ctx, path)
	if err != nil {
		return domain.ExportResult{}, fmt.Errorf("could not read ledger export: %w", err)
	}

	result := extract.ParseLedgerExport(path, text, table, uc.extractOptions()...)
	if result.Success {
		uc.logger.Info("ledger export ingested",
			"file", path,
			"run_id", result.Stats.RunID,
			"records", result.Stats.RecordCount,
			"resolved_by", result.Stats.ResolvedBy,
			"total", result.Stats.TotalAmount.StringFixed(2))
	} else {
		uc.logger.Warn("ledger export rejected", "file", path, "error", result.Error)
	}
	return result, nil
}

// Reconcile matches the records of an uploaded payment sheet against the ledger movements of the
// period. domain.ErrEmptyLedger is returned as is when the period has no ledger movements.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, uploadPath string, period domain.Period) (*domain.ReconciliationResult, error) {
	table, err := uc.tables.Get(fieldmap.PaymentUploadTable)
	if err != nil {
		return nil, err
	}

	// Step 1: Data Ingestion
	rows, err := uc.uploads.ReadRows(ctx, uploadPath)
	if err != nil {
		return nil, fmt.Errorf("could not read upload: %w", err)
	}
	records, skipped, err := extract.ImportUpload(uploadPath, rows, table, uc.extractOptions()...)
	if err != nil {
		return nil, err
	}

	movements, err := uc.ledger.GetLedgerMovements(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("could not get ledger movements: %w", err)
	}
	entries := extract.LedgerEntriesFromMovements(movements)

	// Step 2: Matching
	matchReport, err := matcher.New(matcher.WithObserver(uc.observer())).Match(records, entries)
	if err != nil {
		return nil, err
	}

	// Step 3: Summary
	result := &domain.ReconciliationResult{
		RunID:         uc.newID(),
		GeneratedAt:   uc.now().UTC(),
		Upload:        uploadPath,
		LedgerEntries: len(entries),
		Skipped:       skipped,
		Report:        matchReport,
		Summary:       report.Summarize(matchReport),
	}
	uc.logger.Info("reconciliation finished",
		"run_id", result.RunID,
		"imported", result.Summary.TotalImported,
		"matched", result.Summary.Matched.Count,
		"divergent", result.Summary.Divergent.Count,
		"unmatched", result.Summary.Unmatched.Count,
		"ties", len(result.Summary.Ties))
	return result, nil
}

func (uc *ReconciliationUseCase) observer() observe.Observer {
	if uc.obs != nil {
		return uc.obs
	}
	return observe.NewSlog(uc.logger)
}

func (uc *ReconciliationUseCase) extractOptions() []extract.Option {
	return []extract.Option{
		extract.WithObserver(uc.observer()),
		extract.WithClock(uc.now),
		extract.WithRunID(uc.newID),
	}
}
