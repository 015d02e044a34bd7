package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"payment-reconciliation/internal/domain"
	"payment-reconciliation/internal/normalize"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteLedgerRepository serves the ledger extract from a SQLite file.
//
// movement_time is stored as ISO-8601 text ("2024-01-15" or "2024-01-15T10:00:00"), which lets the
// period filter compare the date portion as text.
type SQLiteLedgerRepository struct {
	db    *sql.DB
	table string
}

// OpenSQLiteLedger opens (or creates) the ledger database and makes sure the movements table exists.
func OpenSQLiteLedger(dbPath, table string) (*SQLiteLedgerRepository, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid ledger table name %q", table)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &SQLiteLedgerRepository{db: db, table: table}
	if err := repo.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return repo, nil
}

func (r *SQLiteLedgerRepository) initSchema() error {
	_, err := r.db.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		account TEXT NOT NULL,
		movement_time TEXT NOT NULL,
		operation_code TEXT,
		amount NUMERIC,
		settlement_date TEXT,
		description TEXT
	)`, r.table))
	return err
}

// Close closes the database connection.
func (r *SQLiteLedgerRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// GetLedgerMovements returns the movements of the period in insertion order.
func (r *SQLiteLedgerRepository) GetLedgerMovements(ctx context.Context, period domain.Period) ([]domain.LedgerMovement, error) {
	query := fmt.Sprintf(`SELECT account, movement_time, operation_code, amount, settlement_date, description FROM %s`, r.table)
	var (
		where []string
		args  []any
	)
	if !period.From.IsAbsent() {
		where = append(where, "substr(movement_time, 1, 10) >= ?")
		args = append(args, period.From.String())
	}
	if !period.To.IsAbsent() {
		where = append(where, "substr(movement_time, 1, 10) <= ?")
		args = append(args, period.To.String())
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger movements: %w", err)
	}
	defer rows.Close()

	var movements []domain.LedgerMovement
	for rows.Next() {
		var (
			m                             domain.LedgerMovement
			code, settlement, description sql.NullString
			amount                        any
		)
		if err := rows.Scan(&m.Account, &m.MovementTime, &code, &amount, &settlement, &description); err != nil {
			return nil, fmt.Errorf("failed to scan ledger movement: %w", err)
		}
		if b, ok := amount.([]byte); ok {
			amount = string(b)
		}
		m.OperationCode = code.String
		m.Amount = amount
		m.SettlementDate = settlement.String
		m.Description = description.String
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger movements: %w", err)
	}
	return movements, nil
}

// SaveLedgerMovements appends movements in one transaction. Movement times are stored in
// ISO form so the period filter can compare their date prefix.
func (r *SQLiteLedgerRepository) SaveLedgerMovements(ctx context.Context, movements []domain.LedgerMovement) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (account, movement_time, operation_code, amount, settlement_date, description) VALUES (?, ?, ?, ?, ?, ?)`,
		r.table))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range movements {
		if _, err := stmt.ExecContext(ctx, m.Account, isoMovementTime(m.MovementTime), m.OperationCode, m.Amount, m.SettlementDate, m.Description); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert movement for account %s: %w", m.Account, err)
		}
	}
	return tx.Commit()
}

// isoMovementTime rewrites "DD/MM/YYYY[ hh:mm[:ss]]" as "YYYY-MM-DDThh:mm[:ss]". ISO input and
// text that is not a date are kept verbatim.
func isoMovementTime(raw string) string {
	s := strings.TrimSpace(raw)
	date := normalize.ParseLocalDate(s)
	if date.IsAbsent() || strings.HasPrefix(s, date.String()) {
		return raw
	}
	_, clock, ok := strings.Cut(s, " ")
	if clock = strings.TrimSpace(clock); !ok || clock == "" {
		return date.String()
	}
	return date.String() + "T" + clock
}
