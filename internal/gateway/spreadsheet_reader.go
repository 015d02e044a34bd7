package gateway

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"payment-reconciliation/internal/domain"
	"payment-reconciliation/internal/extract"
)

// SpreadsheetReader turns an uploaded payment sheet into rows of cells.
// Workbook cells holding numbers (including date serials) come back as float64, everything else as string.
type SpreadsheetReader struct {
	sheet string
}

// NewSpreadsheetReader creates a reader. An empty sheet name selects the first sheet of a workbook.
func NewSpreadsheetReader(sheet string) *SpreadsheetReader {
	return &SpreadsheetReader{sheet: sheet}
}

// ReadRows reads every row of the upload, header included.
func (r *SpreadsheetReader) ReadRows(ctx context.Context, path string) ([]domain.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return r.readWorkbook(path)
	case ".csv", ".txt":
		return readDelimited(path)
	default:
		return nil, &domain.StructuralParseError{
			Source: path,
			Reason: fmt.Sprintf("unsupported upload format %q", filepath.Ext(path)),
		}
	}
}

func (r *SpreadsheetReader) readWorkbook(path string) ([]domain.Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &domain.StructuralParseError{Source: path, Reason: "workbook has no sheets"}
		}
		sheet = sheets[0]
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, path, err)
	}

	rows := make([]domain.Row, 0, len(raw))
	for y, cells := range raw {
		row := make(domain.Row, len(cells))
		for x, value := range cells {
			row[x], err = typedCell(f, sheet, x+1, y+1, value)
			if err != nil {
				return nil, fmt.Errorf("failed to read cell of %s: %w", path, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// typedCell keeps numeric cells as float64 so amounts and date serials skip text normalization.
func typedCell(f *excelize.File, sheet string, col, line int, value string) (any, error) {
	if value == "" {
		return "", nil
	}
	axis, err := excelize.CoordinatesToCellName(col, line)
	if err != nil {
		return nil, err
	}
	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return nil, err
	}

	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate:
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			return n, nil
		}
	}
	return value, nil
}

func readDelimited(path string) ([]domain.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", path, err)
	}
	text := string(data)
	return extract.SplitDelimited(path, text, extract.SniffDelimiter(text))
}
