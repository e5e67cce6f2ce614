package validate

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tradevision/pnl-analyzer/internal/domain"
	"github.com/tradevision/pnl-analyzer/internal/ingestion"
)

const (
	ColumnDate  = "Date"
	ColumnAsset = "Asset"
	ColumnPnL   = "PnL"
)

// columnAliases maps alternative export headers onto the canonical columns.
// The French names come from the broker exports this tool was first built
// around.
var columnAliases = map[string]string{
	"Heure":       ColumnDate,
	"Paire de cc": ColumnAsset,
	"Montant":     ColumnPnL,
}

// dateLayouts are tried in order; the first match wins. Time-of-day, when
// present, is discarded after parsing.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// Validator converts raw tables into typed trade records. Validation is
// all-or-nothing per file: the first bad cell rejects the whole import and
// no partial record set is produced.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate resolves the required columns in the table header and types every
// row. A missing required column yields *domain.SchemaError; an unparseable
// cell yields *domain.DataTypeError with its file row and column. A table
// with zero data rows is valid and yields an empty record set.
func (v *Validator) Validate(table *ingestion.Table) ([]domain.TradeRecord, error) {
	idx, err := resolveColumns(table.Header)
	if err != nil {
		return nil, err
	}

	records := make([]domain.TradeRecord, 0, len(table.Rows))

	for i, row := range table.Rows {
		// Header is file row 1, so the first data row is row 2.
		fileRow := i + 2

		record, err := v.validateRow(row, idx, fileRow)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, nil
}

type columnIndex struct {
	date  int
	asset int
	pnl   int
}

func resolveColumns(header []string) (*columnIndex, error) {
	idx := &columnIndex{date: -1, asset: -1, pnl: -1}

	for i, name := range header {
		name = strings.TrimSpace(name)
		if canonical, ok := columnAliases[name]; ok {
			name = canonical
		}

		switch name {
		case ColumnDate:
			if idx.date == -1 {
				idx.date = i
			}
		case ColumnAsset:
			if idx.asset == -1 {
				idx.asset = i
			}
		case ColumnPnL:
			if idx.pnl == -1 {
				idx.pnl = i
			}
		}
	}

	switch {
	case idx.date == -1:
		return nil, &domain.SchemaError{Column: ColumnDate}
	case idx.asset == -1:
		return nil, &domain.SchemaError{Column: ColumnAsset}
	case idx.pnl == -1:
		return nil, &domain.SchemaError{Column: ColumnPnL}
	}

	return idx, nil
}

func (v *Validator) validateRow(row []string, idx *columnIndex, fileRow int) (*domain.TradeRecord, error) {
	date, err := parseCell(row, idx.date, ColumnDate, fileRow, parseDate)
	if err != nil {
		return nil, err
	}

	asset, err := parseCell(row, idx.asset, ColumnAsset, fileRow, parseAsset)
	if err != nil {
		return nil, err
	}

	pnl, err := parseCell(row, idx.pnl, ColumnPnL, fileRow, decimal.NewFromString)
	if err != nil {
		return nil, err
	}

	return &domain.TradeRecord{
		Date:  date,
		Asset: asset,
		PnL:   pnl,
	}, nil
}

func parseCell[T any](row []string, col int, name string, fileRow int, parse func(string) (T, error)) (T, error) {
	var zero T

	if col >= len(row) {
		return zero, &domain.DataTypeError{Row: fileRow, Column: name, Value: ""}
	}

	raw := strings.TrimSpace(row[col])
	value, err := parse(raw)
	if err != nil {
		return zero, &domain.DataTypeError{Row: fileRow, Column: name, Value: raw, Err: err}
	}

	return value, nil
}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return domain.Day(parsed), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseAsset(raw string) (string, error) {
	if raw == "" {
		return "", errEmptyAsset
	}
	return raw, nil
}

var errEmptyAsset = errors.New("asset must not be empty")
