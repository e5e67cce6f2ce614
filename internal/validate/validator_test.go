package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradevision/pnl-analyzer/internal/domain"
	"github.com/tradevision/pnl-analyzer/internal/ingestion"
)

func TestValidate_Success(t *testing.T) {
	table := &ingestion.Table{
		Header: []string{"Date", "Asset", "PnL"},
		Rows: [][]string{
			{"2023-01-01", "BTC", "100"},
			{"2023-01-02", "ETH", "-50.5"},
		},
	}

	records, err := NewValidator().Validate(table)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), records[0].Date)
	assert.Equal(t, "BTC", records[0].Asset)
	assert.Equal(t, "100", records[0].PnL.String())

	assert.Equal(t, "ETH", records[1].Asset)
	assert.Equal(t, "-50.5", records[1].PnL.String())
}

func TestValidate_ExtraColumnsIgnored(t *testing.T) {
	table := &ingestion.Table{
		Header: []string{"ID", "Date", "Broker", "Asset", "PnL", "Note"},
		Rows: [][]string{
			{"1", "2023-01-01", "X", "BTC", "10", "hello"},
		},
	}

	records, err := NewValidator().Validate(table)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "BTC", records[0].Asset)
}

func TestValidate_FrenchAliases(t *testing.T) {
	table := &ingestion.Table{
		Header: []string{"Heure", "Paire de cc", "Montant"},
		Rows: [][]string{
			{"2023-03-15 10:30:00", "BTC/EUR", "42.25"},
		},
	}

	records, err := NewValidator().Validate(table)
	require.NoError(t, err)
	require.Len(t, records, 1)

	// Time-of-day is truncated to the calendar day.
	assert.Equal(t, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), records[0].Date)
	assert.Equal(t, "BTC/EUR", records[0].Asset)
	assert.Equal(t, "42.25", records[0].PnL.String())
}

func TestValidate_MissingColumn(t *testing.T) {
	tests := []struct {
		name       string
		header     []string
		wantColumn string
	}{
		{"missing PnL", []string{"Date", "Asset"}, "PnL"},
		{"missing Asset", []string{"Date", "PnL"}, "Asset"},
		{"missing Date", []string{"Asset", "PnL"}, "Date"},
		{"empty header", []string{}, "Date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &ingestion.Table{Header: tt.header}

			records, err := NewValidator().Validate(table)
			assert.Nil(t, records)

			var schemaErr *domain.SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, tt.wantColumn, schemaErr.Column)
			assert.Contains(t, err.Error(), tt.wantColumn)
		})
	}
}

func TestValidate_DataTypeErrors(t *testing.T) {
	tests := []struct {
		name       string
		row        []string
		wantColumn string
	}{
		{"bad date", []string{"not-a-date", "BTC", "10"}, "Date"},
		{"bad pnl", []string{"2023-01-01", "BTC", "ten"}, "PnL"},
		{"empty asset", []string{"2023-01-01", "", "10"}, "Asset"},
		{"short row", []string{"2023-01-01"}, "Asset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &ingestion.Table{
				Header: []string{"Date", "Asset", "PnL"},
				Rows:   [][]string{tt.row},
			}

			records, err := NewValidator().Validate(table)
			assert.Nil(t, records)

			var dataErr *domain.DataTypeError
			require.True(t, errors.As(err, &dataErr))
			assert.Equal(t, tt.wantColumn, dataErr.Column)
			assert.Equal(t, 2, dataErr.Row, "header is row 1, first data row is row 2")
		})
	}
}

func TestValidate_AllOrNothing(t *testing.T) {
	// One malformed PnL cell rejects the entire import, even with valid
	// rows before and after it.
	table := &ingestion.Table{
		Header: []string{"Date", "Asset", "PnL"},
		Rows: [][]string{
			{"2023-01-01", "BTC", "100"},
			{"2023-01-02", "ETH", "oops"},
			{"2023-01-03", "BTC", "25"},
		},
	}

	records, err := NewValidator().Validate(table)
	assert.Nil(t, records)

	var dataErr *domain.DataTypeError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, 3, dataErr.Row)
	assert.Equal(t, "PnL", dataErr.Column)
}

func TestValidate_EmptyRows(t *testing.T) {
	table := &ingestion.Table{
		Header: []string{"Date", "Asset", "PnL"},
	}

	records, err := NewValidator().Validate(table)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestValidate_DateLayouts(t *testing.T) {
	layouts := []string{
		"2023-01-05",
		"2023-01-05 14:00:01",
		"2023-01-05T14:00:01",
		"05/01/2023",
	}

	want := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)

	for _, raw := range layouts {
		table := &ingestion.Table{
			Header: []string{"Date", "Asset", "PnL"},
			Rows:   [][]string{{raw, "BTC", "1"}},
		}

		records, err := NewValidator().Validate(table)
		require.NoError(t, err, "layout %q", raw)
		assert.Equal(t, want, records[0].Date, "layout %q", raw)
	}
}
