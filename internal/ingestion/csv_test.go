package ingestion

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVReader_Read(t *testing.T) {
	input := "Date,Asset,PnL\n2023-01-01,BTC,100\n2023-01-02,ETH,-50\n"

	table, err := NewCSVReader(',').Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Asset", "PnL"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"2023-01-01", "BTC", "100"}, table.Rows[0])
	assert.Equal(t, []string{"2023-01-02", "ETH", "-50"}, table.Rows[1])
}

func TestCSVReader_CustomSeparator(t *testing.T) {
	input := "Date;Asset;PnL\n2023-01-01;BTC;1,5\n"

	table, err := NewCSVReader(';').Read(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"2023-01-01", "BTC", "1,5"}, table.Rows[0])
}

func TestCSVReader_HeaderOnly(t *testing.T) {
	table, err := NewCSVReader(',').Read(strings.NewReader("Date,Asset,PnL\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Asset", "PnL"}, table.Header)
	assert.Empty(t, table.Rows)
}

func TestCSVReader_EmptyInput(t *testing.T) {
	_, err := NewCSVReader(',').Read(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestCSVReader_RaggedRows(t *testing.T) {
	// Rows with differing field counts are accepted at this layer; the
	// validator decides whether the resolved columns are present.
	input := "Date,Asset,PnL,Note\n2023-01-01,BTC,100\n"

	table, err := NewCSVReader(',').Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Len(t, table.Rows[0], 3)
}

func TestLoader_DispatchesByExtension(t *testing.T) {
	loader := NewLoader(',')

	table, err := loader.Read("trades.csv", strings.NewReader("Date,Asset,PnL\n2023-01-01,BTC,5\n"))
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)

	// Garbage bytes under an .xlsx name must fail in the xlsx reader,
	// not silently parse as CSV.
	_, err = loader.Read("trades.xlsx", strings.NewReader("Date,Asset,PnL\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xlsx")
}

func BenchmarkCSVReader(b *testing.B) {
	csvData := generateTestCSV(100000)
	reader := NewCSVReader(',')

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := reader.Read(strings.NewReader(csvData)); err != nil {
			b.Fatal(err)
		}
	}
}

func generateTestCSV(lines int) string {
	var sb strings.Builder
	sb.WriteString("Date,Asset,PnL\n")

	assets := []string{"BTC", "ETH", "SOL", "ADA"}

	for i := 0; i < lines; i++ {
		asset := assets[i%len(assets)]
		pnl := fmt.Sprintf("%.2f", float64(i%200)-100)
		day := fmt.Sprintf("2023-%02d-%02d", i%12+1, i%28+1)

		sb.WriteString(fmt.Sprintf("%s,%s,%s\n", day, asset, pnl))
	}

	return sb.String()
}
