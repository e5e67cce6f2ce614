package ingestion

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

type XLSXReader struct{}

func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

// Read loads the first sheet of an XLSX workbook. Excelize already applies
// the cell number formats, so every cell arrives as a display string and is
// typed later by the validator, same as CSV input.
func (r *XLSXReader) Read(reader io.Reader) (*Table, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("opening xlsx: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx workbook has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("empty sheet: no header row")
	}

	return &Table{
		Header: rows[0],
		Rows:   rows[1:],
	}, nil
}
