package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
)

type CSVReader struct {
	separator rune
}

func NewCSVReader(separator rune) *CSVReader {
	if separator == 0 {
		separator = ','
	}
	return &CSVReader{separator: separator}
}

func (r *CSVReader) Read(reader io.Reader) (*Table, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = r.separator
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	table := &Table{Header: header}

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}
