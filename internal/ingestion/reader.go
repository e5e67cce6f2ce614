package ingestion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// TableReader turns one tabular input into a raw Table.
type TableReader interface {
	Read(reader io.Reader) (*Table, error)
}

// Loader picks the right TableReader for a file by its name.
type Loader struct {
	csv  *CSVReader
	xlsx *XLSXReader
}

func NewLoader(csvSeparator rune) *Loader {
	return &Loader{
		csv:  NewCSVReader(csvSeparator),
		xlsx: NewXLSXReader(),
	}
}

// Read parses the stream using the format implied by filename's extension.
// Anything that is not .xlsx is treated as delimited text.
func (l *Loader) Read(filename string, reader io.Reader) (*Table, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return l.xlsx.Read(reader)
	}
	return l.csv.Read(reader)
}

func (l *Loader) ReadFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return l.Read(path, file)
}
