package domain

import "fmt"

// SchemaError reports a required column missing from the input header.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

// DataTypeError reports a cell that could not be parsed into its expected
// type. Row is the 1-based file row (the header is row 1).
type DataTypeError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *DataTypeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("row %d, column %q: invalid value %q: %v", e.Row, e.Column, e.Value, e.Err)
	}
	return fmt.Sprintf("row %d, column %q: invalid value %q", e.Row, e.Column, e.Value)
}

func (e *DataTypeError) Unwrap() error {
	return e.Err
}
