package ingestion

// Table is the raw tabular form of an imported file: one header row plus
// zero or more data rows, all cells still untyped strings. Typing happens
// at the validation boundary.
type Table struct {
	Header []string
	Rows   [][]string
}
