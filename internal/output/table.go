package output

// Table is a pre-rendered table: explicit headers and string cells,
// bypassing the reflection-based table builder.
type Table struct {
	Headers []string   `json:"headers,omitempty" yaml:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// NewTable creates a table with the given header row.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// AddRow appends one row of cells.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}
