package tabular

import "strings"

// Row is one data record of a Table. Column access goes through Get so a
// column missing from the file reads as the empty string rather than
// failing.
type Row struct {
	// Line is the 1-based physical line (CSV) or sheet row (XLSX) the
	// record started on.
	Line   int
	values map[string]string
}

// NewRow builds a Row from a column -> value map.
func NewRow(line int, values map[string]string) Row {
	if values == nil {
		values = map[string]string{}
	}
	return Row{Line: line, values: values}
}

// Get returns the raw cell text for column, or "" if the row has no such
// column.
func (r Row) Get(column string) string {
	return r.values[column]
}

// Value returns the cell for column with surrounding whitespace removed.
func (r Row) Value(column string) string {
	return strings.TrimSpace(r.values[column])
}

// Has reports whether the row carries column at all.
func (r Row) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// Table is a fully loaded delimited dataset.
type Table struct {
	Path     string
	Header   []string
	Rows     []Row
	Encoding string
}

// HasColumn reports whether name appears in the header.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Header {
		if h == name {
			return true
		}
	}
	return false
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// rowFromRecord maps record onto header. Short records leave the trailing
// columns empty, extra cells beyond the header are dropped, and a
// duplicated header name keeps its right-most value.
func rowFromRecord(line int, header, record []string) Row {
	values := make(map[string]string, len(header))
	for i, col := range header {
		if i < len(record) {
			values[col] = record[i]
		} else {
			values[col] = ""
		}
	}
	return NewRow(line, values)
}
