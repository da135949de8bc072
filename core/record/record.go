package record

import (
	"fmt"
	"strings"
)

// Header is the ordered, immutable column set of a table.
type Header struct {
	names []string
	index map[string]int
}

// NewHeader builds a header from column names.
// Duplicate names keep the first position.
func NewHeader(names []string) *Header {
	h := &Header{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	copy(h.names, names)
	for i, n := range h.names {
		if _, exists := h.index[n]; !exists {
			h.index[n] = i
		}
	}
	return h
}

// Columns returns a copy of the column names in order.
func (h *Header) Columns() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Len returns the number of columns.
func (h *Header) Len() int {
	return len(h.names)
}

// Has reports whether the column exists.
func (h *Header) Has(name string) bool {
	_, ok := h.index[name]
	return ok
}

// Missing returns the names from want that the header lacks, in the order given.
func (h *Header) Missing(want []string) []string {
	var missing []string
	seen := make(map[string]struct{})
	for _, name := range want {
		if h.Has(name) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		missing = append(missing, name)
	}
	return missing
}

// Extend returns a header with the given columns appended when not already present.
// The receiver is returned unchanged if nothing needs to be added.
func (h *Header) Extend(names ...string) *Header {
	var add []string
	for _, n := range names {
		if !h.Has(n) {
			add = append(add, n)
		}
	}
	if len(add) == 0 {
		return h
	}
	return NewHeader(append(h.Columns(), add...))
}

// Row is one data line. Rows are values; mutating helpers return copies.
type Row struct {
	header *Header
	values []string

	// Line is the 1-based line number in the source file (header is line 1).
	Line int
}

// NewRow binds values to a header, padding or truncating to the header length.
func NewRow(h *Header, values []string, line int) Row {
	v := make([]string, h.Len())
	copy(v, values)
	return Row{header: h, values: v, Line: line}
}

// Header returns the row's column set.
func (r Row) Header() *Header {
	return r.header
}

// Get returns the value for a column and whether the column exists.
func (r Row) Get(column string) (string, bool) {
	if r.header == nil {
		return "", false
	}
	i, ok := r.header.index[column]
	if !ok {
		return "", false
	}
	return r.values[i], true
}

// Value returns the column value or the empty string.
func (r Row) Value(column string) string {
	v, _ := r.Get(column)
	return v
}

// Values returns a copy of the values in header order.
func (r Row) Values() []string {
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

// Rebind moves the row onto a wider header that starts with the row's own columns.
func (r Row) Rebind(h *Header) Row {
	return NewRow(h, r.values, r.Line)
}

// With returns a copy of the row with column set to value.
// If the column is new the copy gets an extended header.
func (r Row) With(column, value string) Row {
	h := r.header.Extend(column)
	out := NewRow(h, r.values, r.Line)
	out.values[h.index[column]] = value
	return out
}

// Table is a header plus its rows.
type Table struct {
	Header *Header
	Rows   []Row
}

// Column returns every value of a column in row order.
func (t *Table) Column(name string) []string {
	out := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, r.Value(name))
	}
	return out
}

// MissingColumnsError reports required columns absent from a header.
type MissingColumnsError struct {
	// Context names what required the columns, e.g. "deal mapping".
	Context string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Context, strings.Join(e.Columns, ", "))
}

// Require returns a *MissingColumnsError when any of want is absent from h.
func Require(h *Header, context string, want []string) error {
	if missing := h.Missing(want); len(missing) > 0 {
		return &MissingColumnsError{Context: context, Columns: missing}
	}
	return nil
}
