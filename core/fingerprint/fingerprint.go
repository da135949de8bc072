package fingerprint

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"

	"crm-sync/core/record"
)

const (
	// Delimiter joins field values before hashing.
	Delimiter = ","

	// ColumnFull receives the business+audit digest.
	ColumnFull = "sha512"
	// ColumnBusiness receives the business-only digest.
	ColumnBusiness = "sha512_contents"
)

// Fields is anything that can look up a column value.
type Fields interface {
	Get(column string) (string, bool)
}

// Fingerprint hashes the values of fields, in order, taken from row.
func Fingerprint(row Fields, fields []string) string {
	values := make([]string, len(fields))
	for i, f := range fields {
		v, _ := row.Get(f)
		values[i] = v
	}
	sum := sha512.Sum512([]byte(strings.Join(values, Delimiter)))
	return hex.EncodeToString(sum[:])
}

// Digests is the pair of fingerprints computed for one row.
type Digests struct {
	Business string
	Full     string
}

// Scope pairs the business field list with the audit fields that extend it.
type Scope struct {
	// Name identifies the scope in configuration errors.
	Name     string
	Business []string
	Audit    []string
	// KeepExisting leaves rows alone that already carry both digests.
	KeepExisting bool
}

// FullFields returns the business fields followed by the audit fields.
func (s Scope) FullFields() []string {
	out := make([]string, 0, len(s.Business)+len(s.Audit))
	out = append(out, s.Business...)
	return append(out, s.Audit...)
}

// Validate checks that every listed field exists in the header.
func (s Scope) Validate(h *record.Header) error {
	return record.Require(h, s.Name+" fingerprint", s.FullFields())
}

// Compute returns both digests for a row.
func (s Scope) Compute(row Fields) Digests {
	return Digests{
		Business: Fingerprint(row, s.Business),
		Full:     Fingerprint(row, s.FullFields()),
	}
}

// Stamp returns a copy of the table with both digest columns written on every row.
// Existing digests are overwritten unless KeepExisting is set and the row has both.
// Callers validate the scope first.
func (s Scope) Stamp(t *record.Table) *record.Table {
	h := t.Header.Extend(ColumnFull, ColumnBusiness)
	out := &record.Table{Header: h, Rows: make([]record.Row, 0, len(t.Rows))}
	for _, row := range t.Rows {
		if s.KeepExisting && row.Value(ColumnFull) != "" && row.Value(ColumnBusiness) != "" {
			out.Rows = append(out.Rows, row.Rebind(h))
			continue
		}
		d := s.Compute(row)
		r := row.Rebind(h).With(ColumnFull, d.Full).With(ColumnBusiness, d.Business)
		out.Rows = append(out.Rows, r)
	}
	return out
}
