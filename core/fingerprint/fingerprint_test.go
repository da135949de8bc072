package fingerprint

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"testing"

	"crm-sync/core/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(cols []string, vals []string) record.Row {
	return record.NewRow(record.NewHeader(cols), vals, 2)
}

func TestFingerprint_KnownValue(t *testing.T) {
	r := row([]string{"a", "b", "c"}, []string{"x", "", "z"})

	sum := sha512.Sum512([]byte("x,,z"))
	assert.Equal(t, hex.EncodeToString(sum[:]), Fingerprint(r, []string{"a", "b", "c"}))
	assert.Len(t, Fingerprint(r, []string{"a"}), 128)
}

func TestFingerprint_Properties(t *testing.T) {
	fields := []string{"a", "b"}
	base := row([]string{"a", "b"}, []string{"1", "2"})

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, Fingerprint(base, fields), Fingerprint(base, fields))
	})

	t.Run("IdenticalValuesIdenticalDigest", func(t *testing.T) {
		other := row([]string{"b", "a"}, []string{"2", "1"})
		assert.Equal(t, Fingerprint(base, fields), Fingerprint(other, fields))
	})

	t.Run("UnrelatedColumnsIgnored", func(t *testing.T) {
		wider := row([]string{"a", "b", "extra"}, []string{"1", "2", "noise"})
		assert.Equal(t, Fingerprint(base, fields), Fingerprint(wider, fields))
	})

	t.Run("OrderMatters", func(t *testing.T) {
		assert.NotEqual(t, Fingerprint(base, fields), Fingerprint(base, []string{"b", "a"}))
	})

	t.Run("AnyFieldChangeChangesDigest", func(t *testing.T) {
		changed := row([]string{"a", "b"}, []string{"1", "3"})
		assert.NotEqual(t, Fingerprint(base, fields), Fingerprint(changed, fields))
	})

	t.Run("MissingColumnIsEmpty", func(t *testing.T) {
		short := row([]string{"a"}, []string{"1"})
		empty := row([]string{"a", "b"}, []string{"1", ""})
		assert.Equal(t, Fingerprint(empty, fields), Fingerprint(short, fields))
	})
}

func TestScope(t *testing.T) {
	s := Scope{Name: "deal", Business: []string{"k", "v"}, Audit: []string{"who"}}

	t.Run("FullExtendsBusiness", func(t *testing.T) {
		r := row([]string{"k", "v", "who"}, []string{"1", "a", "alice"})
		d := s.Compute(r)
		assert.Equal(t, Fingerprint(r, []string{"k", "v"}), d.Business)
		assert.Equal(t, Fingerprint(r, []string{"k", "v", "who"}), d.Full)

		// an audit-only edit changes the full digest but not the business one
		edited := row([]string{"k", "v", "who"}, []string{"1", "a", "bob"})
		d2 := s.Compute(edited)
		assert.Equal(t, d.Business, d2.Business)
		assert.NotEqual(t, d.Full, d2.Full)
	})

	t.Run("Validate", func(t *testing.T) {
		err := s.Validate(record.NewHeader([]string{"k"}))
		require.Error(t, err)
		var mce *record.MissingColumnsError
		require.True(t, errors.As(err, &mce))
		assert.Equal(t, []string{"v", "who"}, mce.Columns)
	})

	t.Run("Stamp", func(t *testing.T) {
		h := record.NewHeader([]string{"k", "v", "who"})
		tbl := &record.Table{Header: h, Rows: []record.Row{record.NewRow(h, []string{"1", "a", "alice"}, 2)}}

		out := s.Stamp(tbl)
		assert.Equal(t, []string{"k", "v", "who", ColumnFull, ColumnBusiness}, out.Header.Columns())
		d := s.Compute(tbl.Rows[0])
		assert.Equal(t, d.Full, out.Rows[0].Value(ColumnFull))
		assert.Equal(t, d.Business, out.Rows[0].Value(ColumnBusiness))
		assert.False(t, tbl.Header.Has(ColumnFull), "input table untouched")
	})

	t.Run("StampOverwritesStaleDigest", func(t *testing.T) {
		h := record.NewHeader([]string{"k", "v", "who", ColumnFull, ColumnBusiness})
		tbl := &record.Table{Header: h, Rows: []record.Row{record.NewRow(h, []string{"1", "a", "x", "old", "old"}, 2)}}

		out := s.Stamp(tbl)
		assert.Equal(t, h.Columns(), out.Header.Columns())
		assert.NotEqual(t, "old", out.Rows[0].Value(ColumnFull))
	})

	t.Run("StampKeepsUpstreamDigests", func(t *testing.T) {
		keep := s
		keep.KeepExisting = true
		h := record.NewHeader([]string{"k", "v", "who", ColumnFull, ColumnBusiness})
		tbl := &record.Table{Header: h, Rows: []record.Row{
			record.NewRow(h, []string{"1", "a", "x", "up-full", "up-business"}, 2),
			record.NewRow(h, []string{"2", "b", "y", "up-full", ""}, 3),
		}}

		out := keep.Stamp(tbl)
		assert.Equal(t, "up-full", out.Rows[0].Value(ColumnFull))
		assert.Equal(t, "up-business", out.Rows[0].Value(ColumnBusiness))
		d := s.Compute(tbl.Rows[1])
		assert.Equal(t, d.Full, out.Rows[1].Value(ColumnFull))
		assert.Equal(t, d.Business, out.Rows[1].Value(ColumnBusiness))
	})
}
