package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"crm-sync/core/record"

	"golang.org/x/text/transform"
)

// Write writes the table as CSV in the named encoding.
func Write(w io.Writer, t *record.Table, enc string) error {
	tw := transform.NewWriter(w, Encoder(enc))
	cw := csv.NewWriter(tw)
	if err := cw.Write(t.Header.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row.Values()); err != nil {
			return fmt.Errorf("write line %d: %w", row.Line, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return tw.Close()
}

// WriteFile replaces path with the table, going through a temporary file in the same
// directory.
func WriteFile(path string, t *record.Table, enc string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".crm-sync-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, t, enc); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
