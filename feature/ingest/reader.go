package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"crm-sync/core/record"
)

// Warning is a non-fatal problem found while parsing.
type Warning struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// Source is a parsed export.
type Source struct {
	Name     string
	Encoding string
	Table    *record.Table
	Warnings []Warning

	// Raw holds the undecoded input for archiving.
	Raw []byte
}

// ReadFile reads and parses the export at path.
func ReadFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()
	return Read(f, filepath.Base(path))
}

// Read parses an export from r. name identifies the source in logs and the run ledger.
func Read(r io.Reader, name string) (*Source, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	decoded, enc, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	columns, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty file, no header row", name)
		}
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	for i, c := range columns {
		columns[i] = strings.TrimSpace(c)
	}
	header := record.NewHeader(columns)

	src := &Source{Name: name, Encoding: enc, Table: &record.Table{Header: header}, Raw: raw}
	for {
		values, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			src.Warnings = append(src.Warnings, Warning{Line: perr.Line, Message: fmt.Sprintf("parse error: %v", err)})
			continue
		}
		line, _ := reader.FieldPos(0)
		if blank(values) {
			continue
		}
		switch {
		case len(values) < header.Len():
			src.Warnings = append(src.Warnings, Warning{Line: line, Message: fmt.Sprintf("row has %d columns, expected %d; padding with empty values", len(values), header.Len())})
		case len(values) > header.Len():
			src.Warnings = append(src.Warnings, Warning{Line: line, Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(values), header.Len())})
		}
		src.Table.Rows = append(src.Table.Rows, record.NewRow(header, values, line))
	}
	return src, nil
}

func blank(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}
