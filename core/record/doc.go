// Package record holds the row model shared by ingestion, fingerprinting and translation.
//
// A Row is an ordered mapping of source column name to string value. The empty string
// stands for an absent value, matching how the accounting export leaves cells blank.
// Rows share a Header so that column lookups are index based and cheap for files with
// tens of thousands of lines.
//
// # Usage
//
//	h := record.NewHeader([]string{"伝票No.", "取引名"})
//	row := record.NewRow(h, []string{"1001", "Acme"}, 2)
//	v, ok := row.Get("取引名")
package record
