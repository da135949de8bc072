// Package ingest reads accounting exports into record tables and writes them back.
//
// Exports arrive in whatever encoding the accounting package was configured with.
// Decode tries, in order: UTF-8 (with or without BOM), UTF-16 with a BOM, Shift_JIS
// (Windows code page 932, which covers both Shift_JIS and CP932 exports) and finally
// UTF-16LE without a BOM. Parsing is lenient: short rows are padded, long rows are
// truncated, and each repair is reported as a Warning.
package ingest
