// Package schema translates source rows into CRM property maps.
//
// A Mapping is an ordered list of fields, each copying one source column into one or
// more target properties (fan-out), plus sparse per-target transforms:
//
//   - TransformMidnight: "YYYY/MM/DD" to epoch milliseconds at UTC midnight.
//   - TransformExact: "YYYY/MM/DD HH:MM:SS" in the source offset to epoch milliseconds.
//   - Label tables: known labels replaced by CRM identifiers, unknown labels kept.
//
// Transforms return an explicit (value, ok) outcome. A value that does not parse becomes
// an empty property and the row carries on; the Translator reports it to an optional
// observer so runs can count and log malformed cells.
//
// Mappings are validated against a header once, before any row is translated. A missing
// source column is a configuration error, never a per-row one.
package schema
