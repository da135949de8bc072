// Package sync runs one entity pass end to end.
//
// A run reads a parsed export, plans it with the reconcile engine, applies the
// plan, and records the outcome:
//
//   - the run and every batch go to the ledger (feature/history) when a database is configured
//   - the input file and a JSON report go to object storage when archiving is enabled
//   - counters go to the metrics collector
//
// The package also mounts POST /sync/:kind, which accepts a multipart upload and
// refuses to start a second run while one is in flight.
package sync
