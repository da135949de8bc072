// Package history is the run ledger.
//
// Every sync run is recorded as a Run with one BatchRecord per submitted batch, so that
// a failed batch can be traced to its slip numbers after the fact. The ledger lives in
// the database opened by core/database and is exposed over HTTP:
//
//   - GET /runs          lists runs, newest first (query: kind, status, limit, offset)
//   - GET /runs/:id      returns one run with its batches
package history
