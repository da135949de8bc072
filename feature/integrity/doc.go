// Package integrity checks the collaborators a sync run depends on.
//
// # Checks Provided
//
//   - Ledger: the run tables exist with every expected column.
//   - Storage: the archive bucket exists.
//   - Archive: recent recorded runs have their report in the archive.
//   - CRM: the API client is configured with a token and a valid base URL.
//
// A check whose collaborator is not configured reports "skipped".
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks. Responds 503 when any check fails.
package integrity
