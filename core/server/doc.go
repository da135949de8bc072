// Package server holds the HTTP server configuration.
//
// The serve command builds the Fiber application from this configuration: the
// listen port, the API key protecting every route except /health, and the upload
// size limit applied to POST /sync/:kind.
package server
