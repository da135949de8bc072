// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation through the X-API-Key header, with public paths.
//   - rayid: assigns every request a RayID, stores it in the context locals and
//     echoes it in the X-Ray-ID response header for tracing.
//
// RayID must be registered first so every later log line can carry it.
package middleware
