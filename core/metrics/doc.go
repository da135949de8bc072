// Package metrics exposes Prometheus collectors for sync runs and CRM calls.
//
// Collectors are registered on an injected registry rather than the global default so
// tests and short-lived CLI runs do not share state. A nil *Collector is valid and
// records nothing, which lets components take metrics as an optional dependency.
package metrics
