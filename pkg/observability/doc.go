/*
Package observability exposes Prometheus metrics for the TimeScript engine.

Metrics are registered on a caller-supplied registry so tests and embedders can
keep them isolated from the process-wide default.
*/
package observability
