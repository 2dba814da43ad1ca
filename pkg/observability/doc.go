// Package observability provides Prometheus metrics for the permctl server.
//
// HTTP requests are counted and timed per mux route template, export
// lookups per result, and administration mutations per entity and
// operation. The registry is served on GET /metrics.
package observability
