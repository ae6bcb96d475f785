// Package metrics provides operational metrics collection.
//
// Metrics are registered on an injected prometheus.Registerer and exposed in
// Prometheus text format by Handler.
//
// # Metric Categories
//
//   - Pages: language pages rendered, by outcome
//   - Links: cross-language links dropped for unresolvable codes
//   - Upstream: action API request latency, by outcome
//   - Footer: footers assembled, by view
//   - Search: search parameter requests, by feature and outcome
//
// A nil *Recorder is valid and records nothing.
package metrics
