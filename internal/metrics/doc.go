// Package metrics aggregates per-route request counts, status codes, and
// latency percentiles. Handlers emit events onto a buffered channel and a
// single collector goroutine owns the aggregation, so the hot path never
// blocks on the metrics lock.
package metrics
