// Package metrics provides the centralized Prometheus registry reference
// for the travel client. All metrics are defined in their respective
// packages (remote, store, resource) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the travel client.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Transport Metrics (pkg/remote):
//   - travel_requests_total{resource, operation, outcome} (Counter): Requests by
//     outcome (ok, ok_primary, ok_fallback, failed, network_error, or HTTP status)
//   - travel_request_duration_seconds{resource, operation} (Histogram): Request duration
//   - travel_transport_fallbacks_total{resource, operation} (Counter): Mutations that
//     fell back to the JSON-body transport
//   - travel_malformed_responses_total{resource} (Counter): Bodies matching no
//     accepted envelope shape
//
// Cache Metrics (pkg/store):
//   - travel_collection_size{collection} (Gauge): Records held per collection
//   - travel_collection_degraded{collection} (Gauge): 1 when the collection may
//     have diverged from server truth
//   - travel_persist_errors_total{collection} (Counter): Failed durable writes
//
// Reconciliation Metrics (pkg/resource):
//   - travel_reconciliations_total{resource} (Counter): Confirmed mutations
//     followed by a full refetch
//   - travel_optimistic_fallbacks_total{resource} (Counter): Mutations applied
//     locally after transport failure
//   - travel_mutations_rejected_total{resource, reason} (Counter): Mutations
//     rejected before transport (reason: validation, busy)
//
// Example Prometheus Queries:
//
//   # Fallback rate per resource
//   rate(travel_transport_fallbacks_total[5m]) / rate(travel_requests_total[5m])
//
//   # Collections currently degraded
//   travel_collection_degraded == 1
//
//   # P95 request latency
//   histogram_quantile(0.95, rate(travel_request_duration_seconds_bucket[5m]))
