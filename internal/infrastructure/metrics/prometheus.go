// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nesubtv"

var (
	// CatalogRequestsTotal tracks round-trips to the upstream catalog.
	// Labels:
	//   - endpoint: videos, video, categories, trending, search, page, settings, admin
	//   - status: ok, not_found, unauthorized, error
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_requests_total",
			Help:      "Total number of upstream catalog requests",
		},
		[]string{"endpoint", "status"},
	)

	// PreferenceTogglesTotal tracks membership toggles.
	// Labels:
	//   - kind: liked, watchLater
	//   - result: added, removed
	PreferenceTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preference_toggles_total",
			Help:      "Total number of preference set toggles",
		},
		[]string{"kind", "result"},
	)

	// PrefStoreOperationsTotal tracks preference store reads and writes.
	// Labels:
	//   - operation: get_set, set_set, get_scalar, set_scalar, delete_scalar
	//   - backend: file, redis, postgres
	//   - status: success, error
	PrefStoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prefstore_operations_total",
			Help:      "Total number of preference store operations",
		},
		[]string{"operation", "backend", "status"},
	)

	// QueueNavigationsTotal tracks autoplay queue cursor movement.
	// Labels:
	//   - direction: next, previous, jump
	//   - result: moved, boundary
	QueueNavigationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queue_navigations_total",
			Help:      "Total number of playback queue navigations",
		},
		[]string{"direction", "result"},
	)

	// StaleLoadsDiscardedTotal counts catalog list responses dropped by the
	// request epoch guard because a newer load superseded them.
	StaleLoadsDiscardedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_loads_discarded_total",
			Help:      "Total number of stale queue loads discarded",
		},
	)
)

// Catalog request status constants.
const (
	CatalogStatusOK           = "ok"
	CatalogStatusNotFound     = "not_found"
	CatalogStatusUnauthorized = "unauthorized"
	CatalogStatusError        = "error"
)

// Toggle result constants.
const (
	ToggleAdded   = "added"
	ToggleRemoved = "removed"
)

// Preference store operation constants.
const (
	PrefOpGetSet       = "get_set"
	PrefOpSetSet       = "set_set"
	PrefOpGetScalar    = "get_scalar"
	PrefOpSetScalar    = "set_scalar"
	PrefOpDeleteScalar = "delete_scalar"
)

// Preference store status constants.
const (
	PrefStatusSuccess = "success"
	PrefStatusError   = "error"
)

// Queue navigation constants.
const (
	NavNext     = "next"
	NavPrevious = "previous"
	NavJump     = "jump"

	NavMoved    = "moved"
	NavBoundary = "boundary"
)
