// Package metrics defines and registers all custom Prometheus metrics for
// the TechMart commerce API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at init time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "techmart"

// ── Identity metrics ──────────────────────────────────────────────────────────

// AuthAttemptsTotal counts authentication operations by outcome.
// Labels:
//   - operation: "register" or "login"
//   - outcome: "success", "invalid" (bad credentials) or "rejected"
//     (duplicate email / policy violation)
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CacheLookupsTotal counts single-product cache lookups.
// Label:
//   - result: "hit" (served from cache) or "miss" (store consulted)
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_cache_lookups_total",
		Help:      "Total number of product cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ProductsCreatedTotal counts newly created products.
// Label:
//   - category_id: the category the product was created under
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products created, by category.",
	},
	[]string{"category_id"},
)

// StockUpdatesTotal counts stock overwrite operations that persisted.
var StockUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_updates_total",
		Help:      "Total number of stock quantity updates persisted.",
	},
)
