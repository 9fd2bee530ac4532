package application

import "expvar"

// Counters published under /api/v1/debug/vars.
var metrics = expvar.NewMap("lms")

const (
	metricRegistrations = "registrations"
	metricActivations   = "activations"
	metricLogins        = "logins"
	metricLoginFailures = "login_failures"
	metricRefreshes     = "token_refreshes"
	metricOrders        = "orders"
	metricEmailFailures = "email_dispatch_failures"
	metricMediaFailures = "media_failures"
	metricCacheHits     = "catalog_cache_hits"
	metricCacheMisses   = "catalog_cache_misses"
	metricPurgedNotices = "notifications_purged"
)

func incr(name string) { metrics.Add(name, 1) }
