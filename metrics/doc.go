// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes Prometheus counters for the API.

	m := metrics.New()
	mux.Handle("GET /metrics", m.Handler())

# Collectors

	quickpoll_polls_created_total
	quickpoll_polls_deleted_total
	quickpoll_votes_total{result="accepted|already_voted|invalid_option|not_found|error"}
	quickpoll_store_failures_total

plus the standard Go runtime and process collectors. Each Registry owns a
private prometheus.Registry, so tests can create as many as they like.
*/
package metrics
