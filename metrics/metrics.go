// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quickpoll"

// Vote outcomes used as the "result" label
const (
	VoteAccepted      = "accepted"
	VoteAlreadyVoted  = "already_voted"
	VoteInvalidOption = "invalid_option"
	VoteNotFound      = "not_found"
	VoteError         = "error"
)

// Registry holds the service's collectors on a private prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	PollsCreated  prometheus.Counter
	PollsDeleted  prometheus.Counter
	Votes         *prometheus.CounterVec
	StoreFailures prometheus.Counter
}

func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		PollsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_created_total",
			Help:      "Number of polls created.",
		}),
		PollsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_deleted_total",
			Help:      "Number of polls deleted.",
		}),
		Votes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_total",
			Help:      "Vote attempts by result.",
		}, []string{"result"}),
		StoreFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_failures_total",
			Help:      "Store reads or writes that failed.",
		}),
	}

	r.reg.MustRegister(
		r.PollsCreated,
		r.PollsDeleted,
		r.Votes,
		r.StoreFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveVote counts one vote attempt with the given result label.
func (r *Registry) ObserveVote(result string) {
	r.Votes.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
