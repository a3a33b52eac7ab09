// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quick-poll/auth"
	"github.com/danielhkuo/quick-poll/metrics"
	"github.com/danielhkuo/quick-poll/middleware"
	"github.com/danielhkuo/quick-poll/poll"
)

// ResultsHandler serves a poll with its live tally. Results are public while
// voting is open; has_voted and user_vote are computed for the caller.
type ResultsHandler struct {
	repo     *poll.Repository
	resolver auth.IdentityResolver
	metrics  *metrics.Registry
}

func NewResultsHandler(repo *poll.Repository, resolver auth.IdentityResolver, m *metrics.Registry) *ResultsHandler {
	return &ResultsHandler{repo: repo, resolver: resolver, metrics: m}
}

// GetPoll handles GET /api/polls/{id}
func (h *ResultsHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	res, err := h.repo.Results(r.Context(), pollID, h.resolver.Resolve(r))
	if err != nil {
		writeError(w, h.metrics, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, res)
}
