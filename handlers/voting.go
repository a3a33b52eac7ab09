// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quick-poll/auth"
	"github.com/danielhkuo/quick-poll/ledger"
	"github.com/danielhkuo/quick-poll/metrics"
	"github.com/danielhkuo/quick-poll/middleware"
	"github.com/danielhkuo/quick-poll/models"
)

type VotingHandler struct {
	ledger   *ledger.Ledger
	resolver auth.IdentityResolver
	metrics  *metrics.Registry
}

func NewVotingHandler(l *ledger.Ledger, resolver auth.IdentityResolver, m *metrics.Registry) *VotingHandler {
	return &VotingHandler{ledger: l, resolver: resolver, metrics: m}
}

// Vote handles POST /api/polls/{id}/vote
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	// A non-integer option_index fails to decode
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		h.metrics.ObserveVote(metrics.VoteInvalidOption)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option index")
		return
	}
	if req.OptionIndex == nil {
		h.metrics.ObserveVote(metrics.VoteInvalidOption)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Option index is required")
		return
	}

	receipt, err := h.ledger.CastVote(r.Context(), pollID, *req.OptionIndex, h.resolver.Resolve(r))
	h.metrics.ObserveVote(voteResult(err))
	if err != nil {
		writeError(w, h.metrics, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		Success:    true,
		Message:    "Vote recorded successfully",
		TotalVotes: receipt.TotalVotes,
	})
}
