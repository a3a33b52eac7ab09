// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quick-poll/metrics"
	"github.com/danielhkuo/quick-poll/middleware"
	"github.com/danielhkuo/quick-poll/models"
	"github.com/danielhkuo/quick-poll/poll"
)

type PollHandler struct {
	repo    *poll.Repository
	metrics *metrics.Registry
}

func NewPollHandler(repo *poll.Repository, m *metrics.Registry) *PollHandler {
	return &PollHandler{repo: repo, metrics: m}
}

// ListPolls handles GET /api/polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, h.metrics, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// CreatePoll handles POST /api/polls (admin)
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll data")
		return
	}

	p, err := h.repo.Create(r.Context(), req.Question, req.Options)
	if err != nil {
		writeError(w, h.metrics, err)
		return
	}
	h.metrics.PollsCreated.Inc()

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		ID:        p.ID,
		Question:  p.Question,
		Options:   p.Options,
		CreatedAt: p.CreatedAt,
		Success:   true,
	})
}

// DeletePoll handles DELETE /api/polls/{id} (admin)
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	if err := h.repo.Delete(r.Context(), pollID); err != nil {
		writeError(w, h.metrics, err)
		return
	}
	h.metrics.PollsDeleted.Inc()

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Poll deleted successfully",
	})
}
