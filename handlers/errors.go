// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quick-poll/auth"
	"github.com/danielhkuo/quick-poll/ledger"
	"github.com/danielhkuo/quick-poll/metrics"
	"github.com/danielhkuo/quick-poll/middleware"
	"github.com/danielhkuo/quick-poll/poll"
	"github.com/danielhkuo/quick-poll/store"
)

// writeError maps a domain error to its status code and message.
// Unknown errors are logged and reported as 500.
func writeError(w http.ResponseWriter, m *metrics.Registry, err error) {
	var ve *poll.ValidationError

	switch {
	case errors.As(err, &ve):
		middleware.ErrorResponse(w, http.StatusBadRequest, ve.Reason)
	case errors.Is(err, poll.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	case errors.Is(err, ledger.ErrInvalidOption):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option index")
	case errors.Is(err, ledger.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted on this poll")
	case errors.Is(err, auth.ErrInvalidCredentials):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, store.ErrWriteFailure):
		m.StoreFailures.Inc()
		slog.Error("store write failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save data")
	case errors.Is(err, store.ErrReadFailure):
		m.StoreFailures.Inc()
		slog.Error("store read failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load data")
	default:
		slog.Error("request failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}

// voteResult labels a CastVote outcome for the votes metric
func voteResult(err error) string {
	switch {
	case err == nil:
		return metrics.VoteAccepted
	case errors.Is(err, ledger.ErrAlreadyVoted):
		return metrics.VoteAlreadyVoted
	case errors.Is(err, ledger.ErrInvalidOption):
		return metrics.VoteInvalidOption
	case errors.Is(err, poll.ErrNotFound):
		return metrics.VoteNotFound
	default:
		return metrics.VoteError
	}
}
