// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/danielhkuo/quick-poll/metrics"
	"github.com/danielhkuo/quick-poll/models"
	tu "github.com/danielhkuo/quick-poll/testutil"
)

func vote(t *testing.T, h *testHandlers, pollID string, body any, agent string) *httptest.ResponseRecorder {
	t.Helper()

	req := tu.MakeRequest("POST", "/api/polls/"+pollID+"/vote", body, tu.VoterHeaders(agent))
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()
	h.voting.Vote(w, req)
	return w
}

func TestVote(t *testing.T) {
	h := setupHandlers(t)
	p := tu.CreateTestPoll(t, h.repo, "Favorite color?", "Red", "Blue")

	w := vote(t, h, p.ID, map[string]any{"option_index": 1}, "browser-a")
	tu.AssertStatus(t, w, http.StatusOK)

	var resp models.VoteResponse
	tu.AssertJSON(t, w, &resp)
	if !resp.Success || resp.Message != "Vote recorded successfully" || resp.TotalVotes != 1 {
		t.Errorf("Unexpected response: %+v", resp)
	}

	stored, err := h.repo.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Votes[0] != 0 || stored.Votes[1] != 1 {
		t.Errorf("Expected votes [0 1], got %v", stored.Votes)
	}
	if got := testutil.ToFloat64(h.metrics.Votes.WithLabelValues(metrics.VoteAccepted)); got != 1 {
		t.Errorf("Expected 1 accepted vote metric, got %v", got)
	}
}

func TestVoteErrors(t *testing.T) {
	tests := []struct {
		name           string
		pollID         string
		body           any
		expectedStatus int
		expectedError  string
		metricLabel    string
	}{
		{"missing option index", "", map[string]any{}, http.StatusBadRequest, "Option index is required", metrics.VoteInvalidOption},
		{"string option index", "", map[string]any{"option_index": "1"}, http.StatusBadRequest, "Invalid option index", metrics.VoteInvalidOption},
		{"fractional option index", "", map[string]any{"option_index": 0.5}, http.StatusBadRequest, "Invalid option index", metrics.VoteInvalidOption},
		{"negative option index", "", map[string]any{"option_index": -1}, http.StatusBadRequest, "Invalid option index", metrics.VoteInvalidOption},
		{"option index past end", "", map[string]any{"option_index": 2}, http.StatusBadRequest, "Invalid option index", metrics.VoteInvalidOption},
		{"unknown poll", "missing", map[string]any{"option_index": 0}, http.StatusNotFound, "Poll not found", metrics.VoteNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupHandlers(t)
			p := tu.CreateTestPoll(t, h.repo, "Q?", "A", "B")
			savesBefore := h.store.Saves()

			pollID := tt.pollID
			if pollID == "" {
				pollID = p.ID
			}

			w := vote(t, h, pollID, tt.body, "browser")
			tu.AssertStatus(t, w, tt.expectedStatus)

			var resp models.ErrorResponse
			tu.AssertJSON(t, w, &resp)
			if resp.Success || resp.Error != tt.expectedError {
				t.Errorf("Expected error %q, got %+v", tt.expectedError, resp)
			}

			if h.store.Saves() != savesBefore {
				t.Error("Rejected vote should not write to the store")
			}
			if got := testutil.ToFloat64(h.metrics.Votes.WithLabelValues(tt.metricLabel)); got != 1 {
				t.Errorf("Expected 1 %s vote metric, got %v", tt.metricLabel, got)
			}
		})
	}
}

func TestVoteTrailingData(t *testing.T) {
	h := setupHandlers(t)
	p := tu.CreateTestPoll(t, h.repo, "Q?", "A", "B")
	savesBefore := h.store.Saves()

	req := httptest.NewRequest("POST", "/api/polls/"+p.ID+"/vote", strings.NewReader(`{"option_index":0}garbage`))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range tu.VoterHeaders("browser") {
		req.Header.Set(k, v)
	}
	req.SetPathValue("id", p.ID)
	w := httptest.NewRecorder()
	h.voting.Vote(w, req)

	tu.AssertStatus(t, w, http.StatusBadRequest)
	var resp models.ErrorResponse
	tu.AssertJSON(t, w, &resp)
	if resp.Error != "Invalid option index" {
		t.Errorf("Expected 'Invalid option index', got %+v", resp)
	}
	if h.store.Saves() != savesBefore {
		t.Error("Malformed vote should not write to the store")
	}
}

func TestVoteTwice(t *testing.T) {
	h := setupHandlers(t)
	p := tu.CreateTestPoll(t, h.repo, "Q?", "A", "B")

	w := vote(t, h, p.ID, map[string]any{"option_index": 0}, "same-browser")
	tu.AssertStatus(t, w, http.StatusOK)

	// Second attempt with a different option from the same identity
	w = vote(t, h, p.ID, map[string]any{"option_index": 1}, "same-browser")
	tu.AssertStatus(t, w, http.StatusConflict)

	var resp models.ErrorResponse
	tu.AssertJSON(t, w, &resp)
	if resp.Error != "You have already voted on this poll" {
		t.Errorf("Unexpected error %q", resp.Error)
	}

	stored, _ := h.repo.Get(context.Background(), p.ID)
	if stored.TotalVotes() != 1 {
		t.Errorf("Expected total 1, got %d", stored.TotalVotes())
	}
	if got := testutil.ToFloat64(h.metrics.Votes.WithLabelValues(metrics.VoteAlreadyVoted)); got != 1 {
		t.Errorf("Expected 1 already_voted metric, got %v", got)
	}

	// A different browser on the same address is a different voter
	w = vote(t, h, p.ID, map[string]any{"option_index": 1}, "other-browser")
	tu.AssertStatus(t, w, http.StatusOK)
}

func TestVoteStoreFailure(t *testing.T) {
	h := setupHandlers(t)
	p := tu.CreateTestPoll(t, h.repo, "Q?", "A", "B")

	h.store.FailSaves(errors.New("disk full"))
	w := vote(t, h, p.ID, map[string]any{"option_index": 0}, "browser")
	tu.AssertStatus(t, w, http.StatusInternalServerError)

	var resp models.ErrorResponse
	tu.AssertJSON(t, w, &resp)
	if strings.Contains(resp.Error, "disk full") {
		t.Errorf("Internal error detail leaked: %q", resp.Error)
	}

	// Nothing was committed, so the same voter can retry
	h.store.FailSaves(nil)
	w = vote(t, h, p.ID, map[string]any{"option_index": 0}, "browser")
	tu.AssertStatus(t, w, http.StatusOK)

	if got := testutil.ToFloat64(h.metrics.Votes.WithLabelValues(metrics.VoteError)); got != 1 {
		t.Errorf("Expected 1 error vote metric, got %v", got)
	}
	if got := testutil.ToFloat64(h.metrics.StoreFailures); got != 1 {
		t.Errorf("Expected 1 store failure, got %v", got)
	}
}
