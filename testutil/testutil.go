// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quick-poll/cliparse"
	"github.com/danielhkuo/quick-poll/models"
	"github.com/danielhkuo/quick-poll/poll"
	"github.com/danielhkuo/quick-poll/store"
)

// Admin credentials used by GetTestConfig
const (
	TestAdminUser     = "admin"
	TestAdminPassword = "test-password"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           5000,
		StoreType:      cliparse.StoreMemory,
		AdminUsername:  TestAdminUser,
		AdminPassword:  TestAdminPassword,
		AllowedOrigins: []string{"*"},
		LogFormat:      "text",
	}
}

// SetupTestRepository returns a repository backed by a fresh in-memory store.
// The store is returned so tests can inject failures and count saves.
func SetupTestRepository(t *testing.T) (*poll.Repository, *store.MemoryStore) {
	t.Helper()

	s := store.NewMemoryStore()
	return poll.NewRepository(s), s
}

// CreateTestPoll creates a poll and fails the test on error
func CreateTestPoll(t *testing.T, repo *poll.Repository, question string, options ...string) models.Poll {
	t.Helper()

	p, err := repo.Create(context.Background(), question, options)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return p
}

// AdminHeaders returns headers carrying valid Basic credentials for GetTestConfig
func AdminHeaders() map[string]string {
	return map[string]string{"Authorization": BasicAuth(TestAdminUser, TestAdminPassword)}
}

// BasicAuth builds an Authorization header value
func BasicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// VoterHeaders returns headers that identify a distinct voter. Combine with
// a RemoteAddr to vary the network origin.
func VoterHeaders(agent string) map[string]string {
	return map[string]string{"User-Agent": agent}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
