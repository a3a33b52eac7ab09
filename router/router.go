// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/danielhkuo/quick-poll/auth"
	"github.com/danielhkuo/quick-poll/cliparse"
	"github.com/danielhkuo/quick-poll/handlers"
	"github.com/danielhkuo/quick-poll/ledger"
	"github.com/danielhkuo/quick-poll/metrics"
	"github.com/danielhkuo/quick-poll/middleware"
	"github.com/danielhkuo/quick-poll/poll"
)

func NewRouter(repo *poll.Repository, cfg cliparse.Config, m *metrics.Registry) http.Handler {
	mux := http.NewServeMux()

	resolver := auth.RemoteAgentResolver{TrustProxy: cfg.TrustProxy, Salt: cfg.IdentitySalt}
	creds := auth.Credentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword}

	// Initialize handlers
	adminHandler := handlers.NewAdminHandler(creds, m)
	pollHandler := handlers.NewPollHandler(repo, m)
	resultsHandler := handlers.NewResultsHandler(repo, resolver, m)
	votingHandler := handlers.NewVotingHandler(ledger.New(repo), resolver, m)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("GET /metrics", m.Handler())

	mux.HandleFunc("POST /api/admin/login", middleware.WithLogging(adminHandler.Login))

	// Poll management (admin operations)
	mux.HandleFunc("POST /api/polls", middleware.WithLogging(middleware.RequireAdmin(creds, pollHandler.CreatePoll)))
	mux.HandleFunc("DELETE /api/polls/{id}", middleware.WithLogging(middleware.RequireAdmin(creds, pollHandler.DeletePoll)))

	// Public reads and voting
	mux.HandleFunc("GET /api/polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("GET /api/polls/{id}", middleware.WithLogging(resultsHandler.GetPoll))
	mux.HandleFunc("POST /api/polls/{id}/vote", middleware.WithLogging(votingHandler.Vote))

	// Unknown API paths get JSON, not the frontend
	mux.HandleFunc("GET /api/", func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	})

	// Root endpoint
	if cfg.StaticDir != "" {
		mux.Handle("GET /", spaHandler(cfg.StaticDir))
	} else {
		mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("quick-poll API v1"))
		})
	}

	return middleware.CORS(cfg.AllowedOrigins, mux)
}

// spaHandler serves files from dir and falls back to index.html for paths
// that do not name a file, so client-side routes load the app.
func spaHandler(dir string) http.Handler {
	fileServer := http.FileServer(http.Dir(dir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		info, err := os.Stat(name)
		if err != nil || (info.IsDir() && r.URL.Path != "/") {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}
