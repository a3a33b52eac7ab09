// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/polls", middleware.WithLogging(handler))

Logs request start at debug level and completion (status, duration_ms) at info.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins, mux),
	}

Built on github.com/rs/cors. Allows GET, POST, DELETE and OPTIONS with
headers Content-Type and Authorization. An origin list of "*" allows any
origin.

# Admin Guard

Admin routes require HTTP Basic credentials:

	mux.HandleFunc("POST /api/polls", middleware.RequireAdmin(creds, handler))

Missing or wrong credentials get 401 with "Admin privileges required".

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Error bodies have the shape {"success": false, "error": "message"}.

Parse JSON request bodies (capped at 1 MiB):

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
*/
package middleware
