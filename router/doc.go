// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quick Poll API.

# Route Registration

NewRouter wires handlers onto an http.ServeMux and wraps it in CORS:

	handler := router.NewRouter(repo, cfg, metrics.New())

# Endpoints

Health and metrics:

	GET /health  - Liveness check
	GET /metrics - Prometheus metrics

Admin (HTTP Basic credentials from ADMIN_USERNAME / ADMIN_PASSWORD):

	POST   /api/admin/login - Check credentials
	POST   /api/polls       - Create poll
	DELETE /api/polls/{id}  - Delete poll and its votes

Public:

	GET  /api/polls           - List polls with totals
	GET  /api/polls/{id}      - Poll, tally and the caller's vote
	POST /api/polls/{id}/vote - Cast a vote

Unknown GET paths under /api/ return a JSON 404.

# Frontend

With StaticDir set, GET / serves files from that directory and answers
unknown paths with index.html so client-side routes work. Without it GET /
returns a short banner.

# Voter Identity

The router builds one auth.RemoteAgentResolver from TrustProxy and
IdentitySalt and shares it between the read and vote handlers.
*/
package router
