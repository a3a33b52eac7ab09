// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quick-poll/auth"
	"github.com/danielhkuo/quick-poll/metrics"
	"github.com/danielhkuo/quick-poll/middleware"
	"github.com/danielhkuo/quick-poll/models"
)

type AdminHandler struct {
	creds   auth.Credentials
	metrics *metrics.Registry
}

func NewAdminHandler(creds auth.Credentials, m *metrics.Registry) *AdminHandler {
	return &AdminHandler{creds: creds, metrics: m}
}

// Login handles POST /api/admin/login. It only checks the credentials;
// admin routes take them again as Basic auth on every request.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil || req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	if err := auth.CheckAdmin(req.Username, req.Password, h.creds); err != nil {
		slog.Warn("admin login failed", "remote", r.RemoteAddr)
		writeError(w, h.metrics, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Login successful",
	})
}
