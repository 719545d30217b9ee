package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"anganwadi/core/auth"
	"anganwadi/logger"
	"anganwadi/model"
)

// AdminMiddleware guards a route behind the shared admin secret. The
// request proceeds only when the adminkey header is present and exactly
// equals the configured secret; everything else short-circuits with 403.
func (h *APIHandler) AdminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminKey := r.Header.Get("adminkey")

		if adminKey == "" || h.cfg.AdminPass == "" ||
			subtle.ConstantTimeCompare([]byte(adminKey), []byte(h.cfg.AdminPass)) != 1 {
			logger.Warn("Rejected request without valid admin key",
				logger.String("method", r.Method),
				logger.String("url", r.URL.String()),
				logger.String("remoteAddr", r.RemoteAddr))
			respondError(w, http.StatusForbidden, "Unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	}
}

// AdminLoginHandler handles admin login requests. On success the admin
// secret is returned as the adminKey bearer credential for subsequent
// protected-route headers. No session token, no expiry, no rate
// limiting; a signed-token scheme is the planned follow-up once the
// frontend can migrate off the shared key.
func (h *APIHandler) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	var req model.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode login request", logger.ErrorField(err))
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Email and Password required",
		})
		return
	}

	if req.Email == "" || req.Password == "" {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Email and Password required",
		})
		return
	}

	if !strings.HasSuffix(req.Email, "@gmail.com") {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Only Gmail accounts allowed",
		})
		return
	}

	if req.Email != h.cfg.AdminEmail || !auth.CheckPasswordHash(req.Password, h.adminPassHash) {
		logger.Warn("Failed admin login attempt",
			logger.String("email", req.Email),
			logger.String("remoteAddr", r.RemoteAddr))
		respondJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"message": "Invalid email or password",
		})
		return
	}

	logger.Info("Admin logged in", logger.String("email", req.Email))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"adminKey": h.cfg.AdminPass,
	})
}
