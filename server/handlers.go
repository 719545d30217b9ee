package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"anganwadi/config"
	"anganwadi/core/auth"
	"anganwadi/core/program"
	"anganwadi/logger"
)

// APIHandler handles all API requests.
type APIHandler struct {
	programService *program.Service
	cfg            *config.Config

	// bcrypt hash of the configured admin password, computed once at
	// startup so login never compares plaintext directly.
	adminPassHash string
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(programService *program.Service, cfg *config.Config) (*APIHandler, error) {
	adminPassHash, err := auth.HashPassword(cfg.AdminPass)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &APIHandler{
		programService: programService,
		cfg:            cfg,
		adminPassHash:  adminPassHash,
	}, nil
}

// RootHandler answers the liveness probe at the root path.
func (h *APIHandler) RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "Anganwadi Backend Running")
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", logger.ErrorField(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}
