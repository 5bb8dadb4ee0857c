// Package api provides HTTP handlers for the EduAgent API.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/edulabs-dev/eduagent/internal/achievements"
	"github.com/edulabs-dev/eduagent/internal/agent"
	"github.com/edulabs-dev/eduagent/internal/chat"
	"github.com/edulabs-dev/eduagent/internal/comm"
	"github.com/edulabs-dev/eduagent/internal/config"
)

// maxRequestBodySize caps inbound JSON payloads at 1 MiB.
const maxRequestBodySize = 1 << 20

// Handler serves the agent's REST endpoints.
type Handler struct {
	cfg          *config.Config
	svc          *agent.Service
	sessions     *chat.Manager
	comm         *comm.Manager
	achievements *achievements.System
	progress     *agent.ProgressStore
	limiter      *RateLimiter
}

// NewHandler creates a new Handler with common dependencies. The rate limiter
// is sized from the config's rate limit settings.
func NewHandler(cfg *config.Config, svc *agent.Service, sessions *chat.Manager, cm *comm.Manager, achievementSystem *achievements.System, progress *agent.ProgressStore) *Handler {
	return &Handler{
		cfg:          cfg,
		svc:          svc,
		sessions:     sessions,
		comm:         cm,
		achievements: achievementSystem,
		progress:     progress,
		limiter:      NewRateLimiter(cfg.RateLimit.RequestsPerWindow, cfg.RateLimit.WindowDuration),
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
