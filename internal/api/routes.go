package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/edulabs-dev/eduagent/internal/achievements"
	"github.com/edulabs-dev/eduagent/internal/comm"
	"github.com/edulabs-dev/eduagent/internal/domain"
	"github.com/edulabs-dev/eduagent/internal/identity"
)

// RegisterRoutes registers the REST endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/agent/info", h.AgentInfo)
		r.Get("/agent/profile", h.AgentProfile)
		r.Get("/agent/stats", h.AgentStats)
		r.Post("/ask", h.AskQuestion)
		r.Get("/concepts", h.Concepts)
		r.Get("/difficulty-levels", h.DifficultyLevels)
		r.Get("/achievements", h.AchievementCatalog)
		r.Get("/health", h.Health)

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", h.SessionSummary)
			r.Get("/history", h.SessionHistory)
			r.Post("/close", h.CloseSession)
		})

		r.Route("/students/{studentID}", func(r chi.Router) {
			r.Get("/progress", h.StudentProgress)
			r.Get("/achievements", h.StudentAchievements)
		})
	})

	// Inbox endpoint for direct agent-to-agent envelopes.
	r.Post("/submit", h.SubmitAgentRequest)
}

// AgentInfo returns the agent's public identity and capabilities.
func (h *Handler) AgentInfo(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"name":    h.cfg.AgentName,
		"address": h.sessions.AgentAddress(),
		"status":  "active",
		"capabilities": []string{
			"answer_questions",
			"explain_concepts",
			"provide_practice_problems",
			"track_student_progress",
		},
	})
}

// AgentProfile returns the discovery payload advertised to other agents.
func (h *Handler) AgentProfile(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.sessions.DiscoveryInfo())
}

// AgentStats reports student, session and communication counters.
func (h *Handler) AgentStats(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"students":        h.progress.Count(),
		"active_sessions": h.sessions.ActiveSessionCount(),
		"total_messages":  h.sessions.MessageCount(),
		"communication":   h.comm.Stats(),
	})
}

// AskQuestion runs the tutoring pipeline for a single question.
func (h *Handler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		userID = "anonymous"
	}
	if !h.limiter.Allow(userID) {
		slog.Warn("Rate limit exceeded", "user_id", userID)
		Error(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req domain.QuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Normalize()

	if strings.TrimSpace(req.Question) == "" {
		Error(w, http.StatusBadRequest, "Question is required")
		return
	}
	if _, err := domain.ParseConceptType(string(req.ConceptType)); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	// An explicit session id continues an existing chat session; otherwise
	// each question gets its own short-lived session.
	sessionID := identity.SessionIDFromContext(r.Context())
	if sessionID != "" {
		if _, ok := h.sessions.Session(sessionID); !ok {
			sessionID = ""
		}
	}

	JSON(w, http.StatusOK, h.svc.Ask(r.Context(), userID, sessionID, req))
}

// Concepts lists the supported concept types.
func (h *Handler) Concepts(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{"concepts": domain.ConceptOptions()})
}

// DifficultyLevels lists the supported difficulty levels.
func (h *Handler) DifficultyLevels(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{"levels": domain.DifficultyOptions()})
}

// AchievementCatalog lists every achievement a student can unlock.
func (h *Handler) AchievementCatalog(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{"achievements": achievements.Catalog()})
}

// Health returns the health status of the agent and its components.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"status":        "healthy",
		"agent_running": true,
		"checks": map[string]string{
			"api":   "ok",
			"chain": h.svc.RecordMode(),
		},
		"knowledge_topics": h.svc.KnowledgeTopics(),
	})
}

// SessionSummary returns aggregate details for one chat session.
func (h *Handler) SessionSummary(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	summary, ok := h.sessions.SessionSummary(sessionID)
	if !ok {
		Error(w, http.StatusNotFound, "session not found")
		return
	}
	JSON(w, http.StatusOK, summary)
}

// SessionHistory returns the messages exchanged in one chat session.
func (h *Handler) SessionHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	history := h.sessions.SessionHistory(sessionID)
	if history == nil {
		Error(w, http.StatusNotFound, "session not found")
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"messages":   history,
	})
}

// CloseSession marks a chat session inactive.
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if !h.sessions.CloseSession(sessionID) {
		Error(w, http.StatusNotFound, "session not found")
		return
	}

	slog.Info("Session closed", "session_id", sessionID)
	JSON(w, http.StatusOK, map[string]string{
		"session_id": sessionID,
		"status":     "closed",
	})
}

// StudentProgress returns the tracked progress for one student.
func (h *Handler) StudentProgress(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	progress, ok := h.progress.Progress(studentID)
	if !ok {
		Error(w, http.StatusNotFound, "student not found")
		return
	}
	JSON(w, http.StatusOK, progress)
}

// StudentAchievements returns the achievements a student has unlocked.
func (h *Handler) StudentAchievements(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	JSON(w, http.StatusOK, map[string]interface{}{
		"student_id":   studentID,
		"achievements": h.achievements.StudentAchievements(studentID),
		"total_points": h.achievements.StudentPoints(studentID),
	})
}

// SubmitAgentRequest accepts an inbound agent-to-agent envelope and returns
// the dispatch result.
func (h *Handler) SubmitAgentRequest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req comm.AgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RequestID == "" || req.SenderAgent == "" {
		Error(w, http.StatusBadRequest, "request_id and sender_agent are required")
		return
	}
	if !req.MessageType.Known() {
		Error(w, http.StatusBadRequest, fmt.Sprintf("unknown message type: %s", req.MessageType))
		return
	}

	slog.Info("Agent request received",
		"request_id", req.RequestID,
		"sender", req.SenderAgent,
		"message_type", req.MessageType,
		"remote_ip", identity.IPFromRequest(r))

	JSON(w, http.StatusOK, h.comm.Dispatch(req))
}
