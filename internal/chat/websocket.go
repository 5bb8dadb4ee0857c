package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"

	"github.com/edulabs-dev/eduagent/internal/domain"
	"github.com/edulabs-dev/eduagent/internal/identity"
)

// Asker answers one student question end to end. An empty sessionID means
// the implementation picks or creates a session itself.
type Asker interface {
	Ask(ctx context.Context, sender, sessionID string, req domain.QuestionRequest) domain.ExplanationResponse
}

// WebSocketHandler serves the interactive chat endpoint. Each connection
// gets its own session; every inbound frame is a JSON QuestionRequest and
// every outbound frame a JSON ExplanationResponse.
type WebSocketHandler struct {
	manager       *Manager
	asker         Asker
	allowedOrigin string
	isDev         bool
	logger        *slog.Logger
}

// NewWebSocketHandler wires the chat endpoint to the session manager and
// the question pipeline.
func NewWebSocketHandler(manager *Manager, asker Asker, allowedOrigin string, isDev bool, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		manager:       manager,
		asker:         asker,
		allowedOrigin: allowedOrigin,
		isDev:         isDev,
		logger:        logger,
	}
}

func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	if h.isDev {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || origin == h.allowedOrigin
}

// HandleChat upgrades the request and runs the chat loop until the client
// disconnects.
func (h *WebSocketHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"}, // origin validated above
	})
	if err != nil {
		h.logger.Error("websocket accept failed", "error", err)
		return
	}
	defer ws.Close(websocket.StatusNormalClosure, "session ended")

	userAddress := identity.UserIDFromContext(r.Context())
	if userAddress == "" {
		userAddress = "anonymous"
	}

	session := h.manager.CreateSession(userAddress)
	h.logger.Info("chat session started",
		"session_id", session.SessionID,
		"user", userAddress,
	)
	defer h.manager.CloseSession(session.SessionID)

	ctx := r.Context()
	greeting := map[string]any{
		"type":       "session_started",
		"session_id": session.SessionID,
		"agent":      h.manager.AgentAddress(),
	}
	if err := writeJSON(ctx, ws, greeting); err != nil {
		h.logger.Warn("chat greeting failed", "session_id", session.SessionID, "error", err)
		return
	}

	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				h.logger.Info("chat session closed by client", "session_id", session.SessionID)
			} else if ctx.Err() == nil {
				h.logger.Warn("chat read failed", "session_id", session.SessionID, "error", err)
			}
			return
		}

		var req domain.QuestionRequest
		if err := json.Unmarshal(data, &req); err != nil {
			resp := domain.ErrorExplanation(req, err)
			if err := writeJSON(ctx, ws, resp); err != nil {
				return
			}
			continue
		}
		req.Normalize()
		if req.Question == "" {
			resp := domain.ErrorExplanation(req, errors.New("question must not be empty"))
			if err := writeJSON(ctx, ws, resp); err != nil {
				return
			}
			continue
		}

		resp := h.asker.Ask(ctx, userAddress, session.SessionID, req)
		if err := writeJSON(ctx, ws, resp); err != nil {
			h.logger.Warn("chat write failed", "session_id", session.SessionID, "error", err)
			return
		}
	}
}

func writeJSON(ctx context.Context, ws *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return ws.Write(ctx, websocket.MessageText, data)
}
