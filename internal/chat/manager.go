package chat

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager tracks chat sessions and the running message log.
type Manager struct {
	agentAddress string
	agentName    string
	profile      Profile

	mu       sync.RWMutex
	sessions map[string]*Session
	history  []Message
}

// NewManager creates a session manager for the agent at agentAddress.
func NewManager(agentAddress, agentName string) *Manager {
	return &Manager{
		agentAddress: agentAddress,
		agentName:    agentName,
		profile:      defaultProfile(agentAddress, agentName),
		sessions:     make(map[string]*Session),
	}
}

// AgentAddress returns the agent side of every session.
func (m *Manager) AgentAddress() string {
	return m.agentAddress
}

// Profile returns the discovery profile for this agent.
func (m *Manager) Profile() Profile {
	return m.profile
}

// CreateSession opens a new active session between userAddress and the agent.
func (m *Manager) CreateSession(userAddress string) Session {
	now := time.Now().UTC()
	session := &Session{
		SessionID:    uuid.NewString(),
		UserAddress:  userAddress,
		AgentAddress: m.agentAddress,
		Messages:     []Message{},
		CreatedAt:    now,
		LastActivity: now,
		IsActive:     true,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.SessionID] = session
	return *session
}

// Session returns a snapshot of the session with the given id.
func (m *Manager) Session(sessionID string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return Session{}, false
	}
	return snapshotSession(session), true
}

// AddMessage appends a message to the session. The receiver is always the
// other party: messages from the agent go to the session user and messages
// from anyone else go to the agent. Returns false for unknown sessions.
func (m *Manager) AddMessage(sessionID, sender, content, messageType string) (Message, bool) {
	if messageType == "" {
		messageType = "text"
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return Message{}, false
	}

	receiver := m.agentAddress
	if sender == m.agentAddress {
		receiver = session.UserAddress
	}

	msg := Message{
		Sender:      sender,
		Receiver:    receiver,
		MessageID:   uuid.NewString(),
		Content:     content,
		Timestamp:   time.Now().UTC(),
		MessageType: messageType,
	}
	session.Messages = append(session.Messages, msg)
	session.LastActivity = msg.Timestamp
	m.history = append(m.history, msg)
	return msg, true
}

// SessionHistory returns the messages of a session in arrival order.
// Unknown sessions yield nil.
func (m *Manager) SessionHistory(sessionID string) []Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}
	history := make([]Message, len(session.Messages))
	copy(history, session.Messages)
	return history
}

// CloseSession marks a session inactive. Returns false when the session
// does not exist.
func (m *Manager) CloseSession(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return false
	}
	session.IsActive = false
	session.LastActivity = time.Now().UTC()
	return true
}

// ActiveSessionCount returns how many sessions are still active.
func (m *Manager) ActiveSessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, session := range m.sessions {
		if session.IsActive {
			count++
		}
	}
	return count
}

// MessageCount returns the total number of messages across all sessions.
func (m *Manager) MessageCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.history)
}

// SessionSummary returns a compact view of one session.
func (m *Manager) SessionSummary(sessionID string) (Summary, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return Summary{}, false
	}
	return Summary{
		SessionID:       session.SessionID,
		UserAddress:     session.UserAddress,
		AgentAddress:    session.AgentAddress,
		MessageCount:    len(session.Messages),
		CreatedAt:       session.CreatedAt,
		LastActivity:    session.LastActivity,
		IsActive:        session.IsActive,
		DurationSeconds: session.LastActivity.Sub(session.CreatedAt).Seconds(),
	}, true
}

// DiscoveryInfo describes the agent and its chat endpoints for discovery
// services.
func (m *Manager) DiscoveryInfo() map[string]any {
	return map[string]any{
		"agent": m.profile,
		"endpoints": map[string]string{
			"chat":   fmt.Sprintf("agent://%s/chat", m.agentAddress),
			"query":  fmt.Sprintf("agent://%s/query", m.agentAddress),
			"status": fmt.Sprintf("agent://%s/status", m.agentAddress),
		},
		"registration_status": "active",
		"last_heartbeat":      time.Now().UTC(),
	}
}

func snapshotSession(session *Session) Session {
	snapshot := *session
	snapshot.Messages = make([]Message, len(session.Messages))
	copy(snapshot.Messages, session.Messages)
	return snapshot
}
