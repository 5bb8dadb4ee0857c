package chat

import (
	"strings"
	"testing"
	"time"
)

const agentAddr = "agent1qtestaddress"

func TestManager_CreateSession(t *testing.T) {
	m := NewManager(agentAddr, "EduAgent")
	session := m.CreateSession("anon_user")

	if session.SessionID == "" {
		t.Error("Expected a session id to be assigned")
	}
	if session.UserAddress != "anon_user" {
		t.Errorf("Expected user address 'anon_user', got %q", session.UserAddress)
	}
	if session.AgentAddress != agentAddr {
		t.Errorf("Expected agent address %q, got %q", agentAddr, session.AgentAddress)
	}
	if !session.IsActive {
		t.Error("Expected new session to be active")
	}
	if len(session.Messages) != 0 {
		t.Errorf("Expected no messages in new session, got %d", len(session.Messages))
	}

	got, ok := m.Session(session.SessionID)
	if !ok {
		t.Fatal("Expected session to be retrievable")
	}
	if got.SessionID != session.SessionID {
		t.Errorf("Expected session id %q, got %q", session.SessionID, got.SessionID)
	}
}

func TestManager_SessionNotFound(t *testing.T) {
	m := NewManager(agentAddr, "EduAgent")

	if _, ok := m.Session("missing"); ok {
		t.Error("Expected lookup of unknown session to fail")
	}
	if history := m.SessionHistory("missing"); history != nil {
		t.Errorf("Expected nil history for unknown session, got %v", history)
	}
	if _, ok := m.AddMessage("missing", "someone", "hello", "text"); ok {
		t.Error("Expected AddMessage on unknown session to fail")
	}
	if m.CloseSession("missing") {
		t.Error("Expected CloseSession on unknown session to fail")
	}
	if _, ok := m.SessionSummary("missing"); ok {
		t.Error("Expected summary of unknown session to fail")
	}
}

func TestManager_AddMessageReceiverIsOtherParty(t *testing.T) {
	m := NewManager(agentAddr, "EduAgent")
	session := m.CreateSession("anon_user")

	fromUser, ok := m.AddMessage(session.SessionID, "anon_user", "What is algebra?", "")
	if !ok {
		t.Fatal("Expected message from user to be accepted")
	}
	if fromUser.Receiver != agentAddr {
		t.Errorf("Expected user message to be addressed to the agent, got %q", fromUser.Receiver)
	}
	if fromUser.MessageType != "text" {
		t.Errorf("Expected default message type 'text', got %q", fromUser.MessageType)
	}

	fromAgent, ok := m.AddMessage(session.SessionID, agentAddr, "Algebra is...", "explanation")
	if !ok {
		t.Fatal("Expected message from agent to be accepted")
	}
	if fromAgent.Receiver != "anon_user" {
		t.Errorf("Expected agent message to be addressed to the user, got %q", fromAgent.Receiver)
	}
	if fromAgent.MessageType != "explanation" {
		t.Errorf("Expected message type 'explanation', got %q", fromAgent.MessageType)
	}

	history := m.SessionHistory(session.SessionID)
	if len(history) != 2 {
		t.Fatalf("Expected 2 messages in history, got %d", len(history))
	}
	if history[0].MessageID == history[1].MessageID {
		t.Error("Expected distinct message ids")
	}
	if history[0].Content != "What is algebra?" {
		t.Errorf("Expected history to keep arrival order, got %q first", history[0].Content)
	}
}

func TestManager_HistoryIsACopy(t *testing.T) {
	m := NewManager(agentAddr, "EduAgent")
	session := m.CreateSession("anon_user")
	m.AddMessage(session.SessionID, "anon_user", "original", "text")

	history := m.SessionHistory(session.SessionID)
	history[0].Content = "mutated"

	again := m.SessionHistory(session.SessionID)
	if again[0].Content != "original" {
		t.Errorf("Expected stored message to be unchanged, got %q", again[0].Content)
	}
}

func TestManager_CloseSession(t *testing.T) {
	m := NewManager(agentAddr, "EduAgent")
	first := m.CreateSession("user_a")
	m.CreateSession("user_b")

	if m.ActiveSessionCount() != 2 {
		t.Fatalf("Expected 2 active sessions, got %d", m.ActiveSessionCount())
	}

	if !m.CloseSession(first.SessionID) {
		t.Fatal("Expected close of existing session to succeed")
	}
	if m.ActiveSessionCount() != 1 {
		t.Errorf("Expected 1 active session after close, got %d", m.ActiveSessionCount())
	}

	closed, _ := m.Session(first.SessionID)
	if closed.IsActive {
		t.Error("Expected closed session to be inactive")
	}
}

func TestManager_SessionSummary(t *testing.T) {
	m := NewManager(agentAddr, "EduAgent")
	session := m.CreateSession("anon_user")
	m.AddMessage(session.SessionID, "anon_user", "q1", "text")
	m.AddMessage(session.SessionID, agentAddr, "a1", "explanation")

	summary, ok := m.SessionSummary(session.SessionID)
	if !ok {
		t.Fatal("Expected summary for existing session")
	}
	if summary.MessageCount != 2 {
		t.Errorf("Expected message count 2, got %d", summary.MessageCount)
	}
	if summary.DurationSeconds < 0 {
		t.Errorf("Expected non-negative duration, got %f", summary.DurationSeconds)
	}
	if !summary.IsActive {
		t.Error("Expected summary of open session to be active")
	}
	if summary.LastActivity.Before(summary.CreatedAt) {
		t.Error("Expected last activity at or after creation time")
	}
}

func TestManager_MessageCount(t *testing.T) {
	m := NewManager(agentAddr, "EduAgent")
	a := m.CreateSession("user_a")
	b := m.CreateSession("user_b")

	m.AddMessage(a.SessionID, "user_a", "q", "text")
	m.AddMessage(b.SessionID, "user_b", "q", "text")
	m.AddMessage(b.SessionID, agentAddr, "a", "explanation")

	if m.MessageCount() != 3 {
		t.Errorf("Expected 3 messages across sessions, got %d", m.MessageCount())
	}
}

func TestManager_DiscoveryInfo(t *testing.T) {
	m := NewManager(agentAddr, "EduAgent")
	info := m.DiscoveryInfo()

	endpoints, ok := info["endpoints"].(map[string]string)
	if !ok {
		t.Fatalf("Expected endpoints map, got %T", info["endpoints"])
	}
	for _, name := range []string{"chat", "query", "status"} {
		endpoint := endpoints[name]
		if !strings.HasPrefix(endpoint, "agent://"+agentAddr+"/") {
			t.Errorf("Expected %s endpoint under agent://%s/, got %q", name, agentAddr, endpoint)
		}
	}
	if info["registration_status"] != "active" {
		t.Errorf("Expected registration status 'active', got %v", info["registration_status"])
	}
	if _, ok := info["last_heartbeat"].(time.Time); !ok {
		t.Errorf("Expected last_heartbeat timestamp, got %T", info["last_heartbeat"])
	}
}

func TestDefaultProfile(t *testing.T) {
	m := NewManager(agentAddr, "EduAgent")
	profile := m.Profile()

	if profile.AgentName != "EduAgent" {
		t.Errorf("Expected agent name 'EduAgent', got %q", profile.AgentName)
	}
	if profile.Author != "ASI Alliance" {
		t.Errorf("Expected author 'ASI Alliance', got %q", profile.Author)
	}
	if len(profile.Capabilities) != 6 {
		t.Errorf("Expected 6 capabilities, got %d", len(profile.Capabilities))
	}
	if len(profile.SupportedProtocols) != 3 {
		t.Errorf("Expected 3 protocols, got %d", len(profile.SupportedProtocols))
	}

	asMap := profile.Map()
	if asMap["version"] != "1.0.0" {
		t.Errorf("Expected version '1.0.0', got %v", asMap["version"])
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(agentAddr, "EduAgent")
	session := m.CreateSession("anon_user")

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			m.AddMessage(session.SessionID, "anon_user", "question", "text")
			m.SessionHistory(session.SessionID)
			m.ActiveSessionCount()
			done <- true
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	if m.MessageCount() != 10 {
		t.Errorf("Expected 10 messages, got %d", m.MessageCount())
	}
}
