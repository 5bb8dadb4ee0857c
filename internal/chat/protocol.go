// Package chat implements the chat protocol layer: two-party sessions
// between a student and the agent, a session manager, and the WebSocket
// chat endpoint.
package chat

import "time"

// Message is one chat-protocol message within a session.
type Message struct {
	Sender      string         `json:"sender"`
	Receiver    string         `json:"receiver"`
	MessageID   string         `json:"message_id"`
	Content     string         `json:"content"`
	Timestamp   time.Time      `json:"timestamp"`
	MessageType string         `json:"message_type"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Session is a two-party conversation between a user and the agent.
type Session struct {
	SessionID    string    `json:"session_id"`
	UserAddress  string    `json:"user_address"`
	AgentAddress string    `json:"agent_address"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	IsActive     bool      `json:"is_active"`
}

// Summary is a compact view of one session.
type Summary struct {
	SessionID       string    `json:"session_id"`
	UserAddress     string    `json:"user_address"`
	AgentAddress    string    `json:"agent_address"`
	MessageCount    int       `json:"message_count"`
	CreatedAt       time.Time `json:"created_at"`
	LastActivity    time.Time `json:"last_activity"`
	IsActive        bool      `json:"is_active"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// Profile describes this agent for discovery.
type Profile struct {
	AgentAddress       string   `json:"agent_address"`
	AgentName          string   `json:"agent_name"`
	Description        string   `json:"description"`
	Capabilities       []string `json:"capabilities"`
	SupportedProtocols []string `json:"supported_protocols"`
	Version            string   `json:"version"`
	Author             string   `json:"author"`
	Tags               []string `json:"tags"`
}

// defaultProfile builds the discovery profile for this agent.
func defaultProfile(agentAddress, agentName string) Profile {
	return Profile{
		AgentAddress: agentAddress,
		AgentName:    agentName,
		Description: "An autonomous educational tutor agent that helps students understand " +
			"mathematical and programming concepts through natural language interaction.",
		Capabilities: []string{
			"answer_questions",
			"explain_concepts",
			"provide_practice_problems",
			"track_student_progress",
			"suggest_learning_resources",
			"agent_collaboration",
		},
		SupportedProtocols: []string{
			"chat_protocol",
			"uagent_communication",
			"asi_one_compatible",
		},
		Version: "1.0.0",
		Author:  "ASI Alliance",
		Tags: []string{
			"education",
			"tutoring",
			"mathematics",
			"programming",
			"learning",
			"asi_compatible",
		},
	}
}

// Map renders the profile as a generic map for discovery registration.
func (p Profile) Map() map[string]any {
	return map[string]any{
		"agent_address":       p.AgentAddress,
		"agent_name":          p.AgentName,
		"description":         p.Description,
		"capabilities":        p.Capabilities,
		"supported_protocols": p.SupportedProtocols,
		"version":             p.Version,
		"author":              p.Author,
		"tags":                p.Tags,
	}
}
