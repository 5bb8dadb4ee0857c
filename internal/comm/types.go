// Package comm implements agent-to-agent communication: typed message
// envelopes, a dispatch table keyed by message type, collaboration and
// knowledge-share tracking, and a peer discovery service.
package comm

import "time"

// MessageType identifies the kind of an agent-to-agent message.
type MessageType string

const (
	TypeQuery           MessageType = "query"
	TypeResponse        MessageType = "response"
	TypeCollaboration   MessageType = "collaboration"
	TypeKnowledgeShare  MessageType = "knowledge_share"
	TypeResourceRequest MessageType = "resource_request"
	TypeResourceProvide MessageType = "resource_provide"
	TypeStatus          MessageType = "status"
)

// Known returns true if t is one of the defined message types.
func (t MessageType) Known() bool {
	switch t {
	case TypeQuery, TypeResponse, TypeCollaboration, TypeKnowledgeShare,
		TypeResourceRequest, TypeResourceProvide, TypeStatus:
		return true
	}
	return false
}

// Request priorities.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Response statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusPending = "pending"
)

// AgentRequest is a request from one agent to another.
type AgentRequest struct {
	RequestID        string         `json:"request_id"`
	SenderAgent      string         `json:"sender_agent"`
	ReceiverAgent    string         `json:"receiver_agent"`
	MessageType      MessageType    `json:"message_type"`
	Content          map[string]any `json:"content"`
	Priority         string         `json:"priority"`
	Timestamp        time.Time      `json:"timestamp"`
	RequiresResponse bool           `json:"requires_response"`
}

// AgentResponse answers exactly one AgentRequest, referenced by request id.
type AgentResponse struct {
	ResponseID    string         `json:"response_id"`
	RequestID     string         `json:"request_id"`
	SenderAgent   string         `json:"sender_agent"`
	ReceiverAgent string         `json:"receiver_agent"`
	Status        string         `json:"status"`
	Content       map[string]any `json:"content"`
	Timestamp     time.Time      `json:"timestamp"`
}

// CompletedExchange pairs a request with the response that settled it.
type CompletedExchange struct {
	Request  AgentRequest  `json:"request"`
	Response AgentResponse `json:"response"`
}

// CollaborationState is the lifecycle state of a collaboration.
type CollaborationState string

const (
	CollaborationActive    CollaborationState = "active"
	CollaborationCompleted CollaborationState = "completed"
	CollaborationExpired   CollaborationState = "expired"
)

// Collaboration is a multi-agent task initiated by this agent.
type Collaboration struct {
	CollaborationID      string             `json:"collaboration_id"`
	InitiatorAgent       string             `json:"initiator_agent"`
	TargetAgents         []string           `json:"target_agents"`
	TaskDescription      string             `json:"task_description"`
	RequiredCapabilities []string           `json:"required_capabilities"`
	Deadline             time.Time          `json:"deadline"`
	Metadata             map[string]any     `json:"metadata,omitempty"`
	State                CollaborationState `json:"state"`
	CreatedAt            time.Time          `json:"created_at"`
}

// KnowledgeShare is a knowledge payload shared with other agents.
type KnowledgeShare struct {
	ShareID       string         `json:"share_id"`
	SourceAgent   string         `json:"source_agent"`
	TargetAgents  []string       `json:"target_agents"`
	KnowledgeType string         `json:"knowledge_type"`
	Content       map[string]any `json:"content"`
	Timestamp     time.Time      `json:"timestamp"`
}

// Peer is a connected agent known to the manager.
type Peer struct {
	Address      string         `json:"address"`
	Info         map[string]any `json:"info"`
	RegisteredAt time.Time      `json:"registered_at"`
	LastSeen     time.Time      `json:"last_seen"`
}

// Stats summarizes the manager's communication state.
type Stats struct {
	PendingRequests      int `json:"pending_requests"`
	CompletedRequests    int `json:"completed_requests"`
	ActiveCollaborations int `json:"active_collaborations"`
	ConnectedAgents      int `json:"connected_agents"`
	KnowledgeShares      int `json:"knowledge_shares"`
}

// stringSlice coerces a decoded JSON list into []string.
func stringSlice(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
