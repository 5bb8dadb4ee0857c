package comm

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Handler processes the content of one inbound request kind and returns the
// response content.
type Handler func(content map[string]any) (map[string]any, error)

// Manager coordinates agent-to-agent requests for one agent address.
// All methods are safe for concurrent use.
type Manager struct {
	address string

	mu             sync.RWMutex
	pending        map[string]AgentRequest
	completed      []CompletedExchange
	collaborations map[string]*Collaboration
	shares         []KnowledgeShare
	handlers       map[MessageType]Handler
	peers          map[string]*Peer
}

// NewManager creates a communication manager for the given agent address.
func NewManager(address string) *Manager {
	return &Manager{
		address:        address,
		pending:        make(map[string]AgentRequest),
		collaborations: make(map[string]*Collaboration),
		handlers:       make(map[MessageType]Handler),
		peers:          make(map[string]*Peer),
	}
}

// Address returns the agent address this manager speaks for.
func (m *Manager) Address() string {
	return m.address
}

// RegisterHandler installs the handler for a message type, replacing any
// previous registration.
func (m *Manager) RegisterHandler(t MessageType, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[t] = h
}

// CreateRequest builds an outbound request and tracks it as pending until a
// response is created for it.
func (m *Manager) CreateRequest(receiver string, t MessageType, content map[string]any, priority string, requiresResponse bool) AgentRequest {
	if priority == "" {
		priority = PriorityNormal
	}

	req := AgentRequest{
		RequestID:        uuid.NewString(),
		SenderAgent:      m.address,
		ReceiverAgent:    receiver,
		MessageType:      t,
		Content:          content,
		Priority:         priority,
		Timestamp:        time.Now().UTC(),
		RequiresResponse: requiresResponse,
	}

	m.mu.Lock()
	m.pending[req.RequestID] = req
	m.mu.Unlock()

	return req
}

// CreateResponse builds a response to a request. If the request id is in the
// pending map it moves to the completed log; responses to requests this
// manager never initiated leave the log untouched.
func (m *Manager) CreateResponse(req AgentRequest, status string, content map[string]any) AgentResponse {
	resp := AgentResponse{
		ResponseID:    uuid.NewString(),
		RequestID:     req.RequestID,
		SenderAgent:   m.address,
		ReceiverAgent: req.SenderAgent,
		Status:        status,
		Content:       content,
		Timestamp:     time.Now().UTC(),
	}

	m.mu.Lock()
	if _, ok := m.pending[req.RequestID]; ok {
		delete(m.pending, req.RequestID)
		m.completed = append(m.completed, CompletedExchange{Request: req, Response: resp})
	}
	m.mu.Unlock()

	return resp
}

// Dispatch routes an inbound request to its registered handler. A missing
// handler or a handler error both yield an error-status response; the
// dispatcher itself never fails.
func (m *Manager) Dispatch(req AgentRequest) AgentResponse {
	m.mu.RLock()
	handler, ok := m.handlers[req.MessageType]
	m.mu.RUnlock()

	if !ok {
		return m.CreateResponse(req, StatusError, map[string]any{
			"error": fmt.Sprintf("No handler for message type: %s", req.MessageType),
		})
	}

	content, err := handler(req.Content)
	if err != nil {
		return m.CreateResponse(req, StatusError, map[string]any{"error": err.Error()})
	}
	return m.CreateResponse(req, StatusSuccess, content)
}

// InitiateCollaboration starts tracking an active collaboration with other
// agents. A zero deadline means the collaboration has no explicit deadline.
func (m *Manager) InitiateCollaboration(targets []string, task string, capabilities []string, deadline time.Time) Collaboration {
	collab := Collaboration{
		CollaborationID:      uuid.NewString(),
		InitiatorAgent:       m.address,
		TargetAgents:         targets,
		TaskDescription:      task,
		RequiredCapabilities: capabilities,
		Deadline:             deadline,
		State:                CollaborationActive,
		CreatedAt:            time.Now().UTC(),
	}

	m.mu.Lock()
	m.collaborations[collab.CollaborationID] = &collab
	m.mu.Unlock()

	return collab
}

// CompleteCollaboration marks an active collaboration completed. It returns
// false for unknown ids and for collaborations no longer active.
func (m *Manager) CompleteCollaboration(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	collab, ok := m.collaborations[id]
	if !ok || collab.State != CollaborationActive {
		return false
	}
	collab.State = CollaborationCompleted
	return true
}

// CollaborationStatus returns a snapshot of one collaboration.
func (m *Manager) CollaborationStatus(id string) (Collaboration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	collab, ok := m.collaborations[id]
	if !ok {
		return Collaboration{}, false
	}
	return *collab, true
}

// ExpireCollaborations transitions active collaborations past their deadline
// to expired. Collaborations without a deadline expire once maxAge has
// elapsed since creation; maxAge zero disables that fallback. Returns the
// number of collaborations expired by this sweep.
func (m *Manager) ExpireCollaborations(now time.Time, maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	expired := 0
	for _, collab := range m.collaborations {
		if collab.State != CollaborationActive {
			continue
		}
		switch {
		case !collab.Deadline.IsZero():
			if now.After(collab.Deadline) {
				collab.State = CollaborationExpired
				expired++
			}
		case maxAge > 0:
			if now.Sub(collab.CreatedAt) > maxAge {
				collab.State = CollaborationExpired
				expired++
			}
		}
	}
	return expired
}

// ShareKnowledge records a knowledge payload shared with other agents.
func (m *Manager) ShareKnowledge(targets []string, knowledgeType string, content map[string]any) KnowledgeShare {
	share := KnowledgeShare{
		ShareID:       uuid.NewString(),
		SourceAgent:   m.address,
		TargetAgents:  targets,
		KnowledgeType: knowledgeType,
		Content:       content,
		Timestamp:     time.Now().UTC(),
	}

	m.mu.Lock()
	m.shares = append(m.shares, share)
	m.mu.Unlock()

	return share
}

// RegisterPeer records a connected agent, updating last-seen on repeats.
func (m *Manager) RegisterPeer(address string, info map[string]any) {
	now := time.Now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()

	if peer, ok := m.peers[address]; ok {
		peer.Info = info
		peer.LastSeen = now
		return
	}
	m.peers[address] = &Peer{
		Address:      address,
		Info:         info,
		RegisteredAt: now,
		LastSeen:     now,
	}
}

// Peers returns a snapshot of all connected agents.
func (m *Manager) Peers() []Peer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	peers := make([]Peer, 0, len(m.peers))
	for _, p := range m.peers {
		peers = append(peers, *p)
	}
	return peers
}

// FindAgentsByCapability returns addresses of peers advertising a capability.
func (m *Manager) FindAgentsByCapability(capability string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []string
	for address, peer := range m.peers {
		for _, c := range stringSlice(peer.Info["capabilities"]) {
			if c == capability {
				matches = append(matches, address)
				break
			}
		}
	}
	return matches
}

// Stats returns current communication counters. Only active collaborations
// are counted.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	active := 0
	for _, collab := range m.collaborations {
		if collab.State == CollaborationActive {
			active++
		}
	}

	return Stats{
		PendingRequests:      len(m.pending),
		CompletedRequests:    len(m.completed),
		ActiveCollaborations: active,
		ConnectedAgents:      len(m.peers),
		KnowledgeShares:      len(m.shares),
	}
}
