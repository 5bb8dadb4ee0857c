package comm

import (
	"sync"
	"time"
)

// Registration is one agent's entry in the discovery registry.
type Registration struct {
	Address      string         `json:"address"`
	Profile      map[string]any `json:"profile"`
	RegisteredAt time.Time      `json:"registered_at"`
	Status       string         `json:"status"`
	LastUpdated  time.Time      `json:"last_updated"`
}

// Discovery tracks agent profiles for capability and tag lookup.
// Re-registering an address replaces its profile in place.
type Discovery struct {
	mu     sync.RWMutex
	agents map[string]*Registration
	order  []string // registration order for stable listing
}

// NewDiscovery creates an empty discovery service.
func NewDiscovery() *Discovery {
	return &Discovery{
		agents: make(map[string]*Registration),
	}
}

// Register adds or replaces an agent's profile and marks it active.
func (d *Discovery) Register(address string, profile map[string]any) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if reg, ok := d.agents[address]; ok {
		reg.Profile = profile
		reg.Status = "active"
		reg.LastUpdated = time.Now().UTC()
		return
	}
	d.agents[address] = &Registration{
		Address:      address,
		Profile:      profile,
		RegisteredAt: time.Now().UTC(),
		Status:       "active",
	}
	d.order = append(d.order, address)
}

// Discover returns agents matching a capability, or a tag when capability is
// empty, or every registered agent when both are empty. Results are in
// registration order.
func (d *Discovery) Discover(capability, tag string) []Registration {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var results []Registration
	for _, address := range d.order {
		reg := d.agents[address]
		switch {
		case capability != "":
			if containsString(stringSlice(reg.Profile["capabilities"]), capability) {
				results = append(results, *reg)
			}
		case tag != "":
			if containsString(stringSlice(reg.Profile["tags"]), tag) {
				results = append(results, *reg)
			}
		default:
			results = append(results, *reg)
		}
	}
	return results
}

// Profile returns the registered profile for an address.
func (d *Discovery) Profile(address string) (map[string]any, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	reg, ok := d.agents[address]
	if !ok {
		return nil, false
	}
	return reg.Profile, true
}

// UpdateStatus sets an agent's status. The change is visible through both
// Profile lookups and Discover listings.
func (d *Discovery) UpdateStatus(address, status string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	reg, ok := d.agents[address]
	if !ok {
		return false
	}
	reg.Status = status
	reg.LastUpdated = time.Now().UTC()
	return true
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
