package comm

import "testing"

func tutorProfile() map[string]any {
	return map[string]any{
		"agent_name":   "EduAgent",
		"capabilities": []string{"answer_questions", "explain_concepts"},
		"tags":         []string{"education", "tutoring"},
	}
}

func TestDiscovery_RegisterAndDiscover(t *testing.T) {
	d := NewDiscovery()
	d.Register("agent1edu", tutorProfile())
	d.Register("agent1quiz", map[string]any{
		"agent_name":   "QuizBot",
		"capabilities": []any{"provide_practice_problems"},
		"tags":         []any{"education", "quizzes"},
	})

	all := d.Discover("", "")
	if len(all) != 2 {
		t.Fatalf("Expected 2 agents, got %d", len(all))
	}
	if all[0].Address != "agent1edu" {
		t.Errorf("Expected registration order preserved, got %s first", all[0].Address)
	}

	byCapability := d.Discover("answer_questions", "")
	if len(byCapability) != 1 || byCapability[0].Address != "agent1edu" {
		t.Errorf("Expected [agent1edu], got %v", byCapability)
	}

	byTag := d.Discover("", "education")
	if len(byTag) != 2 {
		t.Errorf("Expected both agents tagged education, got %d", len(byTag))
	}

	// Capability takes precedence over tag when both are given.
	both := d.Discover("provide_practice_problems", "education")
	if len(both) != 1 || both[0].Address != "agent1quiz" {
		t.Errorf("Expected [agent1quiz], got %v", both)
	}
}

func TestDiscovery_Profile(t *testing.T) {
	d := NewDiscovery()
	d.Register("agent1edu", tutorProfile())

	profile, ok := d.Profile("agent1edu")
	if !ok {
		t.Fatal("Expected profile to exist")
	}
	if profile["agent_name"] != "EduAgent" {
		t.Errorf("Unexpected profile: %v", profile)
	}

	if _, ok := d.Profile("agent1ghost"); ok {
		t.Error("Expected unknown address to have no profile")
	}
}

func TestDiscovery_UpdateStatusVisibleEverywhere(t *testing.T) {
	d := NewDiscovery()
	d.Register("agent1edu", tutorProfile())

	if !d.UpdateStatus("agent1edu", "inactive") {
		t.Fatal("Expected status update to succeed")
	}
	if d.UpdateStatus("agent1ghost", "inactive") {
		t.Error("Expected update of unknown address to fail")
	}

	listed := d.Discover("", "")
	if len(listed) != 1 || listed[0].Status != "inactive" {
		t.Errorf("Expected inactive status in listing, got %v", listed)
	}
}

func TestDiscovery_ReRegisterReplacesProfile(t *testing.T) {
	d := NewDiscovery()
	d.Register("agent1edu", tutorProfile())
	d.Register("agent1edu", map[string]any{"agent_name": "EduAgent v2"})

	all := d.Discover("", "")
	if len(all) != 1 {
		t.Fatalf("Expected a single registration, got %d", len(all))
	}
	if all[0].Profile["agent_name"] != "EduAgent v2" {
		t.Errorf("Expected replaced profile, got %v", all[0].Profile)
	}
	if all[0].LastUpdated.IsZero() {
		t.Error("Expected last_updated to be set on re-registration")
	}
}
