// Package achievements unlocks learning milestones and tallies points.
package achievements

import (
	"sync"

	"github.com/edulabs-dev/eduagent/internal/domain"
)

// Achievement describes one unlockable milestone.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Points      int    `json:"points"`
}

// catalogOrder fixes the presentation order of the catalog.
// concept_master and consistent_learner have no unlock rule; they are
// catalog-only entries so clients can render upcoming milestones.
var catalogOrder = []string{
	"first_question",
	"ten_questions",
	"concept_master",
	"consistent_learner",
	"all_concepts",
}

var catalog = map[string]Achievement{
	"first_question": {
		ID:          "first_question",
		Name:        "First Question",
		Description: "Asked your first question",
		Icon:        "🎯",
		Points:      10,
	},
	"ten_questions": {
		ID:          "ten_questions",
		Name:        "10 Questions Answered",
		Description: "Answered 10 questions",
		Icon:        "🚀",
		Points:      50,
	},
	"concept_master": {
		ID:          "concept_master",
		Name:        "Concept Master",
		Description: "Mastered a concept",
		Icon:        "🏆",
		Points:      100,
	},
	"consistent_learner": {
		ID:          "consistent_learner",
		Name:        "Consistent Learner",
		Description: "Learned consistently over time",
		Icon:        "⭐",
		Points:      75,
	},
	"all_concepts": {
		ID:          "all_concepts",
		Name:        "Polymath",
		Description: "Learned all concept types",
		Icon:        "🧠",
		Points:      200,
	},
}

// System tracks which milestones each student has unlocked.
type System struct {
	mu       sync.RWMutex
	unlocked map[string][]string
}

// NewSystem creates an achievement system with no unlocks.
func NewSystem() *System {
	return &System{unlocked: make(map[string][]string)}
}

// Catalog returns every milestone in presentation order.
func Catalog() []Achievement {
	achievements := make([]Achievement, 0, len(catalogOrder))
	for _, id := range catalogOrder {
		achievements = append(achievements, catalog[id])
	}
	return achievements
}

// CheckAchievements evaluates the unlock rules against a student's progress
// and returns the ids unlocked by this call, in rule order. Already-unlocked
// milestones never repeat.
func (s *System) CheckAchievements(studentID string, progress domain.StudentProgress) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlocked := []string{}
	if progress.QuestionsAsked >= 1 {
		unlocked = s.unlock(studentID, "first_question", unlocked)
	}
	if progress.QuestionsAsked >= 10 {
		unlocked = s.unlock(studentID, "ten_questions", unlocked)
	}
	if len(progress.ConceptsLearned) >= 4 {
		unlocked = s.unlock(studentID, "all_concepts", unlocked)
	}
	return unlocked
}

// unlock appends id for the student unless already held. Caller holds the
// lock.
func (s *System) unlock(studentID, id string, unlocked []string) []string {
	for _, held := range s.unlocked[studentID] {
		if held == id {
			return unlocked
		}
	}
	s.unlocked[studentID] = append(s.unlocked[studentID], id)
	return append(unlocked, id)
}

// StudentAchievements returns the student's unlocked milestones in unlock
// order.
func (s *System) StudentAchievements(studentID string) []Achievement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	achievements := []Achievement{}
	for _, id := range s.unlocked[studentID] {
		if achievement, ok := catalog[id]; ok {
			achievements = append(achievements, achievement)
		}
	}
	return achievements
}

// StudentPoints sums the points of the student's unlocked milestones.
func (s *System) StudentPoints(studentID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, id := range s.unlocked[studentID] {
		if achievement, ok := catalog[id]; ok {
			total += achievement.Points
		}
	}
	return total
}
