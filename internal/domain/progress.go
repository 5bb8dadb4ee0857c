package domain

import "time"

// StudentProgress accumulates a student's interactions with the tutor.
type StudentProgress struct {
	StudentID       string    `json:"student_id"`
	ConceptsLearned []string  `json:"concepts_learned"`
	QuestionsAsked  int       `json:"questions_asked"`
	LastInteraction time.Time `json:"last_interaction"`
	ChainHash       string    `json:"blockchain_hash,omitempty"`
}

// HasLearned returns true if the concept is already in the learned list.
func (p *StudentProgress) HasLearned(concept string) bool {
	for _, c := range p.ConceptsLearned {
		if c == concept {
			return true
		}
	}
	return false
}

// ProgressRecord is a point-in-time snapshot written to the progress ledger.
type ProgressRecord struct {
	StudentID         string     `json:"student_id"`
	ConceptsLearned   []string   `json:"concepts_learned"`
	QuestionsAnswered int        `json:"questions_answered"`
	Timestamp         time.Time  `json:"timestamp"`
	DifficultyLevel   Difficulty `json:"difficulty_level"`
	Score             float64    `json:"score"`
}
