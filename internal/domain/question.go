package domain

import "fmt"

// QuestionRequest is a student question submitted to the tutor.
type QuestionRequest struct {
	Question        string      `json:"question"`
	ConceptType     ConceptType `json:"concept_type"`
	DifficultyLevel Difficulty  `json:"difficulty_level"`
	StudentID       string      `json:"student_id,omitempty"`
	Context         string      `json:"context,omitempty"`
}

// Normalize applies defaults for missing optional fields and canonicalizes
// the concept casing. Unknown concept types are left as-is for the caller
// to reject.
func (q *QuestionRequest) Normalize() {
	if parsed, err := ParseConceptType(string(q.ConceptType)); err == nil {
		q.ConceptType = parsed
	}
	q.DifficultyLevel = ParseDifficulty(string(q.DifficultyLevel))
}

// ExplanationResponse is the tutor's answer to a question.
type ExplanationResponse struct {
	Question         string      `json:"question"`
	Explanation      string      `json:"explanation"`
	KeyPoints        []string    `json:"key_points"`
	Examples         []string    `json:"examples"`
	PracticeProblems []string    `json:"practice_problems,omitempty"`
	DifficultyLevel  Difficulty  `json:"difficulty_level"`
	ConceptType      ConceptType `json:"concept_type"`
}

// ErrorExplanation is the fallback answer returned when a question cannot
// be processed.
func ErrorExplanation(req QuestionRequest, err error) ExplanationResponse {
	return ExplanationResponse{
		Question:        req.Question,
		Explanation:     fmt.Sprintf("I encountered an error processing your question: %v", err),
		KeyPoints:       []string{"Please try rephrasing your question"},
		Examples:        []string{},
		DifficultyLevel: req.DifficultyLevel,
		ConceptType:     req.ConceptType,
	}
}
