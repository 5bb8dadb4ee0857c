package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/edulabs-dev/eduagent/internal/domain"
)

// Hash derives the canonical digest of a progress record: SHA-256 over the
// record rendered as JSON with sorted keys. Equal records always hash the
// same; any field change, including concept order, produces a new digest.
func Hash(rec domain.ProgressRecord) string {
	concepts := rec.ConceptsLearned
	if concepts == nil {
		concepts = []string{}
	}
	payload := map[string]any{
		"student_id":         rec.StudentID,
		"concepts_learned":   concepts,
		"questions_answered": rec.QuestionsAnswered,
		"timestamp":          rec.Timestamp.UTC().Format(time.RFC3339Nano),
		"difficulty_level":   rec.DifficultyLevel,
		"score":              rec.Score,
	}
	data, _ := json.Marshal(payload) // map keys marshal in sorted order
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
