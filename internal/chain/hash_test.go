package chain

import (
	"regexp"
	"testing"
	"time"

	"github.com/edulabs-dev/eduagent/internal/domain"
)

func sampleRecord() domain.ProgressRecord {
	return domain.ProgressRecord{
		StudentID:         "student123",
		ConceptsLearned:   []string{"mathematics", "programming"},
		QuestionsAnswered: 5,
		Timestamp:         time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		DifficultyLevel:   domain.DifficultyIntermediate,
		Score:             50,
	}
}

func TestHashDeterministic(t *testing.T) {
	first := Hash(sampleRecord())
	second := Hash(sampleRecord())

	if first != second {
		t.Errorf("Expected equal records to hash identically, got %s and %s", first, second)
	}
	if matched, _ := regexp.MatchString(`^[0-9a-f]{64}$`, first); !matched {
		t.Errorf("Expected 64 hex chars, got %q", first)
	}
}

func TestHashChangesWithFields(t *testing.T) {
	base := Hash(sampleRecord())

	scored := sampleRecord()
	scored.Score = 60
	if Hash(scored) == base {
		t.Error("Expected score change to change the hash")
	}

	answered := sampleRecord()
	answered.QuestionsAnswered = 6
	if Hash(answered) == base {
		t.Error("Expected question count change to change the hash")
	}

	reordered := sampleRecord()
	reordered.ConceptsLearned = []string{"programming", "mathematics"}
	if Hash(reordered) == base {
		t.Error("Expected concept order to be significant")
	}
}

func TestHashTreatsNilConceptsAsEmpty(t *testing.T) {
	withNil := sampleRecord()
	withNil.ConceptsLearned = nil

	withEmpty := sampleRecord()
	withEmpty.ConceptsLearned = []string{}

	if Hash(withNil) != Hash(withEmpty) {
		t.Error("Expected nil and empty concept lists to hash identically")
	}
}
