// Package domain contains core domain types for the EduAgent application.
package domain

// Difficulty is an explanation difficulty level.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ParseDifficulty maps s onto a known difficulty level.
// Unknown or empty values fall back to intermediate.
func ParseDifficulty(s string) Difficulty {
	if d := Difficulty(s); d.Valid() {
		return d
	}
	return DifficultyIntermediate
}

// Valid returns true if d is a known difficulty level.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}
