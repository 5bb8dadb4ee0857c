package tutor

import "github.com/edulabs-dev/eduagent/internal/domain"

// Strategy controls how an explanation is shaped for a difficulty level.
type Strategy struct {
	Approach      string
	Depth         string
	ExamplesCount int
}

func defaultStrategies() map[domain.Difficulty]Strategy {
	return map[domain.Difficulty]Strategy{
		domain.DifficultyBeginner: {
			Approach:      "Simple, step-by-step with analogies",
			Depth:         "surface",
			ExamplesCount: 2,
		},
		domain.DifficultyIntermediate: {
			Approach:      "Balanced explanation with theory and practice",
			Depth:         "moderate",
			ExamplesCount: 3,
		},
		domain.DifficultyAdvanced: {
			Approach:      "In-depth with mathematical rigor",
			Depth:         "deep",
			ExamplesCount: 4,
		},
	}
}

// strategyFor returns the strategy for a difficulty level, falling back to
// intermediate for unknown labels.
func (e *Engine) strategyFor(difficulty domain.Difficulty) Strategy {
	if s, ok := e.strategies[difficulty]; ok {
		return s
	}
	return e.strategies[domain.DifficultyIntermediate]
}
