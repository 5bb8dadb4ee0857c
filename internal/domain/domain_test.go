package domain

import "testing"

func TestParseDifficultyFallback(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
	}{
		{"beginner", DifficultyBeginner},
		{"intermediate", DifficultyIntermediate},
		{"advanced", DifficultyAdvanced},
		{"expert", DifficultyIntermediate},
		{"", DifficultyIntermediate},
		{"Beginner", DifficultyIntermediate},
	}

	for _, tt := range tests {
		if got := ParseDifficulty(tt.in); got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseConceptType(t *testing.T) {
	got, err := ParseConceptType("programming")
	if err != nil {
		t.Fatalf("ParseConceptType failed: %v", err)
	}
	if got != ConceptProgramming {
		t.Errorf("Expected programming, got %q", got)
	}

	got, err = ParseConceptType("")
	if err != nil {
		t.Fatalf("ParseConceptType failed for empty string: %v", err)
	}
	if got != ConceptMathematics {
		t.Errorf("Expected mathematics default, got %q", got)
	}

	if _, err := ParseConceptType("astrology"); err == nil {
		t.Error("Expected error for unknown concept type")
	}
}

func TestQuestionRequestNormalize(t *testing.T) {
	q := QuestionRequest{Question: "What is a loop?"}
	q.Normalize()

	if q.ConceptType != ConceptMathematics {
		t.Errorf("Expected mathematics default, got %q", q.ConceptType)
	}
	if q.DifficultyLevel != DifficultyIntermediate {
		t.Errorf("Expected intermediate default, got %q", q.DifficultyLevel)
	}
}

func TestQuestionRequestNormalizeCanonicalizesCase(t *testing.T) {
	q := QuestionRequest{Question: "What is recursion?", ConceptType: "Programming", DifficultyLevel: "advanced"}
	q.Normalize()

	if q.ConceptType != ConceptProgramming {
		t.Errorf("Expected programming, got %q", q.ConceptType)
	}
	if q.DifficultyLevel != DifficultyAdvanced {
		t.Errorf("Expected advanced, got %q", q.DifficultyLevel)
	}

	q = QuestionRequest{Question: "?", ConceptType: "alchemy"}
	q.Normalize()
	if q.ConceptType != "alchemy" {
		t.Errorf("Expected unknown concept to be preserved, got %q", q.ConceptType)
	}
}

func TestStudentProgressHasLearned(t *testing.T) {
	p := StudentProgress{ConceptsLearned: []string{"mathematics", "programming"}}

	if !p.HasLearned("mathematics") {
		t.Error("Expected mathematics to be learned")
	}
	if p.HasLearned("algorithm") {
		t.Error("Expected algorithm to not be learned")
	}
}
