// Package tutor implements the explanation engine: question analysis against
// a fixed keyword table and templated rendering of explanations, key points,
// examples, and practice problems.
package tutor

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/edulabs-dev/eduagent/internal/domain"
)

// conceptGeneral is the fallback concept when no keyword matches.
const conceptGeneral = "general"

var (
	mathKeywords = []string{
		"algebra", "calculus", "geometry", "derivative", "integral",
		"equation", "function", "matrix", "vector",
	}
	programmingKeywords = []string{
		"python", "loop", "function", "class", "array", "list",
		"dictionary", "algorithm", "sorting", "searching",
	}
)

// Engine generates explanations from the built-in knowledge base and
// difficulty strategies. Safe for concurrent use: all state is read-only
// after construction.
type Engine struct {
	knowledge  map[domain.ConceptType]map[string]Topic
	strategies map[domain.Difficulty]Strategy
}

// NewEngine creates an explanation engine with the default knowledge base
// and strategy table.
func NewEngine() *Engine {
	return &Engine{
		knowledge:  defaultKnowledgeBase(),
		strategies: defaultStrategies(),
	}
}

// Analysis holds the features extracted from a question.
type Analysis struct {
	Question    string
	Keywords    []string
	ConceptType domain.ConceptType
	Concepts    []string
	Complexity  float64
}

// Analyze extracts keywords and identified concepts from a question.
// Concepts is never empty; it falls back to ["general"].
func (e *Engine) Analyze(question string, conceptType domain.ConceptType) Analysis {
	keywords := tokenize(question)
	return Analysis{
		Question:    question,
		Keywords:    keywords,
		ConceptType: conceptType,
		Concepts:    identifyConcepts(keywords, conceptType),
		Complexity:  complexityScore(question),
	}
}

// Explain generates a full explanation for a question. Unknown difficulty
// labels behave like intermediate. Explain cannot fail.
func (e *Engine) Explain(question string, conceptType domain.ConceptType, difficulty domain.Difficulty) domain.ExplanationResponse {
	analysis := e.Analyze(question, conceptType)
	strategy := e.strategyFor(difficulty)

	return domain.ExplanationResponse{
		Question:         question,
		Explanation:      buildExplanation(analysis, strategy),
		KeyPoints:        keyPoints(analysis),
		Examples:         buildExamples(analysis, strategy),
		PracticeProblems: practiceProblems(analysis),
		DifficultyLevel:  difficulty,
		ConceptType:      conceptType,
	}
}

// tokenize lower-cases the question and splits it into alphanumeric runs,
// so "Algebra?" matches the keyword lists the same as "algebra".
func tokenize(question string) []string {
	return strings.FieldsFunc(strings.ToLower(question), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func identifyConcepts(keywords []string, conceptType domain.ConceptType) []string {
	var allowed []string
	switch conceptType {
	case domain.ConceptMathematics:
		allowed = mathKeywords
	case domain.ConceptProgramming:
		allowed = programmingKeywords
	}

	var concepts []string
	for _, k := range keywords {
		if slices.Contains(allowed, k) && !slices.Contains(concepts, k) {
			concepts = append(concepts, k)
		}
	}
	if len(concepts) == 0 {
		return []string{conceptGeneral}
	}
	return concepts
}

// complexityScore estimates question complexity on a 0-1 scale from the
// word count. Longer questions score higher.
func complexityScore(question string) float64 {
	return math.Min(float64(len(strings.Fields(question)))/50, 1.0)
}

func buildExplanation(analysis Analysis, strategy Strategy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your question about %s, here's an explanation using a %s approach:\n\n",
		strings.Join(analysis.Concepts, ", "), strategy.Approach)

	switch {
	case slices.Contains(analysis.Concepts, "algebra"):
		b.WriteString("Algebra is the branch of mathematics dealing with symbols and the rules for manipulating them. ")
		b.WriteString("It allows us to write general rules and solve problems with unknown values.\n")
	case slices.Contains(analysis.Concepts, "calculus"):
		b.WriteString("Calculus is the mathematical study of continuous change. ")
		b.WriteString("It has two main branches: derivatives (rates of change) and integrals (accumulation).\n")
	case slices.Contains(analysis.Concepts, "python"):
		b.WriteString("Python is a versatile, high-level programming language known for its readability. ")
		b.WriteString("It's widely used in data science, web development, and automation.\n")
	default:
		b.WriteString("This is an interesting question that touches on fundamental concepts. ")
		b.WriteString("Let me break it down into manageable parts.\n")
	}

	return b.String()
}

func keyPoints(analysis Analysis) []string {
	return []string{
		"Focus on understanding " + primaryConcept(analysis.Concepts),
		"Practice with multiple examples to solidify understanding",
		"Connect this concept to real-world applications",
	}
}

func buildExamples(analysis Analysis, strategy Strategy) []string {
	var examples []string
	switch {
	case slices.Contains(analysis.Concepts, "algebra"):
		examples = []string{
			"Example 1: Solving 2x + 5 = 13 → x = 4",
			"Example 2: Factoring x² + 5x + 6 = (x + 2)(x + 3)",
			"Example 3: Graphing linear functions y = mx + b",
		}
	case slices.Contains(analysis.Concepts, "python"):
		examples = []string{
			"Example 1: for loop - for i in range(5): print(i)",
			"Example 2: function definition - def greet(name): return f'Hello, {name}'",
			"Example 3: list comprehension - squares = [x**2 for x in range(10)]",
		}
	default:
		examples = []string{
			"Example 1: Basic application of " + primaryConcept(analysis.Concepts),
			"Example 2: Intermediate use case",
			"Example 3: Advanced application",
		}
	}

	if len(examples) > strategy.ExamplesCount {
		examples = examples[:strategy.ExamplesCount]
	}
	return examples
}

func practiceProblems(analysis Analysis) []string {
	c := primaryConcept(analysis.Concepts)
	return []string{
		"Practice Problem 1: Apply " + c + " to a new scenario",
		"Practice Problem 2: Solve a variation of the original problem",
		"Practice Problem 3: Combine this concept with another related concept",
	}
}

func primaryConcept(concepts []string) string {
	if len(concepts) == 0 {
		return conceptGeneral
	}
	return concepts[0]
}
