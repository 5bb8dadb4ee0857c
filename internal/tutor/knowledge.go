package tutor

import "github.com/edulabs-dev/eduagent/internal/domain"

// Topic is a single entry in the tutor's knowledge base.
type Topic struct {
	Description string   `json:"description"`
	KeyConcepts []string `json:"key_concepts"`
	Examples    []string `json:"examples"`
}

// defaultKnowledgeBase returns the built-in subject/topic tables.
// The returned maps are treated as read-only after construction.
func defaultKnowledgeBase() map[domain.ConceptType]map[string]Topic {
	return map[domain.ConceptType]map[string]Topic{
		domain.ConceptMathematics: {
			"algebra": {
				Description: "Study of mathematical symbols and rules",
				KeyConcepts: []string{"variables", "equations", "functions", "polynomials"},
				Examples:    []string{"2x + 3 = 7", "f(x) = x^2 + 2x + 1"},
			},
			"calculus": {
				Description: "Study of change and motion",
				KeyConcepts: []string{"derivatives", "integrals", "limits", "continuity"},
				Examples:    []string{"d/dx(x^2) = 2x", "∫x dx = x^2/2 + C"},
			},
			"geometry": {
				Description: "Study of shapes and spaces",
				KeyConcepts: []string{"angles", "triangles", "circles", "vectors"},
				Examples:    []string{"Area of circle = πr^2", "Pythagorean theorem: a^2 + b^2 = c^2"},
			},
		},
		domain.ConceptProgramming: {
			"python": {
				Description: "High-level programming language",
				KeyConcepts: []string{"variables", "loops", "functions", "classes", "decorators"},
				Examples:    []string{"for i in range(10):", "def function_name(param):"},
			},
			"data_structures": {
				Description: "Ways to organize and store data",
				KeyConcepts: []string{"arrays", "linked_lists", "trees", "graphs", "hash_tables"},
				Examples:    []string{"list = [1, 2, 3]", "dict = {'key': 'value'}"},
			},
			"algorithms": {
				Description: "Step-by-step procedures for solving problems",
				KeyConcepts: []string{"sorting", "searching", "dynamic_programming", "greedy"},
				Examples:    []string{"Binary search", "Merge sort", "Dijkstra's algorithm"},
			},
		},
	}
}

// Lookup returns the knowledge-base entry for a topic within a subject area.
func (e *Engine) Lookup(category domain.ConceptType, topic string) (Topic, bool) {
	topics, ok := e.knowledge[category]
	if !ok {
		return Topic{}, false
	}
	t, ok := topics[topic]
	return t, ok
}

// TopicCount returns the total number of knowledge-base topics.
func (e *Engine) TopicCount() int {
	n := 0
	for _, topics := range e.knowledge {
		n += len(topics)
	}
	return n
}
