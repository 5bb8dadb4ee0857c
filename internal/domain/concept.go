package domain

import (
	"fmt"
	"strings"
)

// ConceptType categorizes the broad subject area of a question.
type ConceptType string

const (
	ConceptMathematics   ConceptType = "mathematics"
	ConceptProgramming   ConceptType = "programming"
	ConceptAlgorithm     ConceptType = "algorithm"
	ConceptDataStructure ConceptType = "data_structure"
)

// ParseConceptType maps s onto a known concept type, ignoring case.
// An empty string defaults to mathematics.
func ParseConceptType(s string) (ConceptType, error) {
	if s == "" {
		return ConceptMathematics, nil
	}
	ct := ConceptType(strings.ToLower(s))
	if !ct.Valid() {
		return "", fmt.Errorf("unknown concept type: %q", s)
	}
	return ct, nil
}

// Valid returns true if c is a known concept type.
func (c ConceptType) Valid() bool {
	switch c {
	case ConceptMathematics, ConceptProgramming, ConceptAlgorithm, ConceptDataStructure:
		return true
	}
	return false
}
