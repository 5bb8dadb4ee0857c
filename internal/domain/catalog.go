package domain

// Option pairs a machine value with a human-readable label for select inputs.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ConceptOptions returns the selectable concept types.
func ConceptOptions() []Option {
	return []Option{
		{Value: "mathematics", Label: "Mathematics"},
		{Value: "programming", Label: "Programming"},
		{Value: "algorithm", Label: "Algorithm"},
		{Value: "data_structure", Label: "Data Structure"},
	}
}

// DifficultyOptions returns the difficulty levels in ascending order.
func DifficultyOptions() []Option {
	return []Option{
		{Value: "beginner", Label: "Beginner"},
		{Value: "intermediate", Label: "Intermediate"},
		{Value: "advanced", Label: "Advanced"},
	}
}
