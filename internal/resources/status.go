package resources

// FetchStatus classifies the outcome of one upstream fetch, so callers can
// tell "returned nothing" apart from "call failed" and "feature disabled".
type FetchStatus string

const (
	StatusOK       FetchStatus = "ok"
	StatusEmpty    FetchStatus = "empty"
	StatusDisabled FetchStatus = "disabled"
	StatusFailed   FetchStatus = "failed"
)

// Section carries one upstream's items plus an explicit fetch status.
type Section[T any] struct {
	Status FetchStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
	Items  []T         `json:"items,omitempty"`
}

func sectionFor[T any](items []T) Section[T] {
	if len(items) == 0 {
		return Section[T]{Status: StatusEmpty}
	}
	return Section[T]{Status: StatusOK, Items: items}
}

func sectionFailed[T any](err error) Section[T] {
	return Section[T]{Status: StatusFailed, Reason: err.Error()}
}

func sectionDisabled[T any](reason string) Section[T] {
	return Section[T]{Status: StatusDisabled, Reason: reason}
}

// SummarySection is the optional page-summary portion of a bundle.
type SummarySection struct {
	Status  FetchStatus `json:"status"`
	Reason  string      `json:"reason,omitempty"`
	Summary string      `json:"summary,omitempty"`
}
