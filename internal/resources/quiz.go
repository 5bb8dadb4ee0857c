package resources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const quizBaseURL = "https://quizapi.io/api/v1"

// PracticeProblem is one formatted quiz question.
type PracticeProblem struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
	Difficulty    string            `json:"difficulty"`
}

// QuizClient fetches practice problems from quizapi.io.
type QuizClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewQuizClient creates a quiz client. An empty API key leaves the client
// disabled.
func NewQuizClient(apiKey string, client *http.Client) *QuizClient {
	return &QuizClient{baseURL: quizBaseURL, apiKey: apiKey, client: client}
}

// Enabled returns true if an API key is configured.
func (c *QuizClient) Enabled() bool {
	return c.apiKey != ""
}

// PracticeProblems fetches up to limit problems for a category.
func (c *QuizClient) PracticeProblems(ctx context.Context, category, difficulty string, limit int) ([]PracticeProblem, error) {
	params := url.Values{
		"category":   {category},
		"difficulty": {difficulty},
		"limit":      {strconv.Itoa(limit)},
	}
	if c.apiKey != "" {
		params.Set("apiKey", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/questions?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build quiz request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quiz api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quiz api: unexpected status %d", resp.StatusCode)
	}

	var payload []struct {
		Question      string            `json:"question"`
		Answers       map[string]string `json:"answers"`
		CorrectAnswer string            `json:"correct_answer"`
		Explanation   string            `json:"explanation"`
		Difficulty    string            `json:"difficulty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode quiz response: %w", err)
	}

	problems := make([]PracticeProblem, 0, len(payload))
	for _, q := range payload {
		problems = append(problems, PracticeProblem{
			Question:      q.Question,
			Options:       q.Answers,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Difficulty:    q.Difficulty,
		})
	}
	return problems, nil
}
