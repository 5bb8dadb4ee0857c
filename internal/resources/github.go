package resources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const githubBaseURL = "https://api.github.com"

// CodeExample is one GitHub repository hit.
type CodeExample struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Language    string `json:"language"`
	Stars       int    `json:"stars"`
}

// CodeSearchClient fetches code examples via the GitHub repository search API.
type CodeSearchClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewCodeSearchClient creates a GitHub search client. The token is optional;
// unauthenticated requests use GitHub's public rate limits.
func NewCodeSearchClient(token string, client *http.Client) *CodeSearchClient {
	return &CodeSearchClient{baseURL: githubBaseURL, token: token, client: client}
}

// SearchExamples searches repositories by language and topic, most-starred
// first.
func (c *CodeSearchClient) SearchExamples(ctx context.Context, language, topic string, maxResults int) ([]CodeExample, error) {
	params := url.Values{
		"q":        {fmt.Sprintf("language:%s topic:%s", language, topic)},
		"sort":     {"stars"},
		"order":    {"desc"},
		"per_page": {strconv.Itoa(maxResults)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/repositories?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build github search request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github search: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Items []struct {
			Name            string `json:"name"`
			Description     string `json:"description"`
			HTMLURL         string `json:"html_url"`
			Language        string `json:"language"`
			StargazersCount int    `json:"stargazers_count"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode github search response: %w", err)
	}

	examples := make([]CodeExample, 0, len(payload.Items))
	for _, repo := range payload.Items {
		examples = append(examples, CodeExample{
			Name:        repo.Name,
			Description: repo.Description,
			URL:         repo.HTMLURL,
			Language:    repo.Language,
			Stars:       repo.StargazersCount,
		})
	}
	return examples, nil
}
