package resources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const wikipediaBaseURL = "https://en.wikipedia.org/w/api.php"

// summaryMaxChars caps page summaries at a digestible length.
const summaryMaxChars = 500

// SearchResult is one Wikipedia search hit.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	PageID  int    `json:"page_id"`
}

// WikipediaClient fetches educational content from the Wikipedia API.
type WikipediaClient struct {
	baseURL string
	client  *http.Client
}

// NewWikipediaClient creates a Wikipedia client using the shared HTTP client.
func NewWikipediaClient(client *http.Client) *WikipediaClient {
	return &WikipediaClient{baseURL: wikipediaBaseURL, client: client}
}

// SearchConcept searches Wikipedia for a concept and returns up to
// maxResults hits.
func (c *WikipediaClient) SearchConcept(ctx context.Context, concept string, maxResults int) ([]SearchResult, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {concept},
		"srwhat":   {"text"},
		"srlimit":  {strconv.Itoa(maxResults)},
		"format":   {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build wikipedia search request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikipedia search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia search: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Query struct {
			Search []struct {
				Title   string `json:"title"`
				Snippet string `json:"snippet"`
				PageID  int    `json:"pageid"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode wikipedia search response: %w", err)
	}

	results := make([]SearchResult, 0, len(payload.Query.Search))
	for _, hit := range payload.Query.Search {
		results = append(results, SearchResult{
			Title:   hit.Title,
			Snippet: hit.Snippet,
			PageID:  hit.PageID,
		})
	}
	return results, nil
}

// PageSummary fetches the intro extract of a page, truncated to 500
// characters. A page without an extract yields an empty string, not an error.
func (c *WikipediaClient) PageSummary(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"action":      {"query"},
		"titles":      {title},
		"prop":        {"extracts"},
		"explaintext": {"1"},
		"exintro":     {"1"},
		"format":      {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build wikipedia summary request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wikipedia summary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wikipedia summary: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Query struct {
			Pages map[string]struct {
				Extract string `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode wikipedia summary response: %w", err)
	}

	for _, page := range payload.Query.Pages {
		if page.Extract != "" {
			return truncate(page.Extract, summaryMaxChars), nil
		}
	}
	return "", nil
}

// truncate shortens s to at most max characters (runes, not bytes).
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
