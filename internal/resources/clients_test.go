package resources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testHTTPClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}

func TestWikipediaSearchConcept(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("action") != "query" || q.Get("list") != "search" {
			t.Errorf("Unexpected query params: %v", q)
		}
		if q.Get("srsearch") != "algebra" {
			t.Errorf("Expected srsearch=algebra, got %q", q.Get("srsearch"))
		}
		if q.Get("srlimit") != "3" {
			t.Errorf("Expected srlimit=3, got %q", q.Get("srlimit"))
		}
		fmt.Fprint(w, `{"query":{"search":[
			{"title":"Algebra","snippet":"branch of mathematics","pageid":18716},
			{"title":"Linear algebra","snippet":"vector spaces","pageid":18422}
		]}}`)
	}))
	defer srv.Close()

	wiki := NewWikipediaClient(testHTTPClient())
	wiki.baseURL = srv.URL

	results, err := wiki.SearchConcept(context.Background(), "algebra", 3)
	if err != nil {
		t.Fatalf("SearchConcept failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Title != "Algebra" || results[0].PageID != 18716 {
		t.Errorf("Unexpected first result: %+v", results[0])
	}
}

func TestWikipediaPageSummaryTruncates(t *testing.T) {
	long := strings.Repeat("x", 800)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("prop") != "extracts" || q.Get("exintro") != "1" {
			t.Errorf("Unexpected query params: %v", q)
		}
		fmt.Fprintf(w, `{"query":{"pages":{"18716":{"extract":"%s"}}}}`, long)
	}))
	defer srv.Close()

	wiki := NewWikipediaClient(testHTTPClient())
	wiki.baseURL = srv.URL

	summary, err := wiki.PageSummary(context.Background(), "Algebra")
	if err != nil {
		t.Fatalf("PageSummary failed: %v", err)
	}
	if len(summary) != 500 {
		t.Errorf("Expected summary truncated to 500 chars, got %d", len(summary))
	}
}

func TestWikipediaPageSummaryMissingExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query":{"pages":{"-1":{"missing":""}}}}`)
	}))
	defer srv.Close()

	wiki := NewWikipediaClient(testHTTPClient())
	wiki.baseURL = srv.URL

	summary, err := wiki.PageSummary(context.Background(), "Nonexistent")
	if err != nil {
		t.Fatalf("PageSummary failed: %v", err)
	}
	if summary != "" {
		t.Errorf("Expected empty summary, got %q", summary)
	}
}

func TestQuizPracticeProblems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("apiKey") != "secret" {
			t.Errorf("Expected apiKey=secret, got %q", q.Get("apiKey"))
		}
		if q.Get("limit") != "3" {
			t.Errorf("Expected limit=3, got %q", q.Get("limit"))
		}
		fmt.Fprint(w, `[{
			"question":"What is a closure?",
			"answers":{"answer_a":"A function","answer_b":null},
			"correct_answer":"answer_a",
			"explanation":"Functions capture scope",
			"difficulty":"Medium"
		}]`)
	}))
	defer srv.Close()

	quiz := NewQuizClient("secret", testHTTPClient())
	quiz.baseURL = srv.URL

	problems, err := quiz.PracticeProblems(context.Background(), "programming", "intermediate", 3)
	if err != nil {
		t.Fatalf("PracticeProblems failed: %v", err)
	}
	if len(problems) != 1 {
		t.Fatalf("Expected 1 problem, got %d", len(problems))
	}
	if problems[0].Question != "What is a closure?" {
		t.Errorf("Unexpected question: %q", problems[0].Question)
	}
	if problems[0].Options["answer_a"] != "A function" {
		t.Errorf("Unexpected options: %v", problems[0].Options)
	}
	if problems[0].CorrectAnswer != "answer_a" {
		t.Errorf("Unexpected correct answer: %q", problems[0].CorrectAnswer)
	}
}

func TestQuizEnabled(t *testing.T) {
	if NewQuizClient("", testHTTPClient()).Enabled() {
		t.Error("Expected client without key to be disabled")
	}
	if !NewQuizClient("key", testHTTPClient()).Enabled() {
		t.Error("Expected client with key to be enabled")
	}
}

func TestCodeSearchExamples(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "language:python topic:algebra" {
			t.Errorf("Unexpected search query: %q", q.Get("q"))
		}
		if q.Get("sort") != "stars" || q.Get("order") != "desc" {
			t.Errorf("Expected stars/desc sort, got %v", q)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer token123" {
			t.Errorf("Expected bearer token, got %q", auth)
		}
		fmt.Fprint(w, `{"items":[{
			"name":"awesome-algebra",
			"description":"Algebra exercises",
			"html_url":"https://github.com/x/awesome-algebra",
			"language":"Python",
			"stargazers_count":421
		}]}`)
	}))
	defer srv.Close()

	code := NewCodeSearchClient("token123", testHTTPClient())
	code.baseURL = srv.URL

	examples, err := code.SearchExamples(context.Background(), "python", "algebra", 5)
	if err != nil {
		t.Fatalf("SearchExamples failed: %v", err)
	}
	if len(examples) != 1 {
		t.Fatalf("Expected 1 example, got %d", len(examples))
	}
	if examples[0].Stars != 421 {
		t.Errorf("Expected 421 stars, got %d", examples[0].Stars)
	}
	if examples[0].URL != "https://github.com/x/awesome-algebra" {
		t.Errorf("Unexpected URL: %q", examples[0].URL)
	}
}

func TestClientsReportUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	wiki := NewWikipediaClient(testHTTPClient())
	wiki.baseURL = srv.URL
	if _, err := wiki.SearchConcept(context.Background(), "algebra", 3); err == nil {
		t.Error("Expected error for non-200 wikipedia response")
	}

	quiz := NewQuizClient("key", testHTTPClient())
	quiz.baseURL = srv.URL
	if _, err := quiz.PracticeProblems(context.Background(), "programming", "easy", 3); err == nil {
		t.Error("Expected error for non-200 quiz response")
	}

	code := NewCodeSearchClient("", testHTTPClient())
	code.baseURL = srv.URL
	if _, err := code.SearchExamples(context.Background(), "go", "cache", 5); err == nil {
		t.Error("Expected error for non-200 github response")
	}
}
