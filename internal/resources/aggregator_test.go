package resources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// fakeUpstreams wires an aggregator against three httptest servers and
// exposes per-endpoint request counters.
type fakeUpstreams struct {
	aggregator   *Aggregator
	searchCalls  atomic.Int32
	summaryCalls atomic.Int32
	quizCalls    atomic.Int32
	codeCalls    atomic.Int32
}

func newFakeUpstreams(t *testing.T, quizKey string, searchStatus int, searchBody string) *fakeUpstreams {
	t.Helper()
	f := &fakeUpstreams{}

	wikiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("list") == "search" {
			f.searchCalls.Add(1)
			if searchStatus != http.StatusOK {
				http.Error(w, "upstream broken", searchStatus)
				return
			}
			fmt.Fprint(w, searchBody)
			return
		}
		f.summaryCalls.Add(1)
		fmt.Fprint(w, `{"query":{"pages":{"18716":{"extract":"Algebra is the study of symbols."}}}}`)
	}))
	t.Cleanup(wikiSrv.Close)

	quizSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.quizCalls.Add(1)
		fmt.Fprint(w, `[{"question":"Solve 2x+5=13","answers":{"answer_a":"4"},"correct_answer":"answer_a","explanation":"","difficulty":"Easy"}]`)
	}))
	t.Cleanup(quizSrv.Close)

	codeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.codeCalls.Add(1)
		fmt.Fprint(w, `{"items":[{"name":"algebra-kit","description":"","html_url":"https://github.com/x/algebra-kit","language":"Python","stargazers_count":7}]}`)
	}))
	t.Cleanup(codeSrv.Close)

	client := testHTTPClient()
	wiki := NewWikipediaClient(client)
	wiki.baseURL = wikiSrv.URL
	quiz := NewQuizClient(quizKey, client)
	quiz.baseURL = quizSrv.URL
	code := NewCodeSearchClient("", client)
	code.baseURL = codeSrv.URL

	f.aggregator = &Aggregator{wiki: wiki, quiz: quiz, code: code}
	return f
}

const searchHit = `{"query":{"search":[{"title":"Algebra","snippet":"branch of mathematics","pageid":18716}]}}`

func TestFetchAllSectionsOK(t *testing.T) {
	f := newFakeUpstreams(t, "key", http.StatusOK, searchHit)

	bundle := f.aggregator.Fetch(context.Background(), "algebra", "python", "intermediate")

	if bundle.Concept != "algebra" || bundle.Difficulty != "intermediate" {
		t.Errorf("Unexpected bundle identity: %+v", bundle)
	}
	if bundle.Search.Status != StatusOK {
		t.Errorf("Expected search ok, got %s (%s)", bundle.Search.Status, bundle.Search.Reason)
	}
	if bundle.Summary.Status != StatusOK {
		t.Errorf("Expected summary ok, got %s (%s)", bundle.Summary.Status, bundle.Summary.Reason)
	}
	if bundle.Summary.Summary != "Algebra is the study of symbols." {
		t.Errorf("Unexpected summary: %q", bundle.Summary.Summary)
	}
	if bundle.PracticeProblems.Status != StatusOK || len(bundle.PracticeProblems.Items) != 1 {
		t.Errorf("Expected 1 practice problem, got %+v", bundle.PracticeProblems)
	}
	if bundle.CodeExamples.Status != StatusOK || len(bundle.CodeExamples.Items) != 1 {
		t.Errorf("Expected 1 code example, got %+v", bundle.CodeExamples)
	}
	if n := f.summaryCalls.Load(); n != 1 {
		t.Errorf("Expected exactly 1 summary call, got %d", n)
	}
}

func TestFetchSearchFailureSkipsSummary(t *testing.T) {
	f := newFakeUpstreams(t, "key", http.StatusInternalServerError, "")

	bundle := f.aggregator.Fetch(context.Background(), "algebra", "python", "intermediate")

	if bundle.Search.Status != StatusFailed {
		t.Errorf("Expected search failed, got %s", bundle.Search.Status)
	}
	if bundle.Search.Reason == "" {
		t.Error("Expected failure reason to be recorded")
	}
	if bundle.Summary.Status != StatusEmpty {
		t.Errorf("Expected summary empty when search failed, got %s", bundle.Summary.Status)
	}
	// Quiz and code search still succeed independently.
	if bundle.PracticeProblems.Status != StatusOK {
		t.Errorf("Expected practice problems ok, got %s", bundle.PracticeProblems.Status)
	}
	if bundle.CodeExamples.Status != StatusOK {
		t.Errorf("Expected code examples ok, got %s", bundle.CodeExamples.Status)
	}
	if n := f.summaryCalls.Load(); n != 0 {
		t.Errorf("Expected no summary call after failed search, got %d", n)
	}
}

func TestFetchEmptySearchSkipsSummary(t *testing.T) {
	f := newFakeUpstreams(t, "key", http.StatusOK, `{"query":{"search":[]}}`)

	bundle := f.aggregator.Fetch(context.Background(), "qwzx", "python", "easy")

	if bundle.Search.Status != StatusEmpty {
		t.Errorf("Expected search empty, got %s", bundle.Search.Status)
	}
	if bundle.Summary.Status != StatusEmpty {
		t.Errorf("Expected summary empty, got %s", bundle.Summary.Status)
	}
	if n := f.summaryCalls.Load(); n != 0 {
		t.Errorf("Expected no summary call for empty search, got %d", n)
	}
}

func TestFetchQuizDisabledWithoutKey(t *testing.T) {
	f := newFakeUpstreams(t, "", http.StatusOK, searchHit)

	bundle := f.aggregator.Fetch(context.Background(), "algebra", "python", "intermediate")

	if bundle.PracticeProblems.Status != StatusDisabled {
		t.Errorf("Expected practice problems disabled, got %s", bundle.PracticeProblems.Status)
	}
	if n := f.quizCalls.Load(); n != 0 {
		t.Errorf("Expected no quiz call without an API key, got %d", n)
	}
}

func TestConceptExplanation(t *testing.T) {
	f := newFakeUpstreams(t, "key", http.StatusOK, searchHit)

	section := f.aggregator.ConceptExplanation(context.Background(), "algebra")

	if section.Status != StatusOK {
		t.Fatalf("Expected ok, got %s (%s)", section.Status, section.Reason)
	}
	if section.Summary == "" {
		t.Error("Expected non-empty summary")
	}
}

func TestPracticeProblemsOnly(t *testing.T) {
	f := newFakeUpstreams(t, "key", http.StatusOK, searchHit)

	section := f.aggregator.PracticeProblems(context.Background(), "programming", "easy", 3)

	if section.Status != StatusOK || len(section.Items) != 1 {
		t.Errorf("Expected 1 problem, got %+v", section)
	}
	if n := f.searchCalls.Load(); n != 0 {
		t.Errorf("Expected no wikipedia traffic, got %d calls", n)
	}
}

func TestCodeExamplesOnly(t *testing.T) {
	f := newFakeUpstreams(t, "key", http.StatusOK, searchHit)

	section := f.aggregator.CodeExamples(context.Background(), "python", "algebra", 5)

	if section.Status != StatusOK || len(section.Items) != 1 {
		t.Errorf("Expected 1 example, got %+v", section)
	}
	if section.Items[0].Name != "algebra-kit" {
		t.Errorf("Unexpected example %+v", section.Items[0])
	}
	if n := f.quizCalls.Load(); n != 0 {
		t.Errorf("Expected no quiz traffic, got %d calls", n)
	}
}
