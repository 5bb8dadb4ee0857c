// Package resources aggregates third-party learning resources: Wikipedia
// articles, quiz questions, and GitHub code examples. Every upstream call
// degrades to a status-carrying section instead of propagating an error.
package resources

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"

	"github.com/edulabs-dev/eduagent/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	maxSearchResults = 3
	maxProblems      = 3
	maxCodeExamples  = 5
)

// Bundle aggregates learning resources for one concept.
type Bundle struct {
	Concept          string                   `json:"concept"`
	Difficulty       string                   `json:"difficulty"`
	Search           Section[SearchResult]    `json:"wikipedia_results"`
	Summary          SummarySection           `json:"wikipedia_summary"`
	PracticeProblems Section[PracticeProblem] `json:"practice_problems"`
	CodeExamples     Section[CodeExample]     `json:"code_examples"`
}

// Aggregator fans out to the upstream resource providers and merges their
// results into a single bundle.
type Aggregator struct {
	wiki *WikipediaClient
	quiz *QuizClient
	code *CodeSearchClient
}

// NewAggregator creates an aggregator with a shared HTTP client configured
// from cfg.
func NewAggregator(cfg config.ResourceConfig) *Aggregator {
	client := &http.Client{Timeout: cfg.HTTPTimeout}
	return &Aggregator{
		wiki: NewWikipediaClient(client),
		quiz: NewQuizClient(cfg.QuizAPIKey, client),
		code: NewCodeSearchClient(cfg.GithubToken, client),
	}
}

// Fetch gathers search results, practice problems, and code examples for a
// concept concurrently, then fetches the top search hit's page summary.
// Sections are joined in fixed call order, so assembly is deterministic
// regardless of completion timing. Fetch itself never fails.
func (a *Aggregator) Fetch(ctx context.Context, concept, language, difficulty string) Bundle {
	var (
		search   Section[SearchResult]
		problems Section[PracticeProblem]
		code     Section[CodeExample]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		search = a.searchSection(gctx, concept)
		return nil
	})
	g.Go(func() error {
		problems = a.problemsSection(gctx, concept, difficulty, maxProblems)
		return nil
	})
	g.Go(func() error {
		code = a.codeSection(gctx, language, concept, maxCodeExamples)
		return nil
	})
	_ = g.Wait() // sections degrade in place, no goroutine returns an error

	return Bundle{
		Concept:          concept,
		Difficulty:       difficulty,
		Search:           search,
		Summary:          a.summarySection(ctx, search),
		PracticeProblems: problems,
		CodeExamples:     code,
	}
}

// PracticeProblems fetches the quiz section only.
func (a *Aggregator) PracticeProblems(ctx context.Context, concept, difficulty string, limit int) Section[PracticeProblem] {
	return a.problemsSection(ctx, concept, difficulty, limit)
}

// ConceptExplanation returns a Wikipedia-based summary for a concept.
func (a *Aggregator) ConceptExplanation(ctx context.Context, concept string) SummarySection {
	search := a.searchSection(ctx, concept)
	return a.summarySection(ctx, search)
}

// CodeExamples fetches the code-search section only.
func (a *Aggregator) CodeExamples(ctx context.Context, language, topic string, maxResults int) Section[CodeExample] {
	return a.codeSection(ctx, language, topic, maxResults)
}

func (a *Aggregator) searchSection(ctx context.Context, concept string) Section[SearchResult] {
	results, err := a.wiki.SearchConcept(ctx, concept, maxSearchResults)
	if err != nil {
		return sectionFailed[SearchResult](err)
	}
	return sectionFor(results)
}

func (a *Aggregator) problemsSection(ctx context.Context, concept, difficulty string, limit int) Section[PracticeProblem] {
	if !a.quiz.Enabled() {
		return sectionDisabled[PracticeProblem]("no quiz API key configured")
	}
	problems, err := a.quiz.PracticeProblems(ctx, concept, difficulty, limit)
	if err != nil {
		return sectionFailed[PracticeProblem](err)
	}
	return sectionFor(problems)
}

func (a *Aggregator) codeSection(ctx context.Context, language, topic string, maxResults int) Section[CodeExample] {
	examples, err := a.code.SearchExamples(ctx, language, topic, maxResults)
	if err != nil {
		return sectionFailed[CodeExample](err)
	}
	return sectionFor(examples)
}

// summarySection fetches the top search hit's page summary. It is only
// attempted when the search section has results.
func (a *Aggregator) summarySection(ctx context.Context, search Section[SearchResult]) SummarySection {
	if search.Status != StatusOK {
		return SummarySection{Status: StatusEmpty, Reason: "no search results to summarize"}
	}

	summary, err := a.wiki.PageSummary(ctx, search.Items[0].Title)
	switch {
	case err != nil:
		return SummarySection{Status: StatusFailed, Reason: err.Error()}
	case summary == "":
		return SummarySection{Status: StatusEmpty}
	default:
		return SummarySection{Status: StatusOK, Summary: summary}
	}
}
