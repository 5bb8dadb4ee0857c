// Package agent orchestrates the tutoring pipeline: explanation generation,
// resource enrichment, progress tracking, on-chain records, achievements,
// and agent-to-agent message handling.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/edulabs-dev/eduagent/internal/achievements"
	"github.com/edulabs-dev/eduagent/internal/chain"
	"github.com/edulabs-dev/eduagent/internal/chat"
	"github.com/edulabs-dev/eduagent/internal/comm"
	"github.com/edulabs-dev/eduagent/internal/domain"
	"github.com/edulabs-dev/eduagent/internal/resources"
	"github.com/edulabs-dev/eduagent/internal/tutor"
)

const (
	// conceptQueryLimit caps how much of the question is used as the
	// resource lookup concept.
	conceptQueryLimit = 50
	// maxEnrichedProblems caps the practice problems merged into a response.
	maxEnrichedProblems = 3
	// codeSearchLanguage is the language filter for code example lookups.
	codeSearchLanguage = "python"
)

// ResourceFetcher supplies external learning resources for a concept.
type ResourceFetcher interface {
	Fetch(ctx context.Context, concept, language, difficulty string) resources.Bundle
}

// ProgressRecorder persists progress records.
type ProgressRecorder interface {
	Record(ctx context.Context, rec domain.ProgressRecord) chain.Outcome
	Mode() string
}

// Service runs the full tutoring pipeline for one agent.
type Service struct {
	engine       *tutor.Engine
	resources    ResourceFetcher
	sessions     *chat.Manager
	comm         *comm.Manager
	tracker      ProgressRecorder
	achievements *achievements.System
	progress     *ProgressStore
	logger       *slog.Logger
}

// NewService wires the tutoring pipeline together.
func NewService(
	engine *tutor.Engine,
	fetcher ResourceFetcher,
	sessions *chat.Manager,
	manager *comm.Manager,
	tracker ProgressRecorder,
	system *achievements.System,
	progress *ProgressStore,
	logger *slog.Logger,
) *Service {
	return &Service{
		engine:       engine,
		resources:    fetcher,
		sessions:     sessions,
		comm:         manager,
		tracker:      tracker,
		achievements: system,
		progress:     progress,
		logger:       logger,
	}
}

// Ask answers one student question end to end: explanation, resource
// enrichment, progress bookkeeping, on-chain record, and achievements. An
// empty sessionID starts a new chat session for the sender.
func (s *Service) Ask(ctx context.Context, sender, sessionID string, req domain.QuestionRequest) domain.ExplanationResponse {
	req.Normalize()
	s.logger.Info("received question", "sender", sender, "question", req.Question)

	if sessionID == "" {
		sessionID = s.sessions.CreateSession(sender).SessionID
	}
	s.sessions.AddMessage(sessionID, sender, req.Question, "question")

	if _, err := domain.ParseConceptType(string(req.ConceptType)); err != nil {
		s.logger.Error("error processing question", "sender", sender, "error", err)
		return domain.ErrorExplanation(req, err)
	}

	explanation := s.engine.Explain(req.Question, req.ConceptType, req.DifficultyLevel)
	s.enrich(ctx, &explanation, req)

	if req.StudentID != "" {
		s.recordProgress(ctx, &explanation, req)
	}

	s.sessions.AddMessage(sessionID, s.sessions.AgentAddress(), explanation.Explanation, "response")
	s.logger.Info("sent explanation", "sender", sender, "session_id", sessionID)
	return explanation
}

// enrich merges external resources into the explanation. Sections that did
// not produce results leave the explanation untouched.
func (s *Service) enrich(ctx context.Context, explanation *domain.ExplanationResponse, req domain.QuestionRequest) {
	concept := truncateRunes(req.Question, conceptQueryLimit)
	bundle := s.resources.Fetch(ctx, concept, codeSearchLanguage, string(req.DifficultyLevel))

	if bundle.Summary.Status == resources.StatusOK {
		explanation.Explanation += "\n\nAdditional Context:\n" + bundle.Summary.Summary
	}
	if bundle.PracticeProblems.Status == resources.StatusOK {
		problems := bundle.PracticeProblems.Items
		if len(problems) > maxEnrichedProblems {
			problems = problems[:maxEnrichedProblems]
		}
		questions := make([]string, 0, len(problems))
		for _, p := range problems {
			questions = append(questions, p.Question)
		}
		explanation.PracticeProblems = questions
	}
	s.logger.Info("enhanced explanation with external resources",
		"summary", bundle.Summary.Status,
		"practice_problems", bundle.PracticeProblems.Status,
	)
}

// recordProgress updates the student's counters, writes the progress record,
// and appends any newly unlocked achievements to the explanation.
func (s *Service) recordProgress(ctx context.Context, explanation *domain.ExplanationResponse, req domain.QuestionRequest) {
	progress := s.progress.Record(req.StudentID, req.ConceptType)

	rec := domain.ProgressRecord{
		StudentID:         req.StudentID,
		ConceptsLearned:   progress.ConceptsLearned,
		QuestionsAnswered: progress.QuestionsAsked,
		Timestamp:         time.Now().UTC(),
		DifficultyLevel:   req.DifficultyLevel,
		Score:             min(100.0, float64(progress.QuestionsAsked)*10),
	}
	outcome := s.tracker.Record(ctx, rec)
	s.progress.SetChainHash(req.StudentID, outcome.ProgressHash)

	unlocked := s.achievements.CheckAchievements(req.StudentID, progress)
	if len(unlocked) > 0 {
		s.logger.Info("achievements unlocked", "student_id", req.StudentID, "achievements", unlocked)
		explanation.Explanation += "\n\n🎉 Achievements Unlocked: " + strings.Join(unlocked, ", ")

		for _, a := range s.achievements.StudentAchievements(req.StudentID) {
			if !slices.Contains(unlocked, a.ID) {
				continue
			}
			nft := chain.NewAchievementNFT(req.StudentID, a.Name, map[string]any{"points": a.Points})
			s.logger.Debug("achievement token metadata prepared",
				"student_id", req.StudentID,
				"metadata", nft.TokenMetadata(),
			)
		}
	}

	s.logger.Info("student progress updated",
		"student_id", req.StudentID,
		"questions_asked", progress.QuestionsAsked,
		"record_mode", outcome.Mode,
		"transaction_hash", outcome.TransactionHash,
	)
}

// RegisterHandlers wires this service into the agent-to-agent message
// dispatcher.
func (s *Service) RegisterHandlers() {
	s.comm.RegisterHandler(comm.TypeQuery, s.handleQuery)
	s.comm.RegisterHandler(comm.TypeResourceRequest, s.handleResourceRequest)
	s.comm.RegisterHandler(comm.TypeKnowledgeShare, s.handleKnowledgeShare)
}

// handleQuery answers a query from another agent at intermediate difficulty.
func (s *Service) handleQuery(content map[string]any) (map[string]any, error) {
	query, _ := content["query"].(string)
	conceptValue, _ := content["concept_type"].(string)

	concept, err := domain.ParseConceptType(conceptValue)
	if err != nil {
		return nil, err
	}

	explanation := s.engine.Explain(query, concept, domain.DifficultyIntermediate)
	return map[string]any{
		"status":      "success",
		"explanation": explanation.Explanation,
		"key_points":  explanation.KeyPoints,
		"examples":    explanation.Examples,
	}, nil
}

// handleResourceRequest serves the static resource offering.
func (s *Service) handleResourceRequest(content map[string]any) (map[string]any, error) {
	resourceType, _ := content["resource_type"].(string)
	if resourceType == "" {
		resourceType = "practice_problems"
	}
	topic, _ := content["topic"].(string)

	return map[string]any{
		"status":        "success",
		"resource_type": resourceType,
		"topic":         topic,
		"resources": []string{
			"Resource 1: Practice Problem Set",
			"Resource 2: Concept Explanation",
			"Resource 3: Code Examples",
		},
	}, nil
}

// handleKnowledgeShare acknowledges knowledge shared by another agent.
func (s *Service) handleKnowledgeShare(content map[string]any) (map[string]any, error) {
	knowledgeType, _ := content["knowledge_type"].(string)
	return map[string]any{
		"status":  "success",
		"message": fmt.Sprintf("Knowledge of type '%s' received and integrated", knowledgeType),
	}, nil
}

// RecordMode reports whether progress records reach a chain or stay
// simulated.
func (s *Service) RecordMode() string {
	return s.tracker.Mode()
}

// KnowledgeTopics returns the number of topics in the tutoring knowledge base.
func (s *Service) KnowledgeTopics() int {
	return s.engine.TopicCount()
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
