package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/nexus-backend/internal/data/repos"
	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/modules/extraction"
	"github.com/yungbote/nexus-backend/internal/modules/prompts"
	"github.com/yungbote/nexus-backend/internal/modules/scoring"
	"github.com/yungbote/nexus-backend/internal/observability"
	"github.com/yungbote/nexus-backend/internal/platform/dbctx"
	"github.com/yungbote/nexus-backend/internal/platform/llm"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

type AssessmentService interface {
	Start(ctx context.Context, principal uuid.UUID, topic string) (*domain.AssessmentSession, error)
	Get(ctx context.Context, principal, id uuid.UUID) (*domain.AssessmentSession, error)
	// Submit takes knowledge answers and project code keyed by index.
	Submit(ctx context.Context, principal, id uuid.UUID, knowledge, projects map[int]string) (*domain.AssessmentSession, error)
}

type assessmentService struct {
	lc   *sessionLifecycle
	repo repos.AssessmentSessionRepo
}

func NewAssessmentService(
	log *logger.Logger,
	provider llm.Provider,
	metrics *observability.Metrics,
	repo repos.AssessmentSessionRepo,
	userRepo repos.UserRepo,
) AssessmentService {
	serviceLog := log.With("service", "AssessmentService")
	return &assessmentService{
		lc: &sessionLifecycle{
			kind:       "assessment",
			scale:      scoring.AssessmentScale,
			evalPrompt: prompts.PromptAssessmentEvaluation,
			gen:        generator{llm: provider, log: serviceLog, metrics: metrics},
			log:        serviceLog,
			metrics:    metrics,
			userRepo:   userRepo,
			now:        time.Now,
		},
		repo: repo,
	}
}

func (s *assessmentService) Start(ctx context.Context, principal uuid.UUID, topic string) (*domain.AssessmentSession, error) {
	topic, err := requireTopic(topic)
	if err != nil {
		return nil, err
	}
	rec, err := structured(ctx, s.lc.gen, extraction.KindAssessment, prompts.PromptAssessment, prompts.Input{
		Topic:          topic,
		KnowledgeCount: extraction.KnowledgeQuestionCount,
		TaskCount:      extraction.ProjectTaskCount,
	}, extraction.ParseAssessment)
	if err != nil {
		s.lc.event(sessionOpStart, outcomeFailed)
		return nil, err
	}

	row, err := s.repo.Create(dbctx.From(ctx), &domain.AssessmentSession{
		OwnerID:            principal,
		Topic:              topic,
		KnowledgeQuestions: rec.KnowledgeQuestions,
		ProjectTasks:       rec.ProjectTasks,
		Status:             domain.SessionStatusInProgress,
		StartedAt:          s.lc.now().UTC(),
	})
	if err != nil {
		s.lc.event(sessionOpStart, outcomeFailed)
		return nil, fmt.Errorf("create assessment session: %w", err)
	}
	s.lc.event(sessionOpStart, outcomeOK)
	s.lc.log.Info("assessment started", "session_id", row.ID, "owner_id", principal)
	return row, nil
}

func (s *assessmentService) Get(ctx context.Context, principal, id uuid.UUID) (*domain.AssessmentSession, error) {
	row, err := s.repo.GetByID(dbctx.From(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("load assessment session: %w", err)
	}
	if row == nil {
		return nil, domain.NotFound("assessment session")
	}
	if err := s.lc.authorize(row, principal); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *assessmentService) Submit(ctx context.Context, principal, id uuid.UUID, knowledge, projects map[int]string) (*domain.AssessmentSession, error) {
	row, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if err := s.lc.open(row, principal); err != nil {
		return nil, err
	}
	answers, err := answerSlice("knowledge_answers", knowledge, len(row.KnowledgeQuestions))
	if err != nil {
		return nil, err
	}
	code, err := answerSlice("project_submissions", projects, len(row.ProjectTasks))
	if err != nil {
		return nil, err
	}

	completion, err := s.lc.evaluate(ctx, row, assessmentTranscript(row, answers, code))
	if err != nil {
		return nil, err
	}
	ok, err := s.repo.Complete(dbctx.From(ctx), row.ID, answers, code, completion)
	if err := s.lc.settle(row.ID, ok, err); err != nil {
		return nil, err
	}
	return s.Get(ctx, principal, id)
}

func assessmentTranscript(row *domain.AssessmentSession, answers, code []string) string {
	var b strings.Builder
	b.WriteString("## Knowledge Questions\n\n")
	for i, q := range row.KnowledgeQuestions {
		fmt.Fprintf(&b, "%d. %s\nAnswer: %s\n\n", i+1, q.QuestionText, orNoAnswer(answers[i]))
	}
	b.WriteString("## Project Tasks\n\n")
	for i, t := range row.ProjectTasks {
		title := t.Title
		if title == "" {
			title = fmt.Sprintf("Task %d", i+1)
		}
		fmt.Fprintf(&b, "### %s\n%s\nSubmitted code:\n```\n%s\n```\n\n", title, t.Description, orNoAnswer(code[i]))
	}
	return strings.TrimSpace(b.String())
}
