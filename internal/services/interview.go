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

const (
	interviewTheoryCount = extraction.InterviewQuestionCount / 2
	interviewCodingCount = extraction.InterviewQuestionCount - interviewTheoryCount
)

type InterviewService interface {
	Start(ctx context.Context, principal uuid.UUID, topic string) (*domain.InterviewSession, error)
	Get(ctx context.Context, principal, id uuid.UUID) (*domain.InterviewSession, error)
	// Submit evaluates the answers, keyed by question index, and completes
	// the session. It is accepted once.
	Submit(ctx context.Context, principal, id uuid.UUID, answers map[int]string) (*domain.InterviewSession, error)
}

type interviewService struct {
	lc   *sessionLifecycle
	repo repos.InterviewSessionRepo
}

func NewInterviewService(
	log *logger.Logger,
	provider llm.Provider,
	metrics *observability.Metrics,
	repo repos.InterviewSessionRepo,
	userRepo repos.UserRepo,
) InterviewService {
	serviceLog := log.With("service", "InterviewService")
	return &interviewService{
		lc: &sessionLifecycle{
			kind:       "interview",
			scale:      scoring.InterviewScale,
			evalPrompt: prompts.PromptInterviewEvaluation,
			gen:        generator{llm: provider, log: serviceLog, metrics: metrics},
			log:        serviceLog,
			metrics:    metrics,
			userRepo:   userRepo,
			now:        time.Now,
		},
		repo: repo,
	}
}

func (s *interviewService) Start(ctx context.Context, principal uuid.UUID, topic string) (*domain.InterviewSession, error) {
	topic, err := requireTopic(topic)
	if err != nil {
		return nil, err
	}
	questions, err := structured(ctx, s.lc.gen, extraction.KindQuestionSet, prompts.PromptInterviewQuestions, prompts.Input{
		Topic:         topic,
		QuestionCount: extraction.InterviewQuestionCount,
		TheoryCount:   interviewTheoryCount,
		CodingCount:   interviewCodingCount,
	}, extraction.ParseQuestionSet)
	if err != nil {
		s.lc.event(sessionOpStart, outcomeFailed)
		return nil, err
	}

	row, err := s.repo.Create(dbctx.From(ctx), &domain.InterviewSession{
		OwnerID:   principal,
		Topic:     topic,
		Questions: questions,
		Status:    domain.SessionStatusInProgress,
		StartedAt: s.lc.now().UTC(),
	})
	if err != nil {
		s.lc.event(sessionOpStart, outcomeFailed)
		return nil, fmt.Errorf("create interview session: %w", err)
	}
	s.lc.event(sessionOpStart, outcomeOK)
	s.lc.log.Info("interview started", "session_id", row.ID, "owner_id", principal)
	return row, nil
}

func (s *interviewService) Get(ctx context.Context, principal, id uuid.UUID) (*domain.InterviewSession, error) {
	row, err := s.repo.GetByID(dbctx.From(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("load interview session: %w", err)
	}
	if row == nil {
		return nil, domain.NotFound("interview session")
	}
	if err := s.lc.authorize(row, principal); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *interviewService) Submit(ctx context.Context, principal, id uuid.UUID, answers map[int]string) (*domain.InterviewSession, error) {
	row, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if err := s.lc.open(row, principal); err != nil {
		return nil, err
	}
	laid, err := answerSlice("answers", answers, len(row.Questions))
	if err != nil {
		return nil, err
	}

	completion, err := s.lc.evaluate(ctx, row, interviewTranscript(row.Questions, laid))
	if err != nil {
		return nil, err
	}
	ok, err := s.repo.Complete(dbctx.From(ctx), row.ID, laid, completion)
	if err := s.lc.settle(row.ID, ok, err); err != nil {
		return nil, err
	}
	return s.Get(ctx, principal, id)
}

func interviewTranscript(questions []domain.InterviewQuestion, answers []string) string {
	var b strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&b, "Question %d (%s): %s\n", i+1, q.QuestionType, q.QuestionText)
		if q.QuestionType == domain.QuestionTypeLiveCoding {
			fmt.Fprintf(&b, "Answer:\n```\n%s\n```\n\n", orNoAnswer(answers[i]))
			continue
		}
		fmt.Fprintf(&b, "Answer: %s\n\n", orNoAnswer(answers[i]))
	}
	return strings.TrimSpace(b.String())
}
