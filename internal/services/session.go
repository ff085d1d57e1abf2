package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/nexus-backend/internal/data/repos"
	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/modules/prompts"
	"github.com/yungbote/nexus-backend/internal/modules/scoring"
	"github.com/yungbote/nexus-backend/internal/observability"
	"github.com/yungbote/nexus-backend/internal/platform/dbctx"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

const noAnswer = "(no answer)"

// Session event labels.
const (
	sessionOpStart  = "start"
	sessionOpSubmit = "submit"

	outcomeOK               = "ok"
	outcomeFailed           = "failed"
	outcomeAlreadyCompleted = "already_completed"
)

type sessionRecord interface {
	SessionID() uuid.UUID
	SessionOwner() uuid.UUID
	IsCompleted() bool
	SessionTopic() string
}

// sessionLifecycle holds what interview and assessment sessions share: the
// owner check, the one-way completion and the scored evaluation.
type sessionLifecycle struct {
	kind       string
	scale      int
	evalPrompt prompts.PromptName

	gen      generator
	log      *logger.Logger
	metrics  *observability.Metrics
	userRepo repos.UserRepo
	now      func() time.Time
}

// authorize expects a non-nil record.
func (l *sessionLifecycle) authorize(rec sessionRecord, principal uuid.UUID) error {
	if rec.SessionOwner() != principal {
		l.log.Debug("session access denied", "session_id", rec.SessionID(), "user_id", principal)
		return domain.Forbidden(l.kind + " session")
	}
	return nil
}

// open checks ownership and that the session still accepts a submission.
func (l *sessionLifecycle) open(rec sessionRecord, principal uuid.UUID) error {
	if err := l.authorize(rec, principal); err != nil {
		return err
	}
	if rec.IsCompleted() {
		l.event(sessionOpSubmit, outcomeAlreadyCompleted)
		return domain.ErrAlreadyCompleted
	}
	return nil
}

func (l *sessionLifecycle) event(op, outcome string) {
	l.metrics.IncSessionEvent(l.kind, op, outcome)
}

// candidate is the name rendered into evaluation reports.
func (l *sessionLifecycle) candidate(ctx context.Context, principal uuid.UUID) string {
	u, err := l.userRepo.GetByID(dbctx.From(ctx), principal)
	if err != nil || u == nil || strings.TrimSpace(u.Name) == "" {
		return "Candidate"
	}
	return u.Name
}

// evaluate asks the backend for a freeform report and recovers its score.
// A report without a recognisable score is accepted with a nil score.
func (l *sessionLifecycle) evaluate(ctx context.Context, rec sessionRecord, transcript string) (domain.SessionCompletion, error) {
	report, err := l.gen.freeform(ctx, l.evalPrompt, prompts.Input{
		Topic:      rec.SessionTopic(),
		Candidate:  l.candidate(ctx, rec.SessionOwner()),
		Transcript: transcript,
	})
	if err != nil {
		l.event(sessionOpSubmit, outcomeFailed)
		return domain.SessionCompletion{}, err
	}
	report = strings.TrimSpace(report)
	score := scoring.ExtractScore(report, l.scale)
	if score == nil {
		l.log.Warn("no score found in evaluation report", "session_id", rec.SessionID(), "kind", l.kind)
	}
	return domain.SessionCompletion{
		Report:      report,
		Score:       score,
		CompletedAt: l.now().UTC(),
	}, nil
}

// settle turns the result of the conditional completion write into an error.
func (l *sessionLifecycle) settle(id uuid.UUID, ok bool, err error) error {
	if err != nil {
		l.event(sessionOpSubmit, outcomeFailed)
		return fmt.Errorf("complete %s session: %w", l.kind, err)
	}
	if !ok {
		l.event(sessionOpSubmit, outcomeAlreadyCompleted)
		return domain.ErrAlreadyCompleted
	}
	l.event(sessionOpSubmit, outcomeOK)
	l.log.Info("session completed", "session_id", id, "kind", l.kind)
	return nil
}

// answerSlice lays out answers keyed by question index. Indices outside
// [0, n) are rejected; gaps stay empty.
func answerSlice(field string, answers map[int]string, n int) ([]string, error) {
	out := make([]string, n)
	keys := make([]int, 0, len(answers))
	for i := range answers {
		keys = append(keys, i)
	}
	sort.Ints(keys)
	for _, i := range keys {
		if i < 0 || i >= n {
			return nil, domain.Validationf("%s: index %d is out of range [0, %d)", field, i, n)
		}
		out[i] = answers[i]
	}
	return out, nil
}

func orNoAnswer(s string) string {
	if strings.TrimSpace(s) == "" {
		return noAnswer
	}
	return s
}

func requireTopic(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", domain.Validationf("topic is required")
	}
	return topic, nil
}
