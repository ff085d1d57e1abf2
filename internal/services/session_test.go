package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/modules/extraction"
	"github.com/yungbote/nexus-backend/internal/platform/dbctx"
)

func (e *testEnv) interviewService() InterviewService {
	return NewInterviewService(e.log, e.llm, nil, e.repo.interviews, e.repo.users)
}

func (e *testEnv) assessmentService() AssessmentService {
	return NewAssessmentService(e.log, e.llm, nil, e.repo.assessments, e.repo.users)
}

func TestInterviewLifecycle(t *testing.T) {
	env := newEnv(t)
	u := env.user(t, "interview@example.com")
	svc := env.interviewService()

	env.llm.Reply("```json\n" + questionSetReply(20) + "\n```")
	s, err := svc.Start(env.ctx, u.ID, "Go")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusInProgress, s.Status)
	assert.Len(t, s.Questions, 20)
	assert.Nil(t, s.Feedback)
	assert.Nil(t, s.Score)
	assert.Nil(t, s.CompletedAt)

	env.llm.Reply("### Interview Evaluation Report\n**Final Score:** 85/100")
	done, err := svc.Submit(env.ctx, u.ID, s.ID, map[int]string{0: "goroutines are cheap", 1: "func f1() { return }"})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusCompleted, done.Status)
	require.NotNil(t, done.Score)
	assert.Equal(t, 85, *done.Score)
	require.NotNil(t, done.Feedback)
	assert.Contains(t, *done.Feedback, "Final Score")
	require.NotNil(t, done.CompletedAt)
	require.Len(t, done.Answers, 20)
	assert.Equal(t, "goroutines are cheap", done.Answers[0])

	transcript := env.llm.LastCall().Messages[0].Content
	assert.Contains(t, transcript, "goroutines are cheap")
	assert.Contains(t, transcript, "(no answer)")
	assert.Contains(t, transcript, "A B", "candidate name is rendered")

	// A second submit is rejected and changes nothing.
	calls := env.llm.CallCount()
	_, err = svc.Submit(env.ctx, u.ID, s.ID, map[int]string{0: "different"})
	assert.True(t, errors.Is(err, domain.ErrAlreadyCompleted), "got %v", err)
	assert.Equal(t, calls, env.llm.CallCount())

	again, err := svc.Get(env.ctx, u.ID, s.ID)
	require.NoError(t, err)
	assert.Equal(t, *done.Feedback, *again.Feedback)
	assert.Equal(t, *done.Score, *again.Score)
	assert.True(t, done.CompletedAt.Equal(*again.CompletedAt))
	assert.Equal(t, "goroutines are cheap", again.Answers[0])
}

func TestInterviewStartFailurePersistsNothing(t *testing.T) {
	env := newEnv(t)
	u := env.user(t, "interview-fail@example.com")
	env.llm.Reply(questionSetReply(19))

	_, err := env.interviewService().Start(env.ctx, u.ID, "Go")
	assert.True(t, errors.Is(err, extraction.ErrSchemaViolation), "got %v", err)

	rows, err := env.repo.interviews.ListByOwner(dbctx.From(env.ctx), u.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestInterviewSubmitWithoutScore(t *testing.T) {
	env := newEnv(t)
	u := env.user(t, "noscore@example.com")
	svc := env.interviewService()
	env.llm.Reply(questionSetReply(20))
	s, err := svc.Start(env.ctx, u.ID, "Go")
	require.NoError(t, err)

	env.llm.Reply("The candidate did fine overall.")
	done, err := svc.Submit(env.ctx, u.ID, s.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusCompleted, done.Status)
	assert.Nil(t, done.Score)
}

func TestInterviewSubmitValidatesIndices(t *testing.T) {
	env := newEnv(t)
	u := env.user(t, "indices@example.com")
	svc := env.interviewService()
	env.llm.Reply(questionSetReply(20))
	s, err := svc.Start(env.ctx, u.ID, "Go")
	require.NoError(t, err)

	for _, idx := range []int{-1, 20} {
		_, err = svc.Submit(env.ctx, u.ID, s.ID, map[int]string{idx: "x"})
		assert.True(t, errors.Is(err, domain.ErrValidation), "index %d: %v", idx, err)
	}
	still, err := svc.Get(env.ctx, u.ID, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusInProgress, still.Status)
}

func TestInterviewEvaluationFailureKeepsSessionOpen(t *testing.T) {
	env := newEnv(t)
	u := env.user(t, "evalfail@example.com")
	svc := env.interviewService()
	env.llm.Reply(questionSetReply(20))
	s, err := svc.Start(env.ctx, u.ID, "Go")
	require.NoError(t, err)

	// Queue is empty, so evaluation fails.
	_, err = svc.Submit(env.ctx, u.ID, s.ID, map[int]string{0: "a"})
	require.Error(t, err)

	env.llm.Reply("Score: 40")
	done, err := svc.Submit(env.ctx, u.ID, s.ID, map[int]string{0: "a"})
	require.NoError(t, err)
	assert.Equal(t, 40, *done.Score)
}

func TestSessionOwnership(t *testing.T) {
	env := newEnv(t)
	owner := env.user(t, "sess-owner@example.com")
	other := env.user(t, "sess-other@example.com")
	svc := env.interviewService()
	env.llm.Reply(questionSetReply(20))
	s, err := svc.Start(env.ctx, owner.ID, "Go")
	require.NoError(t, err)

	_, err = svc.Get(env.ctx, other.ID, s.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFoundOrForbidden))
	_, err = svc.Submit(env.ctx, other.ID, s.ID, nil)
	assert.True(t, errors.Is(err, domain.ErrNotFoundOrForbidden))
	_, err = svc.Get(env.ctx, owner.ID, uuid.New())
	assert.True(t, errors.Is(err, domain.ErrNotFoundOrForbidden))
}

func TestAssessmentLifecycle(t *testing.T) {
	env := newEnv(t)
	u := env.user(t, "assessment@example.com")
	svc := env.assessmentService()

	env.llm.Reply("Here you go:\n" + assessmentReply(10, 5))
	s, err := svc.Start(env.ctx, u.ID, "Python")
	require.NoError(t, err)
	assert.Len(t, s.KnowledgeQuestions, 10)
	assert.Len(t, s.ProjectTasks, 5)
	assert.Nil(t, s.FinalReport)

	env.llm.Reply("### Competency Assessment Report\n**Status:** Pass\nPuanı: 7")
	done, err := svc.Submit(env.ctx, u.ID, s.ID,
		map[int]string{0: "a list is mutable"},
		map[int]string{4: "print('done')"},
	)
	require.NoError(t, err)
	require.NotNil(t, done.Score)
	assert.Equal(t, 7, *done.Score)
	require.NotNil(t, done.FinalReport)
	assert.Equal(t, "print('done')", done.ProjectSubmissions[4])

	transcript := env.llm.LastCall().Messages[0].Content
	assert.Contains(t, transcript, "a list is mutable")
	assert.Contains(t, transcript, "print('done')")

	_, err = svc.Submit(env.ctx, u.ID, s.ID, nil, nil)
	assert.True(t, errors.Is(err, domain.ErrAlreadyCompleted))
}

func TestAssessmentSubmitValidatesProjectIndices(t *testing.T) {
	env := newEnv(t)
	u := env.user(t, "assess-idx@example.com")
	svc := env.assessmentService()
	env.llm.Reply(assessmentReply(10, 5))
	s, err := svc.Start(env.ctx, u.ID, "Python")
	require.NoError(t, err)

	_, err = svc.Submit(env.ctx, u.ID, s.ID, nil, map[int]string{5: "x"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestAssessmentStartRejectsWrongArity(t *testing.T) {
	env := newEnv(t)
	u := env.user(t, "assess-arity@example.com")
	env.llm.Reply(assessmentReply(10, 4))

	_, err := env.assessmentService().Start(env.ctx, u.ID, "Python")
	assert.True(t, errors.Is(err, extraction.ErrSchemaViolation))
}
