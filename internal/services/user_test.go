package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/nexus-backend/internal/data/repos/testutil"
	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/platform/dbctx"
)

func TestProfile(t *testing.T) {
	env := newEnv(t)
	u := env.user(t, "profile@example.com")
	r := testutil.SeedRoadmap(t, env.ctx, env.db, u.ID, 2)
	_, err := env.repo.roadmaps.UpdateNodeStatus(dbctx.From(env.ctx), r.ID, "1", domain.NodeStatusCompleted)
	require.NoError(t, err)

	env.llm.Reply(questionSetReply(20))
	_, err = env.interviewService().Start(env.ctx, u.ID, "Go")
	require.NoError(t, err)

	svc := NewUserService(env.log, env.repo.users, env.repo.roadmaps, env.repo.interviews, env.repo.assessments)
	p, err := svc.Profile(env.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.User.ID)
	require.Len(t, p.Roadmaps, 1)
	assert.Equal(t, 50, p.Roadmaps[0].Progress)
	require.Len(t, p.Interviews, 1)
	assert.Equal(t, "Go", p.Interviews[0].Topic)
	assert.Empty(t, p.Assessments)

	_, err = svc.Me(env.ctx, uuid.New())
	assert.True(t, errors.Is(err, domain.ErrNotFoundOrForbidden))
}
