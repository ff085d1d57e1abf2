package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/nexus-backend/internal/data/repos"
	"github.com/yungbote/nexus-backend/internal/data/repos/testutil"
	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/platform/llm"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

type testEnv struct {
	ctx  context.Context
	db   *gorm.DB
	log  *logger.Logger
	llm  *llm.MockProvider
	repo struct {
		users       repos.UserRepo
		roadmaps    repos.RoadmapRepo
		interviews  repos.InterviewSessionRepo
		assessments repos.AssessmentSessionRepo
		challenges  repos.ChallengeRepo
		chat        repos.ChatMessageRepo
	}
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		ctx: context.Background(),
		db:  testutil.DB(t),
		log: testutil.Logger(t),
		llm: llm.NewMockProvider(),
	}
	env.repo.users = repos.NewUserRepo(env.db, env.log)
	env.repo.roadmaps = repos.NewRoadmapRepo(env.db, env.log)
	env.repo.interviews = repos.NewInterviewSessionRepo(env.db, env.log)
	env.repo.assessments = repos.NewAssessmentSessionRepo(env.db, env.log)
	env.repo.challenges = repos.NewChallengeRepo(env.db, env.log)
	env.repo.chat = repos.NewChatMessageRepo(env.db, env.log)
	return env
}

func (e *testEnv) user(t *testing.T, email string) *domain.User {
	t.Helper()
	return testutil.SeedUser(t, e.ctx, e.db, email)
}

func (e *testEnv) roadmapService() RoadmapService {
	return NewRoadmapService(e.log, e.llm, nil, e.repo.roadmaps, nil)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func roadmapReply(nodes int) string {
	items := make([]string, nodes)
	for i := range items {
		deps := "[]"
		if i > 0 {
			deps = fmt.Sprintf(`["n%d"]`, i)
		}
		items[i] = fmt.Sprintf(`{"nodeId": "n%d", "title": "Topic %d", "content": "about %d", "dependencies": %s}`, i+1, i+1, i+1, deps)
	}
	return "Here is your roadmap:\n```json\n" +
		`{"title": "Learn Go", "nodes": [` + strings.Join(items, ",") + `]}` +
		"\n```\nGood luck!"
}

func questionSetReply(n int) string {
	items := make([]string, n)
	for i := range items {
		if i%2 == 0 {
			items[i] = fmt.Sprintf(`{"question_text": "Explain concept %d", "question_type": "theory"}`, i)
		} else {
			items[i] = fmt.Sprintf(`{"question_text": "Implement %d", "question_type": "live_coding", "template_code": "func f%d() {}"}`, i, i)
		}
	}
	return "[" + strings.Join(items, ",") + "]"
}

func assessmentReply(knowledge, tasks int) string {
	kq := make([]string, knowledge)
	for i := range kq {
		kq[i] = fmt.Sprintf(`{"question_text": "K%d", "question_type": "theory"}`, i)
	}
	pt := make([]string, tasks)
	for i := range pt {
		pt[i] = fmt.Sprintf(`{"title": "P%d", "description": "Build %d", "template_code": "package main"}`, i, i)
	}
	return fmt.Sprintf(`{"knowledge_questions": [%s], "project_tasks": [%s]}`, strings.Join(kq, ","), strings.Join(pt, ","))
}
