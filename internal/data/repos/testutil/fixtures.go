package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/nexus-backend/internal/domain/learning"
	"github.com/yungbote/nexus-backend/internal/domain/user"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *user.User {
	tb.Helper()
	u := &user.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		Name:     "A B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// Nodes builds a linear chain of n not_started nodes "1".."n".
func Nodes(n int) []learning.RoadmapNode {
	out := make([]learning.RoadmapNode, n)
	for i := range out {
		deps := []string{}
		if i > 0 {
			deps = []string{fmt.Sprint(i)}
		}
		out[i] = learning.RoadmapNode{
			NodeID:       fmt.Sprint(i + 1),
			Position:     i,
			Title:        fmt.Sprintf("Topic %d", i+1),
			Content:      "content",
			Status:       learning.NodeStatusNotStarted,
			Dependencies: datatypes.JSONSlice[string](deps),
		}
	}
	return out
}

func SeedRoadmap(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, nodes int) *learning.Roadmap {
	tb.Helper()
	r := &learning.Roadmap{
		Title:   "Go backend",
		Prompt:  "learn go",
		Type:    learning.RoadmapTypeUserGenerated,
		OwnerID: &ownerID,
		Nodes:   Nodes(nodes),
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed roadmap: %v", err)
	}
	return r
}

func SeedSuggestedRoadmap(tb testing.TB, ctx context.Context, tx *gorm.DB, title string, nodes int) *learning.Roadmap {
	tb.Helper()
	r := &learning.Roadmap{
		Title: title,
		Type:  learning.RoadmapTypeSuggested,
		Nodes: Nodes(nodes),
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed suggested roadmap: %v", err)
	}
	return r
}

func SeedChallenge(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *learning.Challenge {
	tb.Helper()
	c := &learning.Challenge{
		Title:        title,
		Description:  "Return the indices of two numbers adding up to target.",
		Difficulty:   "Easy",
		Category:     "Arrays",
		TemplateCode: "def solve(nums, target):\n    pass",
		SolutionCode: "def solve(nums, target):\n    return [0, 1]",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed challenge: %v", err)
	}
	return c
}
