package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/nexus-backend/internal/data/cache"
	"github.com/yungbote/nexus-backend/internal/data/repos"
	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/modules/extraction"
	"github.com/yungbote/nexus-backend/internal/modules/prompts"
	"github.com/yungbote/nexus-backend/internal/modules/roadmapgraph"
	"github.com/yungbote/nexus-backend/internal/observability"
	"github.com/yungbote/nexus-backend/internal/platform/dbctx"
	"github.com/yungbote/nexus-backend/internal/platform/llm"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

const (
	recommendTopicLimit = 5
	recommendCount      = 3
)

type ChallengeService interface {
	Catalog(ctx context.Context) ([]*domain.Challenge, error)
	// Recommend generates challenges from the principal's completed nodes.
	// The result is never persisted.
	Recommend(ctx context.Context, principal uuid.UUID) ([]*domain.Challenge, error)
	Hint(ctx context.Context, challengeID uuid.UUID, userCode string) (string, error)
}

type challengeService struct {
	gen           generator
	log           *logger.Logger
	challengeRepo repos.ChallengeRepo
	roadmapRepo   repos.RoadmapRepo
	catalog       cache.Catalog
}

func NewChallengeService(
	log *logger.Logger,
	provider llm.Provider,
	metrics *observability.Metrics,
	challengeRepo repos.ChallengeRepo,
	roadmapRepo repos.RoadmapRepo,
	catalog cache.Catalog,
) ChallengeService {
	serviceLog := log.With("service", "ChallengeService")
	if catalog == nil {
		catalog = cache.Nop()
	}
	return &challengeService{
		gen:           generator{llm: provider, log: serviceLog, metrics: metrics},
		log:           serviceLog,
		challengeRepo: challengeRepo,
		roadmapRepo:   roadmapRepo,
		catalog:       catalog,
	}
}

func (s *challengeService) Catalog(ctx context.Context) ([]*domain.Challenge, error) {
	var rows []*domain.Challenge
	err := s.catalog.GetOrLoad(ctx, cache.KeyChallenges, &rows, func(ctx context.Context) (any, error) {
		return s.challengeRepo.List(dbctx.From(ctx))
	})
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	if rows == nil {
		rows = []*domain.Challenge{}
	}
	return rows, nil
}

func (s *challengeService) Recommend(ctx context.Context, principal uuid.UUID) ([]*domain.Challenge, error) {
	roadmaps, err := s.roadmapRepo.ListByOwner(dbctx.From(ctx), principal)
	if err != nil {
		return nil, fmt.Errorf("list roadmaps: %w", err)
	}
	topics := roadmapgraph.CompletedTitles(roadmaps, recommendTopicLimit)
	if len(topics) == 0 {
		return nil, domain.Prerequisitef("complete at least one roadmap node to get recommendations")
	}

	recs, err := structured(ctx, s.gen, extraction.KindChallengeSet, prompts.PromptRecommendChallenges, prompts.Input{
		TopicsCSV: strings.Join(topics, ", "),
		Count:     recommendCount,
	}, extraction.ParseChallengeSet)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Challenge, 0, len(recs))
	for _, r := range recs {
		out = append(out, &domain.Challenge{
			ID:           uuid.New(),
			Title:        r.Title,
			Description:  r.Description,
			Difficulty:   r.Difficulty,
			Category:     r.Category,
			TemplateCode: r.TemplateCode,
			SolutionCode: domain.GeneratedSolutionPlaceholder,
		})
	}
	s.log.Info("challenges recommended", "user_id", principal, "topics", len(topics), "count", len(out))
	return out, nil
}

func (s *challengeService) Hint(ctx context.Context, challengeID uuid.UUID, userCode string) (string, error) {
	c, err := s.challengeRepo.GetByID(dbctx.From(ctx), challengeID)
	if err != nil {
		return "", fmt.Errorf("load challenge: %w", err)
	}
	if c == nil {
		return "", domain.NotFound("challenge")
	}
	hint, err := s.gen.freeform(ctx, prompts.PromptChallengeHint, prompts.Input{
		ChallengeTitle:       c.Title,
		ChallengeDescription: c.Description,
		UserCode:             userCode,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(hint), nil
}
