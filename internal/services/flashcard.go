package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/nexus-backend/internal/data/repos"
	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/modules/extraction"
	"github.com/yungbote/nexus-backend/internal/modules/prompts"
	"github.com/yungbote/nexus-backend/internal/modules/roadmapgraph"
	"github.com/yungbote/nexus-backend/internal/observability"
	"github.com/yungbote/nexus-backend/internal/platform/llm"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

type FlashcardService interface {
	// GenerateDeck builds an unsaved deck from the completed nodes of a
	// roadmap the principal can read.
	GenerateDeck(ctx context.Context, principal, roadmapID uuid.UUID) (*domain.FlashcardDeck, error)
}

type flashcardService struct {
	gen         generator
	log         *logger.Logger
	roadmapRepo repos.RoadmapRepo
}

func NewFlashcardService(
	log *logger.Logger,
	provider llm.Provider,
	metrics *observability.Metrics,
	roadmapRepo repos.RoadmapRepo,
) FlashcardService {
	serviceLog := log.With("service", "FlashcardService")
	return &flashcardService{
		gen:         generator{llm: provider, log: serviceLog, metrics: metrics},
		log:         serviceLog,
		roadmapRepo: roadmapRepo,
	}
}

func (s *flashcardService) GenerateDeck(ctx context.Context, principal, roadmapID uuid.UUID) (*domain.FlashcardDeck, error) {
	r, err := readableRoadmap(ctx, s.log, s.roadmapRepo, principal, roadmapID)
	if err != nil {
		return nil, err
	}
	completed := roadmapgraph.CompletedTitles([]*domain.Roadmap{r}, 0)
	if len(completed) == 0 {
		return nil, domain.Prerequisitef("complete at least one node of %q to generate flashcards", r.Title)
	}

	cards, err := structured(ctx, s.gen, extraction.KindFlashcardSet, prompts.PromptFlashcards, prompts.Input{
		Topic:     r.Title,
		TopicsCSV: strings.Join(completed, ", "),
		Count:     extraction.MaxRecommendedFlashcard,
	}, extraction.ParseFlashcardSet)
	if err != nil {
		return nil, err
	}
	if len(cards) > extraction.MaxRecommendedFlashcard {
		s.log.Debug("backend returned more flashcards than asked", "count", len(cards))
	}
	return &domain.FlashcardDeck{RoadmapID: r.ID, Topic: r.Title, Cards: cards}, nil
}
