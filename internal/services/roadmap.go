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

type RoadmapService interface {
	Generate(ctx context.Context, principal uuid.UUID, prompt string) (*domain.Roadmap, error)
	ListOngoing(ctx context.Context, principal uuid.UUID) ([]*domain.Roadmap, error)
	ListSuggested(ctx context.Context) ([]*domain.Roadmap, error)
	Get(ctx context.Context, principal, id uuid.UUID) (*domain.Roadmap, error)
	// Enroll returns the principal's copy of a suggested roadmap, creating it
	// on first call.
	Enroll(ctx context.Context, principal, templateID uuid.UUID) (roadmap *domain.Roadmap, created bool, err error)
	SetStatus(ctx context.Context, principal, roadmapID uuid.UUID, nodeID, status string) (*domain.Roadmap, error)
	Delete(ctx context.Context, principal, id uuid.UUID) error
}

type roadmapService struct {
	gen         generator
	log         *logger.Logger
	roadmapRepo repos.RoadmapRepo
	catalog     cache.Catalog
}

func NewRoadmapService(
	log *logger.Logger,
	provider llm.Provider,
	metrics *observability.Metrics,
	roadmapRepo repos.RoadmapRepo,
	catalog cache.Catalog,
) RoadmapService {
	serviceLog := log.With("service", "RoadmapService")
	if catalog == nil {
		catalog = cache.Nop()
	}
	return &roadmapService{
		gen:         generator{llm: provider, log: serviceLog, metrics: metrics},
		log:         serviceLog,
		roadmapRepo: roadmapRepo,
		catalog:     catalog,
	}
}

type builtRoadmap struct {
	title string
	nodes []domain.RoadmapNode
}

func parseAndBuildRoadmap(raw string) (builtRoadmap, error) {
	rec, err := extraction.ParseRoadmap(raw)
	if err != nil {
		return builtRoadmap{}, err
	}
	nodes, err := roadmapgraph.Build(rec)
	if err != nil {
		return builtRoadmap{}, err
	}
	return builtRoadmap{title: rec.Title, nodes: nodes}, nil
}

func (s *roadmapService) Generate(ctx context.Context, principal uuid.UUID, prompt string) (*domain.Roadmap, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, domain.Validationf("prompt is required")
	}
	built, err := structured(ctx, s.gen, extraction.KindRoadmap, prompts.PromptRoadmap,
		prompts.Input{Goal: prompt}, parseAndBuildRoadmap)
	if err != nil {
		return nil, err
	}
	if issues := roadmapgraph.Inspect(built.nodes); !issues.Empty() {
		s.log.Warn("generated roadmap has dependency issues",
			"owner_id", principal,
			"cyclic", issues.Cyclic,
			"dangling", issues.Dangling,
		)
	}

	owner := principal
	row, err := s.roadmapRepo.Create(dbctx.From(ctx), &domain.Roadmap{
		Title:   built.title,
		Prompt:  prompt,
		Type:    domain.RoadmapTypeUserGenerated,
		OwnerID: &owner,
		Nodes:   built.nodes,
	})
	if err != nil {
		return nil, fmt.Errorf("create roadmap: %w", err)
	}
	roadmapgraph.Refresh(row)
	s.log.Info("roadmap generated", "roadmap_id", row.ID, "owner_id", principal, "nodes", len(row.Nodes))
	return row, nil
}

func (s *roadmapService) ListOngoing(ctx context.Context, principal uuid.UUID) ([]*domain.Roadmap, error) {
	rows, err := s.roadmapRepo.ListByOwner(dbctx.From(ctx), principal)
	if err != nil {
		return nil, fmt.Errorf("list roadmaps: %w", err)
	}
	for _, r := range rows {
		roadmapgraph.Refresh(r)
	}
	return rows, nil
}

func (s *roadmapService) ListSuggested(ctx context.Context) ([]*domain.Roadmap, error) {
	var rows []*domain.Roadmap
	err := s.catalog.GetOrLoad(ctx, cache.KeySuggestedRoadmaps, &rows, func(ctx context.Context) (any, error) {
		return s.roadmapRepo.ListByType(dbctx.From(ctx), domain.RoadmapTypeSuggested)
	})
	if err != nil {
		return nil, fmt.Errorf("list suggested roadmaps: %w", err)
	}
	for _, r := range rows {
		roadmapgraph.Refresh(r)
	}
	return rows, nil
}

// readableRoadmap loads a roadmap the principal may see: any suggested
// template, or a user_generated roadmap they own.
func readableRoadmap(ctx context.Context, log *logger.Logger, repo repos.RoadmapRepo, principal, id uuid.UUID) (*domain.Roadmap, error) {
	r, err := repo.GetByID(dbctx.From(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("load roadmap: %w", err)
	}
	if r == nil {
		return nil, domain.NotFound("roadmap")
	}
	if r.Type == domain.RoadmapTypeUserGenerated && !r.OwnedBy(principal) {
		log.Debug("roadmap access denied", "roadmap_id", id, "user_id", principal)
		return nil, domain.Forbidden("roadmap")
	}
	return r, nil
}

func (s *roadmapService) Get(ctx context.Context, principal, id uuid.UUID) (*domain.Roadmap, error) {
	r, err := readableRoadmap(ctx, s.log, s.roadmapRepo, principal, id)
	if err != nil {
		return nil, err
	}
	roadmapgraph.Refresh(r)
	return r, nil
}

func (s *roadmapService) Enroll(ctx context.Context, principal, templateID uuid.UUID) (*domain.Roadmap, bool, error) {
	dbc := dbctx.From(ctx)
	existing, err := s.roadmapRepo.GetByOwnerTemplate(dbc, principal, templateID)
	if err != nil {
		return nil, false, fmt.Errorf("load enrollment: %w", err)
	}
	if existing != nil {
		roadmapgraph.Refresh(existing)
		return existing, false, nil
	}

	tmpl, err := s.roadmapRepo.GetByID(dbc, templateID)
	if err != nil {
		return nil, false, fmt.Errorf("load template: %w", err)
	}
	if tmpl == nil || tmpl.Type != domain.RoadmapTypeSuggested {
		return nil, false, domain.NotFound("roadmap template")
	}

	owner, tid := principal, tmpl.ID
	row := &domain.Roadmap{
		ID:         uuid.New(),
		Title:      tmpl.Title,
		Prompt:     tmpl.Prompt,
		Type:       domain.RoadmapTypeUserGenerated,
		OwnerID:    &owner,
		TemplateID: &tid,
		Progress:   0,
	}
	row.Nodes = roadmapgraph.Clone(tmpl.Nodes, row.ID)

	out, created, err := s.roadmapRepo.CreateEnrollment(dbc, row)
	if err != nil {
		return nil, false, fmt.Errorf("enroll: %w", err)
	}
	roadmapgraph.Refresh(out)
	if created {
		s.log.Info("roadmap enrolled", "roadmap_id", out.ID, "template_id", templateID, "owner_id", principal)
	}
	return out, created, nil
}

func (s *roadmapService) SetStatus(ctx context.Context, principal, roadmapID uuid.UUID, nodeID, status string) (*domain.Roadmap, error) {
	next, err := roadmapgraph.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	r, err := readableRoadmap(ctx, s.log, s.roadmapRepo, principal, roadmapID)
	if err != nil {
		return nil, err
	}
	node := roadmapgraph.Find(r.Nodes, nodeID)
	if node == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrNodeNotFound, nodeID)
	}

	dbc := dbctx.From(ctx)
	found, err := s.roadmapRepo.UpdateNodeStatus(dbc, r.ID, nodeID, next)
	if err != nil {
		return nil, fmt.Errorf("update node status: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", domain.ErrNodeNotFound, nodeID)
	}
	node.Status = next
	roadmapgraph.Refresh(r)
	if err := s.roadmapRepo.UpdateProgress(dbc, r.ID, r.Progress); err != nil {
		// Progress is recomputed on every read.
		s.log.Warn("failed to store progress", "roadmap_id", r.ID, "error", err)
	}
	if r.Type == domain.RoadmapTypeSuggested {
		if err := s.catalog.Invalidate(ctx, cache.KeySuggestedRoadmaps); err != nil {
			s.log.Warn("failed to invalidate suggested roadmaps", "error", err)
		}
	}
	return r, nil
}

func (s *roadmapService) Delete(ctx context.Context, principal, id uuid.UUID) error {
	r, err := s.roadmapRepo.GetByID(dbctx.From(ctx), id)
	if err != nil {
		return fmt.Errorf("load roadmap: %w", err)
	}
	if r == nil {
		return domain.NotFound("roadmap")
	}
	if r.Type != domain.RoadmapTypeUserGenerated || !r.OwnedBy(principal) {
		s.log.Debug("roadmap delete denied", "roadmap_id", id, "user_id", principal)
		return domain.Forbidden("roadmap")
	}
	if err := s.roadmapRepo.Delete(dbctx.From(ctx), id); err != nil {
		return fmt.Errorf("delete roadmap: %w", err)
	}
	s.log.Info("roadmap deleted", "roadmap_id", id, "owner_id", principal)
	return nil
}
