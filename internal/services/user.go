package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/nexus-backend/internal/data/repos"
	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/modules/roadmapgraph"
	"github.com/yungbote/nexus-backend/internal/platform/dbctx"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

type UserService interface {
	Me(ctx context.Context, principal uuid.UUID) (*domain.User, error)
	Profile(ctx context.Context, principal uuid.UUID) (*Profile, error)
}

// SessionSummary is the history row shown on a profile.
type SessionSummary struct {
	ID          uuid.UUID            `json:"id"`
	Topic       string               `json:"topic"`
	Status      domain.SessionStatus `json:"status"`
	Score       *int                 `json:"score"`
	StartedAt   time.Time            `json:"started_at"`
	CompletedAt *time.Time           `json:"completed_at"`
}

type Profile struct {
	User        *domain.User      `json:"user"`
	Roadmaps    []*domain.Roadmap `json:"roadmaps"`
	Interviews  []SessionSummary  `json:"interviews"`
	Assessments []SessionSummary  `json:"assessments"`
}

type userService struct {
	log            *logger.Logger
	userRepo       repos.UserRepo
	roadmapRepo    repos.RoadmapRepo
	interviewRepo  repos.InterviewSessionRepo
	assessmentRepo repos.AssessmentSessionRepo
}

func NewUserService(
	log *logger.Logger,
	userRepo repos.UserRepo,
	roadmapRepo repos.RoadmapRepo,
	interviewRepo repos.InterviewSessionRepo,
	assessmentRepo repos.AssessmentSessionRepo,
) UserService {
	return &userService{
		log:            log.With("service", "UserService"),
		userRepo:       userRepo,
		roadmapRepo:    roadmapRepo,
		interviewRepo:  interviewRepo,
		assessmentRepo: assessmentRepo,
	}
}

func (s *userService) Me(ctx context.Context, principal uuid.UUID) (*domain.User, error) {
	u, err := s.userRepo.GetByID(dbctx.From(ctx), principal)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, domain.NotFound("user")
	}
	return u, nil
}

func (s *userService) Profile(ctx context.Context, principal uuid.UUID) (*Profile, error) {
	u, err := s.Me(ctx, principal)
	if err != nil {
		return nil, err
	}
	out := &Profile{User: u}

	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.From(gctx)
	g.Go(func() error {
		rows, err := s.roadmapRepo.ListByOwner(dbc, principal)
		if err != nil {
			return fmt.Errorf("list roadmaps: %w", err)
		}
		for _, r := range rows {
			roadmapgraph.Refresh(r)
		}
		out.Roadmaps = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.interviewRepo.ListByOwner(dbc, principal)
		if err != nil {
			return fmt.Errorf("list interviews: %w", err)
		}
		out.Interviews = make([]SessionSummary, 0, len(rows))
		for _, r := range rows {
			out.Interviews = append(out.Interviews, SessionSummary{
				ID: r.ID, Topic: r.Topic, Status: r.Status, Score: r.Score,
				StartedAt: r.StartedAt, CompletedAt: r.CompletedAt,
			})
		}
		return nil
	})
	g.Go(func() error {
		rows, err := s.assessmentRepo.ListByOwner(dbc, principal)
		if err != nil {
			return fmt.Errorf("list assessments: %w", err)
		}
		out.Assessments = make([]SessionSummary, 0, len(rows))
		for _, r := range rows {
			out.Assessments = append(out.Assessments, SessionSummary{
				ID: r.ID, Topic: r.Topic, Status: r.Status, Score: r.Score,
				StartedAt: r.StartedAt, CompletedAt: r.CompletedAt,
			})
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
