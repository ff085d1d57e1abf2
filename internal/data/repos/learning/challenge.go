package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/nexus-backend/internal/data/db"
	types "github.com/yungbote/nexus-backend/internal/domain/learning"
	"github.com/yungbote/nexus-backend/internal/platform/dbctx"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

type ChallengeRepo interface {
	Create(dbc dbctx.Context, c *types.Challenge) (*types.Challenge, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Challenge, error)
	GetByTitle(dbc dbctx.Context, title string) (*types.Challenge, error)
	List(dbc dbctx.Context) ([]*types.Challenge, error)
}

type challengeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChallengeRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeRepo {
	return &challengeRepo{db: db, log: baseLog.With("repo", "ChallengeRepo")}
}

func (r *challengeRepo) Create(dbc dbctx.Context, c *types.Challenge) (*types.Challenge, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(c).Error; err != nil {
		return nil, db.TranslateDuplicate(err, "challenge")
	}
	return c, nil
}

func (r *challengeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Challenge, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc, "id = ?", id)
}

func (r *challengeRepo) GetByTitle(dbc dbctx.Context, title string) (*types.Challenge, error) {
	return r.first(dbc, "title = ?", title)
}

func (r *challengeRepo) first(dbc dbctx.Context, query string, arg interface{}) (*types.Challenge, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Challenge
	if err := t.WithContext(dbc.Ctx).Where(query, arg).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *challengeRepo) List(dbc dbctx.Context) ([]*types.Challenge, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Challenge
	if err := t.WithContext(dbc.Ctx).Order("category ASC, title ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
