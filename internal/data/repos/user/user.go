package user

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/nexus-backend/internal/data/db"
	types "github.com/yungbote/nexus-backend/internal/domain/user"
	"github.com/yungbote/nexus-backend/internal/platform/dbctx"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, u *types.User) (*types.User, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.User, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.User, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	UpdateName(dbc dbctx.Context, id uuid.UUID, name string) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) Create(dbc dbctx.Context, u *types.User) (*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	u.Email = normalizeEmail(u.Email)
	if err := t.WithContext(dbc.Ctx).Create(u).Error; err != nil {
		return nil, db.TranslateDuplicate(err, "user")
	}
	return u, nil
}

func (r *userRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.User
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *userRepo) GetByEmail(dbc dbctx.Context, email string) (*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.User
	if err := t.WithContext(dbc.Ctx).
		Where("email = ?", normalizeEmail(email)).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *userRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var count int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) UpdateName(dbc dbctx.Context, id uuid.UUID, name string) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("id = ?", id).
		Update("name", strings.TrimSpace(name)).Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
