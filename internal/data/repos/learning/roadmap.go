package learning

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/nexus-backend/internal/data/db"
	"github.com/yungbote/nexus-backend/internal/domain/chat"
	types "github.com/yungbote/nexus-backend/internal/domain/learning"
	"github.com/yungbote/nexus-backend/internal/platform/dbctx"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

type RoadmapRepo interface {
	// Create inserts the roadmap together with its nodes.
	Create(dbc dbctx.Context, r *types.Roadmap) (*types.Roadmap, error)

	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Roadmap, error)
	ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.Roadmap, error)
	ListByType(dbc dbctx.Context, typ types.RoadmapType) ([]*types.Roadmap, error)
	GetByOwnerTemplate(dbc dbctx.Context, ownerID, templateID uuid.UUID) (*types.Roadmap, error)
	GetSuggestedByTitle(dbc dbctx.Context, title string) (*types.Roadmap, error)

	// CreateEnrollment inserts row unless a roadmap with the same
	// (owner_id, template_id) exists, in which case the existing one is
	// returned with created=false.
	CreateEnrollment(dbc dbctx.Context, row *types.Roadmap) (out *types.Roadmap, created bool, err error)

	// UpdateNodeStatus returns found=false when the node does not exist.
	UpdateNodeStatus(dbc dbctx.Context, roadmapID uuid.UUID, nodeID string, status types.NodeStatus) (found bool, err error)
	UpdateProgress(dbc dbctx.Context, roadmapID uuid.UUID, progress int) error

	// Delete removes the roadmap, its nodes and their chat threads.
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type roadmapRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoadmapRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapRepo {
	return &roadmapRepo{db: db, log: baseLog.With("repo", "RoadmapRepo")}
}

func orderedNodes(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *roadmapRepo) Create(dbc dbctx.Context, row *types.Roadmap) (*types.Roadmap, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, db.TranslateDuplicate(err, "roadmap")
	}
	return row, nil
}

func (r *roadmapRepo) first(dbc dbctx.Context, query func(*gorm.DB) *gorm.DB) (*types.Roadmap, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Roadmap
	if err := query(t.WithContext(dbc.Ctx).Preload("Nodes", orderedNodes)).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *roadmapRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Roadmap, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc, func(q *gorm.DB) *gorm.DB { return q.Where("id = ?", id) })
}

func (r *roadmapRepo) GetByOwnerTemplate(dbc dbctx.Context, ownerID, templateID uuid.UUID) (*types.Roadmap, error) {
	return r.first(dbc, func(q *gorm.DB) *gorm.DB {
		return q.Where("owner_id = ? AND template_id = ?", ownerID, templateID)
	})
}

func (r *roadmapRepo) GetSuggestedByTitle(dbc dbctx.Context, title string) (*types.Roadmap, error) {
	return r.first(dbc, func(q *gorm.DB) *gorm.DB {
		return q.Where("type = ? AND title = ?", types.RoadmapTypeSuggested, title)
	})
}

func (r *roadmapRepo) ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.Roadmap, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Roadmap
	if err := t.WithContext(dbc.Ctx).
		Preload("Nodes", orderedNodes).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *roadmapRepo) ListByType(dbc dbctx.Context, typ types.RoadmapType) ([]*types.Roadmap, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Roadmap
	if err := t.WithContext(dbc.Ctx).
		Preload("Nodes", orderedNodes).
		Where("type = ?", typ).
		Order("title ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *roadmapRepo) CreateEnrollment(dbc dbctx.Context, row *types.Roadmap) (*types.Roadmap, bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row.OwnerID == nil || row.TemplateID == nil {
		return nil, false, errors.New("enrollment copy requires owner and template")
	}

	var (
		out     *types.Roadmap
		created bool
	)
	err := t.WithContext(dbc.Ctx).Transaction(func(txx *gorm.DB) error {
		nodes := row.Nodes
		row.Nodes = nil

		res := txx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}, {Name: "template_id"}},
			DoNothing: true,
		}).Create(row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			existing, err := r.GetByOwnerTemplate(dbctx.Context{Ctx: dbc.Ctx, Tx: txx}, *row.OwnerID, *row.TemplateID)
			if err != nil {
				return err
			}
			if existing == nil {
				return errors.New("enrollment conflict but no existing roadmap")
			}
			out = existing
			return nil
		}

		for i := range nodes {
			nodes[i].RoadmapID = row.ID
		}
		if len(nodes) > 0 {
			if err := txx.Create(&nodes).Error; err != nil {
				return err
			}
		}
		row.Nodes = nodes
		out = row
		created = true
		return nil
	})
	if err != nil {
		return nil, false, db.TranslateDuplicate(err, "roadmap enrollment")
	}
	return out, created, nil
}

func (r *roadmapRepo) UpdateNodeStatus(dbc dbctx.Context, roadmapID uuid.UUID, nodeID string, status types.NodeStatus) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.RoadmapNode{}).
		Where("roadmap_id = ? AND node_id = ?", roadmapID, nodeID).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *roadmapRepo) UpdateProgress(dbc dbctx.Context, roadmapID uuid.UUID, progress int) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.Roadmap{}).
		Where("id = ?", roadmapID).
		Update("progress", progress).Error
}

func (r *roadmapRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Transaction(func(txx *gorm.DB) error {
		if err := txx.Where("roadmap_id = ?", id).Delete(&chat.Message{}).Error; err != nil {
			return err
		}
		if err := txx.Where("roadmap_id = ?", id).Delete(&types.RoadmapNode{}).Error; err != nil {
			return err
		}
		return txx.Where("id = ?", id).Delete(&types.Roadmap{}).Error
	})
}
