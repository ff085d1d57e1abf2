package learning

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/nexus-backend/internal/domain/learning"
	"github.com/yungbote/nexus-backend/internal/platform/dbctx"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

type InterviewSessionRepo interface {
	Create(dbc dbctx.Context, s *types.InterviewSession) (*types.InterviewSession, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.InterviewSession, error)
	ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.InterviewSession, error)
	// Complete applies the terminal transition only while the session is
	// in_progress. ok=false means another writer completed it first.
	Complete(dbc dbctx.Context, id uuid.UUID, answers []string, c types.SessionCompletion) (ok bool, err error)
}

type AssessmentSessionRepo interface {
	Create(dbc dbctx.Context, s *types.AssessmentSession) (*types.AssessmentSession, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.AssessmentSession, error)
	ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.AssessmentSession, error)
	Complete(dbc dbctx.Context, id uuid.UUID, knowledgeAnswers, projectCode []string, c types.SessionCompletion) (ok bool, err error)
}

type interviewSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInterviewSessionRepo(db *gorm.DB, baseLog *logger.Logger) InterviewSessionRepo {
	return &interviewSessionRepo{db: db, log: baseLog.With("repo", "InterviewSessionRepo")}
}

func (r *interviewSessionRepo) Create(dbc dbctx.Context, s *types.InterviewSession) (*types.InterviewSession, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (r *interviewSessionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.InterviewSession, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.InterviewSession
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *interviewSessionRepo) ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.InterviewSession, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.InterviewSession
	if err := t.WithContext(dbc.Ctx).
		Where("owner_id = ?", ownerID).
		Order("started_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *interviewSessionRepo) Complete(dbc dbctx.Context, id uuid.UUID, answers []string, c types.SessionCompletion) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.InterviewSession{}).
		Where("id = ? AND status = ?", id, types.SessionStatusInProgress).
		Updates(map[string]interface{}{
			"answers":      datatypes.JSONSlice[string](answers),
			"status":       types.SessionStatusCompleted,
			"feedback":     c.Report,
			"score":        c.Score,
			"completed_at": c.CompletedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

type assessmentSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentSessionRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentSessionRepo {
	return &assessmentSessionRepo{db: db, log: baseLog.With("repo", "AssessmentSessionRepo")}
}

func (r *assessmentSessionRepo) Create(dbc dbctx.Context, s *types.AssessmentSession) (*types.AssessmentSession, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (r *assessmentSessionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.AssessmentSession, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.AssessmentSession
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *assessmentSessionRepo) ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.AssessmentSession, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.AssessmentSession
	if err := t.WithContext(dbc.Ctx).
		Where("owner_id = ?", ownerID).
		Order("started_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *assessmentSessionRepo) Complete(dbc dbctx.Context, id uuid.UUID, knowledgeAnswers, projectCode []string, c types.SessionCompletion) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.AssessmentSession{}).
		Where("id = ? AND status = ?", id, types.SessionStatusInProgress).
		Updates(map[string]interface{}{
			"knowledge_answers":   datatypes.JSONSlice[string](knowledgeAnswers),
			"project_submissions": datatypes.JSONSlice[string](projectCode),
			"status":              types.SessionStatusCompleted,
			"final_report":        c.Report,
			"score":               c.Score,
			"completed_at":        c.CompletedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
