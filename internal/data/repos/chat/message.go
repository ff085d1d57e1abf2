package chat

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/nexus-backend/internal/data/db"
	types "github.com/yungbote/nexus-backend/internal/domain/chat"
	"github.com/yungbote/nexus-backend/internal/platform/dbctx"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

type ChatMessageRepo interface {
	// Append assigns the next sequence number in the message's thread.
	// Concurrent appends to one thread never share a seq.
	Append(dbc dbctx.Context, m *types.Message) (*types.Message, error)
	ListThread(dbc dbctx.Context, threadKey string) ([]*types.Message, error)
	DeleteByRoadmap(dbc dbctx.Context, roadmapID uuid.UUID) error
}

// appendAttempts bounds retries when a concurrent turn takes the same seq.
const appendAttempts = 3

type chatMessageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatMessageRepo(db *gorm.DB, baseLog *logger.Logger) ChatMessageRepo {
	return &chatMessageRepo{db: db, log: baseLog.With("repo", "ChatMessageRepo")}
}

func (r *chatMessageRepo) Append(dbc dbctx.Context, m *types.Message) (*types.Message, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var err error
	for attempt := 1; attempt <= appendAttempts; attempt++ {
		err = t.WithContext(dbc.Ctx).Transaction(func(txx *gorm.DB) error {
			var maxSeq int64
			if err := txx.Model(&types.Message{}).
				Where("thread_key = ?", m.ThreadKey).
				Select("COALESCE(MAX(seq), 0)").
				Scan(&maxSeq).Error; err != nil {
				return err
			}
			m.Seq = maxSeq + 1
			return txx.Create(m).Error
		})
		if !db.IsDuplicate(err) {
			break
		}
		r.log.Debug("chat seq taken, retrying", "thread", m.ThreadKey, "seq", m.Seq, "attempt", attempt)
	}
	if err != nil {
		return nil, db.TranslateDuplicate(err, "chat message")
	}
	return m, nil
}

func (r *chatMessageRepo) ListThread(dbc dbctx.Context, threadKey string) ([]*types.Message, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Message
	if err := t.WithContext(dbc.Ctx).
		Where("thread_key = ?", threadKey).
		Order("seq ASC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *chatMessageRepo) DeleteByRoadmap(dbc dbctx.Context, roadmapID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Where("roadmap_id = ?", roadmapID).Delete(&types.Message{}).Error
}
