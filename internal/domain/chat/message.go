package chat

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message is one immutable turn in a conversation thread. Threads are keyed
// by ThreadKey and ordered by Seq, which is unique within a thread.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	ThreadKey string    `gorm:"type:text;not null;uniqueIndex:uq_chat_message_thread_seq,priority:1" json:"-"`
	Seq       int64     `gorm:"not null;uniqueIndex:uq_chat_message_thread_seq,priority:2" json:"-"`

	// RoadmapID lets roadmap deletion sweep node threads.
	RoadmapID *uuid.UUID `gorm:"type:uuid;index" json:"-"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`

	Sender    Sender    `gorm:"type:text;not null" json:"sender"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"timestamp"`
}

func (Message) TableName() string { return "chat_message" }

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// NodeThread keys the tutoring thread of one roadmap node.
func NodeThread(roadmapID uuid.UUID, nodeID string) string {
	return fmt.Sprintf("node:%s:%s", roadmapID, nodeID)
}

// ChallengeThread keys one user's thread about one challenge.
func ChallengeThread(challengeID, userID uuid.UUID) string {
	return fmt.Sprintf("challenge:%s:%s", challengeID, userID)
}
