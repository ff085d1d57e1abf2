package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoadmapType string

const (
	RoadmapTypeUserGenerated RoadmapType = "user_generated"
	RoadmapTypeSuggested     RoadmapType = "suggested"
)

type NodeStatus string

const (
	NodeStatusNotStarted NodeStatus = "not_started"
	NodeStatusInProgress NodeStatus = "in_progress"
	NodeStatusCompleted  NodeStatus = "completed"
)

// Valid reports whether s is one of the three node states.
func (s NodeStatus) Valid() bool {
	switch s {
	case NodeStatusNotStarted, NodeStatusInProgress, NodeStatusCompleted:
		return true
	}
	return false
}

// Roadmap is a titled, ordered set of learning nodes. OwnerID is set iff the
// roadmap is user_generated; TemplateID is set only on enrolled copies.
type Roadmap struct {
	ID     uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title  string      `gorm:"type:text;not null" json:"title"`
	Prompt string      `gorm:"type:text;not null;default:''" json:"prompt,omitempty"`
	Type   RoadmapType `gorm:"type:text;not null;index" json:"type"`

	// (owner_id, template_id) is unique so concurrent enrollments collapse
	// onto one copy. NULL template ids never collide.
	OwnerID    *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_roadmap_owner_template,priority:1" json:"owner_id,omitempty"`
	TemplateID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_roadmap_owner_template,priority:2" json:"template_id,omitempty"`

	// Progress is a cached value. Readers recompute it from Nodes.
	Progress int `gorm:"not null;default:0" json:"progress"`

	Nodes []RoadmapNode `gorm:"foreignKey:RoadmapID;constraint:OnDelete:CASCADE" json:"nodes"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Roadmap) TableName() string { return "roadmap" }

func (r *Roadmap) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// OwnedBy reports whether uid owns this roadmap. Suggested roadmaps have no owner.
func (r *Roadmap) OwnedBy(uid uuid.UUID) bool {
	return r.OwnerID != nil && *r.OwnerID == uid
}

// RoadmapNode is one learning topic. NodeID is the caller-visible key and is
// unique within its roadmap; ID is the row key.
type RoadmapNode struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	RoadmapID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_roadmap_node_key,priority:1" json:"-"`
	NodeID    string    `gorm:"column:node_id;type:text;not null;uniqueIndex:idx_roadmap_node_key,priority:2" json:"nodeId"`
	Position  int       `gorm:"not null;default:0" json:"-"`

	Title        string                      `gorm:"type:text;not null" json:"title"`
	Content      string                      `gorm:"type:text;not null;default:''" json:"content"`
	Status       NodeStatus                  `gorm:"type:text;not null;default:'not_started'" json:"status"`
	Dependencies datatypes.JSONSlice[string] `json:"dependencies"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"-"`
}

func (RoadmapNode) TableName() string { return "roadmap_node" }

func (n *RoadmapNode) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
