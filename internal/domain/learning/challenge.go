package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeneratedSolutionPlaceholder stands in for solution code on challenges
// produced on the fly.
const GeneratedSolutionPlaceholder = "# Solution is not provided for AI-generated challenges."

// Challenge is either a persisted catalog entry or an ephemeral generated one.
type Challenge struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"type:text;not null;uniqueIndex" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Difficulty   string    `gorm:"type:text;not null" json:"difficulty"`
	Category     string    `gorm:"type:text;not null;index" json:"category"`
	TemplateCode string    `gorm:"type:text;not null;default:''" json:"template_code"`
	SolutionCode string    `gorm:"type:text;not null;default:''" json:"solution_code"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"-"`
}

func (Challenge) TableName() string { return "code_challenge" }

func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// FlashcardDeck is generated per request and never persisted.
type FlashcardDeck struct {
	RoadmapID uuid.UUID   `json:"roadmap_id"`
	Topic     string      `json:"topic"`
	Cards     []Flashcard `json:"cards"`
}
