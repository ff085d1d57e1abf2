package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
)

const (
	QuestionTypeTheory     = "theory"
	QuestionTypeLiveCoding = "live_coding"
)

type InterviewQuestion struct {
	QuestionText string `json:"question_text"`
	QuestionType string `json:"question_type"`
	TemplateCode string `json:"template_code,omitempty"`
}

type AssessmentQuestion struct {
	QuestionText string   `json:"question_text"`
	QuestionType string   `json:"question_type"`
	Options      []string `json:"options,omitempty"`
}

type ProjectTask struct {
	Title        string `json:"title,omitempty"`
	Description  string `json:"description"`
	TemplateCode string `json:"template_code"`
}

// SessionCompletion is the single write that moves a session to completed.
type SessionCompletion struct {
	Report      string
	Score       *int
	CompletedAt time.Time
}

// InterviewSession questions are fixed at start; Feedback, Score and
// CompletedAt stay nil until the one accepted submit.
type InterviewSession struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Topic   string    `gorm:"type:text;not null" json:"topic"`

	Questions datatypes.JSONSlice[InterviewQuestion] `json:"questions"`
	Answers   datatypes.JSONSlice[string]            `json:"answers,omitempty"`

	Status      SessionStatus `gorm:"type:text;not null;index" json:"status"`
	Feedback    *string       `gorm:"type:text" json:"feedback"`
	Score       *int          `json:"score"`
	StartedAt   time.Time     `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time    `json:"completed_at"`
}

func (InterviewSession) TableName() string { return "interview_session" }

func (s *InterviewSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *InterviewSession) SessionID() uuid.UUID      { return s.ID }
func (s *InterviewSession) SessionOwner() uuid.UUID   { return s.OwnerID }
func (s *InterviewSession) IsCompleted() bool         { return s.Status == SessionStatusCompleted }
func (s *InterviewSession) SessionTopic() string      { return s.Topic }
func (s *InterviewSession) SessionScore() *int        { return s.Score }
func (s *InterviewSession) SessionStarted() time.Time { return s.StartedAt }

// AssessmentSession mirrors InterviewSession with a knowledge/project split.
type AssessmentSession struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Topic   string    `gorm:"type:text;not null" json:"topic"`

	KnowledgeQuestions datatypes.JSONSlice[AssessmentQuestion] `json:"knowledge_questions"`
	ProjectTasks       datatypes.JSONSlice[ProjectTask]        `json:"project_tasks"`
	KnowledgeAnswers   datatypes.JSONSlice[string]             `json:"knowledge_answers,omitempty"`
	ProjectSubmissions datatypes.JSONSlice[string]             `json:"project_submissions,omitempty"`

	Status      SessionStatus `gorm:"type:text;not null;index" json:"status"`
	FinalReport *string       `gorm:"type:text" json:"final_report"`
	Score       *int          `json:"score"`
	StartedAt   time.Time     `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time    `json:"completed_at"`
}

func (AssessmentSession) TableName() string { return "assessment_session" }

func (s *AssessmentSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *AssessmentSession) SessionID() uuid.UUID      { return s.ID }
func (s *AssessmentSession) SessionOwner() uuid.UUID   { return s.OwnerID }
func (s *AssessmentSession) IsCompleted() bool         { return s.Status == SessionStatusCompleted }
func (s *AssessmentSession) SessionTopic() string      { return s.Topic }
func (s *AssessmentSession) SessionScore() *int        { return s.Score }
func (s *AssessmentSession) SessionStarted() time.Time { return s.StartedAt }
