package domain

import (
	"github.com/yungbote/nexus-backend/internal/domain/chat"
	"github.com/yungbote/nexus-backend/internal/domain/learning"
	"github.com/yungbote/nexus-backend/internal/domain/user"
)

type (
	User = user.User

	Roadmap     = learning.Roadmap
	RoadmapNode = learning.RoadmapNode
	RoadmapType = learning.RoadmapType
	NodeStatus  = learning.NodeStatus

	InterviewSession   = learning.InterviewSession
	InterviewQuestion  = learning.InterviewQuestion
	AssessmentSession  = learning.AssessmentSession
	AssessmentQuestion = learning.AssessmentQuestion
	ProjectTask        = learning.ProjectTask
	SessionStatus      = learning.SessionStatus
	SessionCompletion  = learning.SessionCompletion

	Challenge     = learning.Challenge
	Flashcard     = learning.Flashcard
	FlashcardDeck = learning.FlashcardDeck

	ChatMessage = chat.Message
	ChatSender  = chat.Sender
)

const (
	RoadmapTypeUserGenerated = learning.RoadmapTypeUserGenerated
	RoadmapTypeSuggested     = learning.RoadmapTypeSuggested

	NodeStatusNotStarted = learning.NodeStatusNotStarted
	NodeStatusInProgress = learning.NodeStatusInProgress
	NodeStatusCompleted  = learning.NodeStatusCompleted

	SessionStatusInProgress = learning.SessionStatusInProgress
	SessionStatusCompleted  = learning.SessionStatusCompleted

	QuestionTypeTheory     = learning.QuestionTypeTheory
	QuestionTypeLiveCoding = learning.QuestionTypeLiveCoding

	SenderUser = chat.SenderUser
	SenderAI   = chat.SenderAI

	GeneratedSolutionPlaceholder = learning.GeneratedSolutionPlaceholder
)

// AllModels lists every persisted model in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&user.User{},
		&learning.Roadmap{},
		&learning.RoadmapNode{},
		&learning.InterviewSession{},
		&learning.AssessmentSession{},
		&learning.Challenge{},
		&chat.Message{},
	}
}
