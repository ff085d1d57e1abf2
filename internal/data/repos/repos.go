package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/nexus-backend/internal/data/repos/chat"
	"github.com/yungbote/nexus-backend/internal/data/repos/learning"
	"github.com/yungbote/nexus-backend/internal/data/repos/user"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type RoadmapRepo = learning.RoadmapRepo
type InterviewSessionRepo = learning.InterviewSessionRepo
type AssessmentSessionRepo = learning.AssessmentSessionRepo
type ChallengeRepo = learning.ChallengeRepo

type ChatMessageRepo = chat.ChatMessageRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewRoadmapRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapRepo {
	return learning.NewRoadmapRepo(db, baseLog)
}
func NewInterviewSessionRepo(db *gorm.DB, baseLog *logger.Logger) InterviewSessionRepo {
	return learning.NewInterviewSessionRepo(db, baseLog)
}
func NewAssessmentSessionRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentSessionRepo {
	return learning.NewAssessmentSessionRepo(db, baseLog)
}
func NewChallengeRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeRepo {
	return learning.NewChallengeRepo(db, baseLog)
}

func NewChatMessageRepo(db *gorm.DB, baseLog *logger.Logger) ChatMessageRepo {
	return chat.NewChatMessageRepo(db, baseLog)
}
