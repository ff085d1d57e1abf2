package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/nexus-backend/internal/data/repos"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

type Repos struct {
	User        repos.UserRepo
	Roadmap     repos.RoadmapRepo
	Interview   repos.InterviewSessionRepo
	Assessment  repos.AssessmentSessionRepo
	Challenge   repos.ChallengeRepo
	ChatMessage repos.ChatMessageRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		Roadmap:     repos.NewRoadmapRepo(db, log),
		Interview:   repos.NewInterviewSessionRepo(db, log),
		Assessment:  repos.NewAssessmentSessionRepo(db, log),
		Challenge:   repos.NewChallengeRepo(db, log),
		ChatMessage: repos.NewChatMessageRepo(db, log),
	}
}
