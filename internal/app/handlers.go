package app

import (
	"gorm.io/gorm"

	httpH "github.com/yungbote/nexus-backend/internal/http/handlers"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

type Handlers struct {
	Auth       *httpH.AuthHandler
	User       *httpH.UserHandler
	Roadmap    *httpH.RoadmapHandler
	Interview  *httpH.InterviewHandler
	Assessment *httpH.AssessmentHandler
	Challenge  *httpH.ChallengeHandler
	Flashcard  *httpH.FlashcardHandler
	Health     *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       httpH.NewAuthHandler(s.Auth),
		User:       httpH.NewUserHandler(s.User),
		Roadmap:    httpH.NewRoadmapHandler(s.Roadmap, s.Conversation),
		Interview:  httpH.NewInterviewHandler(s.Interview),
		Assessment: httpH.NewAssessmentHandler(s.Assessment),
		Challenge:  httpH.NewChallengeHandler(s.Challenge, s.Conversation),
		Flashcard:  httpH.NewFlashcardHandler(s.Flashcard),
		Health:     httpH.NewHealthHandler(db),
	}
}
