package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/nexus-backend/internal/data/cache"
	"github.com/yungbote/nexus-backend/internal/observability"
	"github.com/yungbote/nexus-backend/internal/platform/llm"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
	"github.com/yungbote/nexus-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	User         services.UserService
	Roadmap      services.RoadmapService
	Conversation services.ConversationService
	Interview    services.InterviewService
	Assessment   services.AssessmentService
	Challenge    services.ChallengeService
	Flashcard    services.FlashcardService
}

func wireServices(
	db *gorm.DB,
	log *logger.Logger,
	cfg Config,
	reposet Repos,
	provider llm.Provider,
	metrics *observability.Metrics,
	catalog cache.Catalog,
) Services {
	log.Info("Wiring services...")
	return Services{
		Auth: services.NewAuthService(log, reposet.User, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		User: services.NewUserService(log, reposet.User, reposet.Roadmap, reposet.Interview, reposet.Assessment),
		Roadmap: services.NewRoadmapService(log, provider, metrics, reposet.Roadmap, catalog),
		Conversation: services.NewConversationService(db, log, provider, metrics,
			reposet.Roadmap, reposet.Challenge, reposet.ChatMessage),
		Interview:  services.NewInterviewService(log, provider, metrics, reposet.Interview, reposet.User),
		Assessment: services.NewAssessmentService(log, provider, metrics, reposet.Assessment, reposet.User),
		Challenge:  services.NewChallengeService(log, provider, metrics, reposet.Challenge, reposet.Roadmap, catalog),
		Flashcard:  services.NewFlashcardService(log, provider, metrics, reposet.Roadmap),
	}
}
