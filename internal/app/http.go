package app

import (
	"github.com/yungbote/nexus-backend/internal/http"
	httpMW "github.com/yungbote/nexus-backend/internal/http/middleware"
	"github.com/yungbote/nexus-backend/internal/observability"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, s Services, h Handlers) *http.Server {
	log.Info("Wiring router...")
	rc := http.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		AuthHandler:    h.Auth,
		AuthMiddleware: httpMW.NewAuthMiddleware(log, s.Auth),
		UserHandler:    h.User,

		RoadmapHandler:    h.Roadmap,
		InterviewHandler:  h.Interview,
		AssessmentHandler: h.Assessment,
		ChallengeHandler:  h.Challenge,
		FlashcardHandler:  h.Flashcard,

		HealthHandler: h.Health,
	}
	if cfg.Otel.Enabled {
		rc.ServiceName = cfg.Otel.ServiceName
	}
	return http.NewServer(cfg.HTTP.Address(), rc)
}
