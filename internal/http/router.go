package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/nexus-backend/internal/http/handlers"
	httpMW "github.com/yungbote/nexus-backend/internal/http/middleware"
	"github.com/yungbote/nexus-backend/internal/observability"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	CORSOrigins []string
	// ServiceName enables otelgin spans when non-empty.
	ServiceName string

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler

	RoadmapHandler    *httpH.RoadmapHandler
	InterviewHandler  *httpH.InterviewHandler
	AssessmentHandler *httpH.AssessmentHandler
	ChallengeHandler  *httpH.ChallengeHandler
	FlashcardHandler  *httpH.FlashcardHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.Metrics(cfg.Metrics, "/metrics", "/healthz"))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.HealthCheck)
	}
	r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/token", cfg.AuthHandler.Token)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/users/me", cfg.UserHandler.GetMe)
			protected.GET("/users/me/profile", cfg.UserHandler.GetProfile)
		}

		// Roadmaps
		if cfg.RoadmapHandler != nil {
			protected.POST("/roadmaps/generate", cfg.RoadmapHandler.Generate)
			protected.GET("/roadmaps/ongoing", cfg.RoadmapHandler.ListOngoing)
			protected.GET("/roadmaps/suggested", cfg.RoadmapHandler.ListSuggested)
			protected.GET("/roadmaps/:id", cfg.RoadmapHandler.Get)
			protected.POST("/roadmaps/:id/enroll", cfg.RoadmapHandler.Enroll)
			protected.PATCH("/roadmaps/:id/nodes/:nodeId/status", cfg.RoadmapHandler.SetNodeStatus)
			protected.GET("/roadmaps/:id/nodes/:nodeId/chat", cfg.RoadmapHandler.NodeChatHistory)
			protected.POST("/roadmaps/:id/nodes/:nodeId/chat", cfg.RoadmapHandler.NodeChat)
			protected.DELETE("/roadmaps/:id", cfg.RoadmapHandler.Delete)
		}

		// Sessions
		if cfg.InterviewHandler != nil {
			protected.POST("/interviews/start", cfg.InterviewHandler.Start)
			protected.GET("/interviews/:id", cfg.InterviewHandler.Get)
			protected.POST("/interviews/:id/submit", cfg.InterviewHandler.Submit)
		}
		if cfg.AssessmentHandler != nil {
			protected.POST("/assessments/start", cfg.AssessmentHandler.Start)
			protected.GET("/assessments/:id", cfg.AssessmentHandler.Get)
			protected.POST("/assessments/:id/submit", cfg.AssessmentHandler.Submit)
		}

		// Challenges
		if cfg.ChallengeHandler != nil {
			protected.GET("/challenges", cfg.ChallengeHandler.List)
			protected.POST("/challenges/generate-recommended", cfg.ChallengeHandler.Recommend)
			protected.POST("/challenges/:id/hint", cfg.ChallengeHandler.Hint)
			protected.GET("/challenges/:id/chat", cfg.ChallengeHandler.ChatHistory)
			protected.POST("/challenges/:id/chat", cfg.ChallengeHandler.Chat)
		}

		if cfg.FlashcardHandler != nil {
			protected.POST("/flashcards/generate", cfg.FlashcardHandler.Generate)
		}
	}

	return r
}
