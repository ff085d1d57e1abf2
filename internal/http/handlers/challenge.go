package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/nexus-backend/internal/http/response"
	"github.com/yungbote/nexus-backend/internal/services"
)

type ChallengeHandler struct {
	challenges   services.ChallengeService
	conversation services.ConversationService
}

func NewChallengeHandler(challenges services.ChallengeService, conversation services.ConversationService) *ChallengeHandler {
	return &ChallengeHandler{challenges: challenges, conversation: conversation}
}

// GET /api/challenges
func (h *ChallengeHandler) List(c *gin.Context) {
	rows, err := h.challenges.Catalog(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"challenges": rows})
}

// POST /api/challenges/generate-recommended
func (h *ChallengeHandler) Recommend(c *gin.Context) {
	rows, err := h.challenges.Recommend(c.Request.Context(), principal(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"challenges": rows})
}

// POST /api/challenges/:id/hint
func (h *ChallengeHandler) Hint(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		UserCode string `json:"user_code"`
	}
	if !bind(c, &req) {
		return
	}
	hint, err := h.challenges.Hint(c.Request.Context(), id, req.UserCode)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"hint": hint})
}

// GET /api/challenges/:id/chat
func (h *ChallengeHandler) ChatHistory(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	msgs, err := h.conversation.ChallengeHistory(c.Request.Context(), principal(c), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"messages": msgs})
}

// POST /api/challenges/:id/chat
func (h *ChallengeHandler) Chat(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if !bind(c, &req) {
		return
	}
	msg, err := h.conversation.ChallengeChat(c.Request.Context(), principal(c), id, req.Text)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": msg})
}

type FlashcardHandler struct {
	flashcards services.FlashcardService
}

func NewFlashcardHandler(flashcards services.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{flashcards: flashcards}
}

// POST /api/flashcards/generate
func (h *FlashcardHandler) Generate(c *gin.Context) {
	var req struct {
		RoadmapID uuid.UUID `json:"roadmap_id"`
	}
	if !bind(c, &req) {
		return
	}
	deck, err := h.flashcards.GenerateDeck(c.Request.Context(), principal(c), req.RoadmapID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deck": deck})
}
