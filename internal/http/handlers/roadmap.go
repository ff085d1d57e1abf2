package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/nexus-backend/internal/http/response"
	"github.com/yungbote/nexus-backend/internal/services"
)

type RoadmapHandler struct {
	roadmaps     services.RoadmapService
	conversation services.ConversationService
}

func NewRoadmapHandler(roadmaps services.RoadmapService, conversation services.ConversationService) *RoadmapHandler {
	return &RoadmapHandler{roadmaps: roadmaps, conversation: conversation}
}

// POST /api/roadmaps/generate
func (h *RoadmapHandler) Generate(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if !bind(c, &req) {
		return
	}
	r, err := h.roadmaps.Generate(c.Request.Context(), principal(c), req.Prompt)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"roadmap": r})
}

// GET /api/roadmaps/ongoing
func (h *RoadmapHandler) ListOngoing(c *gin.Context) {
	rows, err := h.roadmaps.ListOngoing(c.Request.Context(), principal(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"roadmaps": rows})
}

// GET /api/roadmaps/suggested
func (h *RoadmapHandler) ListSuggested(c *gin.Context) {
	rows, err := h.roadmaps.ListSuggested(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"roadmaps": rows})
}

// GET /api/roadmaps/:id
func (h *RoadmapHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	r, err := h.roadmaps.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"roadmap": r})
}

// POST /api/roadmaps/:id/enroll
func (h *RoadmapHandler) Enroll(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	r, created, err := h.roadmaps.Enroll(c.Request.Context(), principal(c), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"roadmap_id": r.ID, "created": created})
}

// PATCH /api/roadmaps/:id/nodes/:nodeId/status
func (h *RoadmapHandler) SetNodeStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if !bind(c, &req) {
		return
	}
	r, err := h.roadmaps.SetStatus(c.Request.Context(), principal(c), id, c.Param("nodeId"), req.Status)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"roadmap": r})
}

// GET /api/roadmaps/:id/nodes/:nodeId/chat
func (h *RoadmapHandler) NodeChatHistory(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	msgs, err := h.conversation.NodeHistory(c.Request.Context(), principal(c), id, c.Param("nodeId"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"messages": msgs})
}

// POST /api/roadmaps/:id/nodes/:nodeId/chat
func (h *RoadmapHandler) NodeChat(c *gin.Context) {
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
	msg, err := h.conversation.NodeChat(c.Request.Context(), principal(c), id, c.Param("nodeId"), req.Text)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": msg})
}

// DELETE /api/roadmaps/:id
func (h *RoadmapHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.roadmaps.Delete(c.Request.Context(), principal(c), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
