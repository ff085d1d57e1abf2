package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/nexus-backend/internal/http/response"
	"github.com/yungbote/nexus-backend/internal/services"
)

type startSessionReq struct {
	Topic string `json:"topic"`
}

type InterviewHandler struct {
	interviews services.InterviewService
}

func NewInterviewHandler(interviews services.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews}
}

// POST /api/interviews/start
func (h *InterviewHandler) Start(c *gin.Context) {
	var req startSessionReq
	if !bind(c, &req) {
		return
	}
	s, err := h.interviews.Start(c.Request.Context(), principal(c), req.Topic)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"session": s})
}

// GET /api/interviews/:id
func (h *InterviewHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	s, err := h.interviews.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": s})
}

// POST /api/interviews/:id/submit
//
// Body: {"answers": {"0": "...", "7": "..."}} keyed by question index.
func (h *InterviewHandler) Submit(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Answers map[int]string `json:"answers"`
	}
	if !bind(c, &req) {
		return
	}
	s, err := h.interviews.Submit(c.Request.Context(), principal(c), id, req.Answers)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": s})
}

type AssessmentHandler struct {
	assessments services.AssessmentService
}

func NewAssessmentHandler(assessments services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments}
}

// POST /api/assessments/start
func (h *AssessmentHandler) Start(c *gin.Context) {
	var req startSessionReq
	if !bind(c, &req) {
		return
	}
	s, err := h.assessments.Start(c.Request.Context(), principal(c), req.Topic)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"session": s})
}

// GET /api/assessments/:id
func (h *AssessmentHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	s, err := h.assessments.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": s})
}

// POST /api/assessments/:id/submit
func (h *AssessmentHandler) Submit(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		KnowledgeAnswers   map[int]string `json:"knowledge_answers"`
		ProjectSubmissions map[int]string `json:"project_submissions"`
	}
	if !bind(c, &req) {
		return
	}
	s, err := h.assessments.Submit(c.Request.Context(), principal(c), id, req.KnowledgeAnswers, req.ProjectSubmissions)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": s})
}
