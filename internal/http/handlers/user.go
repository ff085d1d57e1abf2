package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/nexus-backend/internal/http/response"
	"github.com/yungbote/nexus-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	me, err := h.userService.Me(c.Request.Context(), principal(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": me})
}

// GET /api/users/me/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	p, err := h.userService.Profile(c.Request.Context(), principal(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, p)
}
