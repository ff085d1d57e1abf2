package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/nexus-backend/internal/http/response"
	"github.com/yungbote/nexus-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/auth/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
		Name     string `json:"name" form:"name"`
	}
	if !bind(c, &req) {
		return
	}
	user, err := ah.authService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"user": user})
}

// POST /api/auth/token accepts JSON or an OAuth2 password form.
func (ah *AuthHandler) Token(c *gin.Context) {
	var req struct {
		Email    string `json:"email" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if !bind(c, &req) {
		return
	}
	token, expiresAt, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(ah.authService.TokenTTL().Seconds()),
		"expires_at":   expiresAt,
	})
}
