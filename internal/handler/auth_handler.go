package handler

import (
	"rotation-tracker-backend/internal/middleware"
	"rotation-tracker-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Me reports who the server thinks the caller is. Without auth this is the
// configured single-tenant student.
func (h *AuthHandler) Me(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"studentId":     middleware.CurrentStudentID(c),
		"role":          middleware.CurrentRole(c),
		"authenticated": middleware.IsAuthenticated(c),
	})
}
