package handler

import (
	"rotation-tracker-backend/internal/service"
	"rotation-tracker-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type RotationHandler struct {
	rotationService *service.RotationService
}

func NewRotationHandler(rotationService *service.RotationService) *RotationHandler {
	return &RotationHandler{
		rotationService: rotationService,
	}
}

// GetRotationsSummary lists a student's rotations, newest first, with case
// log counts.
func (h *RotationHandler) GetRotationsSummary(c *gin.Context) {
	studentID, ok := pathID(c, "studentId", "student")
	if !ok {
		return
	}

	rotations, err := h.rotationService.ListRotationsForStudent(c.Request.Context(), studentID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessWith(c, rotations, gin.H{"studentId": studentID})
}

// GetRotation retrieves a specific rotation by ID
func (h *RotationHandler) GetRotation(c *gin.Context) {
	rotationID, ok := pathID(c, "rotationId", "rotation")
	if !ok {
		return
	}

	rotation, err := h.rotationService.GetRotationByID(c.Request.Context(), rotationID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, rotation)
}
