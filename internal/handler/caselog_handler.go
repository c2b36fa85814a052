package handler

import (
	"errors"
	"io"
	"net/http"

	"rotation-tracker-backend/internal/middleware"
	"rotation-tracker-backend/internal/models"
	"rotation-tracker-backend/internal/service"
	"rotation-tracker-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type CaseLogHandler struct {
	caseLogService *service.CaseLogService
}

func NewCaseLogHandler(caseLogService *service.CaseLogService) *CaseLogHandler {
	return &CaseLogHandler{
		caseLogService: caseLogService,
	}
}

// CreateCaseLog stores a new case log for a rotation
func (h *CaseLogHandler) CreateCaseLog(c *gin.Context) {
	var req models.CreateCaseLogRequest
	// an empty body falls through to the missing-fields check
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.StudentID > 0 && !middleware.MayActFor(c, int64(req.StudentID)) {
		utils.ErrorResponse(c, http.StatusForbidden, "Access denied: cannot log cases for another student")
		return
	}

	created, err := h.caseLogService.CreateCaseLog(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessWith(c, created, gin.H{"message": "Case log created successfully"})
}

// GetRotationCaseLogs lists a rotation's case logs without payloads
func (h *CaseLogHandler) GetRotationCaseLogs(c *gin.Context) {
	rotationID, ok := pathID(c, "rotationId", "rotation")
	if !ok {
		return
	}

	caseLogs, err := h.caseLogService.ListCaseLogsForRotation(c.Request.Context(), rotationID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.ListResponse(c, caseLogs)
}

// GetCaseLog returns one case log with its payload. ?format=json returns
// caseData as a JSON value instead of the stored text.
func (h *CaseLogHandler) GetCaseLog(c *gin.Context) {
	caseLogID, ok := pathID(c, "caseLogId", "case log")
	if !ok {
		return
	}

	caseLog, err := h.caseLogService.GetCaseLogByID(c.Request.Context(), caseLogID, c.Query("format") == "json")
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, caseLog)
}

// UpdateCaseLog applies a partial update
func (h *CaseLogHandler) UpdateCaseLog(c *gin.Context) {
	caseLogID, ok := pathID(c, "caseLogId", "case log")
	if !ok {
		return
	}

	var req models.UpdateCaseLogRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	caseLog, err := h.caseLogService.UpdateCaseLog(c.Request.Context(), caseLogID, req, middleware.Actor(c))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessWith(c, caseLog, gin.H{"message": "Case log updated successfully"})
}

// DeleteCaseLog soft-deletes a case log
func (h *CaseLogHandler) DeleteCaseLog(c *gin.Context) {
	caseLogID, ok := pathID(c, "caseLogId", "case log")
	if !ok {
		return
	}

	if err := h.caseLogService.DeleteCaseLog(c.Request.Context(), caseLogID, middleware.Actor(c)); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.MessageResponse(c, "Case log deleted successfully")
}

// GetStudentCaseLogs is the dashboard listing for a student
func (h *CaseLogHandler) GetStudentCaseLogs(c *gin.Context) {
	studentID, ok := pathID(c, "studentId", "student")
	if !ok {
		return
	}

	caseLogs, err := h.caseLogService.ListCaseLogsForStudent(c.Request.Context(), studentID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.ListResponse(c, caseLogs)
}
