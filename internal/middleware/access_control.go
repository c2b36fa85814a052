package middleware

import (
	"net/http"
	"strconv"

	"rotation-tracker-backend/internal/apperror"
	"rotation-tracker-backend/internal/repository"
	"rotation-tracker-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const accessDenied = "Access denied: record belongs to another student"

// AccessControlMiddleware limits authenticated students to their own
// rotations and case logs. It is a no-op when auth is disabled.
type AccessControlMiddleware struct {
	rotationRepo repository.RotationRepositoryContract
	caseLogRepo  repository.CaseLogRepositoryContract
}

func NewAccessControlMiddleware(
	rotationRepo repository.RotationRepositoryContract,
	caseLogRepo repository.CaseLogRepositoryContract,
) *AccessControlMiddleware {
	return &AccessControlMiddleware{
		rotationRepo: rotationRepo,
		caseLogRepo:  caseLogRepo,
	}
}

// CheckStudentAccess compares the :studentId path parameter with the caller.
func (m *AccessControlMiddleware) CheckStudentAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		studentID, err := strconv.ParseInt(c.Param("studentId"), 10, 64)
		if err != nil || studentID <= 0 {
			// the handler reports the bad id
			c.Next()
			return
		}
		if !MayActFor(c, studentID) {
			utils.ErrorResponse(c, http.StatusForbidden, accessDenied)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CheckRotationAccess looks up the owner of the rotation named by
// :rotationId and checks that it is the caller. Unknown rotations fall
// through to the handler's 404.
func (m *AccessControlMiddleware) CheckRotationAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) || MayActFor(c, 0) {
			c.Next()
			return
		}

		rotationID, err := strconv.ParseInt(c.Param("rotationId"), 10, 64)
		if err != nil || rotationID <= 0 {
			c.Next()
			return
		}

		ownerID, err := m.rotationRepo.OwnerStudentID(c.Request.Context(), rotationID)
		if err != nil {
			if apperror.IsNotFound(err) {
				c.Next()
				return
			}
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to verify access")
			c.Abort()
			return
		}

		if !MayActFor(c, ownerID) {
			utils.ErrorResponse(c, http.StatusForbidden, accessDenied)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CheckCaseLogAccess does the same for :caseLogId.
func (m *AccessControlMiddleware) CheckCaseLogAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) || MayActFor(c, 0) {
			c.Next()
			return
		}

		caseLogID, err := strconv.ParseInt(c.Param("caseLogId"), 10, 64)
		if err != nil || caseLogID <= 0 {
			c.Next()
			return
		}

		ownerID, err := m.caseLogRepo.OwnerStudentID(c.Request.Context(), caseLogID)
		if err != nil {
			if apperror.IsNotFound(err) {
				c.Next()
				return
			}
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to verify access")
			c.Abort()
			return
		}

		if !MayActFor(c, ownerID) {
			utils.ErrorResponse(c, http.StatusForbidden, accessDenied)
			c.Abort()
			return
		}
		c.Next()
	}
}
