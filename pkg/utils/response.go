package utils

import (
	"errors"
	"net/http"

	"rotation-tracker-backend/internal/apperror"

	"github.com/gin-gonic/gin"
)

// SuccessResponse sends a standard success JSON response
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// SuccessWith sends a success response carrying extra top-level fields
// next to data, such as count or studentId.
func SuccessWith(c *gin.Context, data interface{}, extra gin.H) {
	body := gin.H{
		"success": true,
		"data":    data,
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// ListResponse sends a list with its length
func ListResponse[T any](c *gin.Context, items []T) {
	SuccessWith(c, items, gin.H{"count": len(items)})
}

// ErrorResponse sends a standard error JSON response
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}

// MessageResponse sends a simple message response
func MessageResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// AppErrorResponse writes err using its apperror kind. Data source failures
// keep a generic error text and surface the driver message under "message".
func AppErrorResponse(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error",
			"message": err.Error(),
		})
		return
	}

	if appErr.Kind == apperror.KindDataSource && appErr.Err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   appErr.Message,
			"message": appErr.Err.Error(),
		})
		return
	}

	ErrorResponse(c, appErr.StatusCode(), appErr.Message)
}
