package handler

import (
	"net/http"
	"strconv"

	"rotation-tracker-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// pathID parses a positive integer path parameter, answering 400 with
// "Invalid <label> ID" when it is not one.
func pathID(c *gin.Context, param, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+label+" ID")
		return 0, false
	}
	return id, true
}
