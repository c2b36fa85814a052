package handler

import (
	"net/http"
	"time"

	"rotation-tracker-backend/internal/database"
	"rotation-tracker-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewHealthHandler(db *gorm.DB, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		db:  db,
		log: log,
	}
}

// Health is the liveness probe; it never touches the database.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Database pings the pool and reports its statistics.
func (h *HealthHandler) Database(c *gin.Context) {
	stats, err := database.Check(c.Request.Context(), h.db)
	if err != nil {
		h.log.Error().Err(err).Msg("database health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "Database unavailable",
			"data":    stats,
		})
		return
	}
	utils.SuccessResponse(c, stats)
}
