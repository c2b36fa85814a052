package handler

import (
	"rotation-tracker-backend/internal/config"
	"rotation-tracker-backend/internal/middleware"
	"rotation-tracker-backend/internal/repository"
	"rotation-tracker-backend/internal/service"
	"rotation-tracker-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// RouterDeps is everything the HTTP layer needs, built once in main.
type RouterDeps struct {
	Config       *config.Config
	DB           *gorm.DB
	RotationRepo repository.RotationRepositoryContract
	CaseLogRepo  repository.CaseLogRepositoryContract
	Tokens       *utils.TokenIssuer
	Logger       zerolog.Logger
}

// NewRouter wires services, handlers and routes onto a gin engine.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config

	rotationService := service.NewRotationService(deps.RotationRepo, deps.Logger)
	caseLogService := service.NewCaseLogService(deps.CaseLogRepo, deps.Logger)

	healthHandler := NewHealthHandler(deps.DB, deps.Logger)
	authHandler := NewAuthHandler()
	rotationHandler := NewRotationHandler(rotationService)
	caseLogHandler := NewCaseLogHandler(caseLogService)

	access := middleware.NewAccessControlMiddleware(deps.RotationRepo, deps.CaseLogRepo)

	r := gin.New()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(cfg.CORS))

	api := r.Group("/api")

	// Health routes (public)
	api.GET("/health", healthHandler.Health)
	api.GET("/health/db", healthHandler.Database)

	secured := api.Group("")
	secured.Use(middleware.AuthMiddleware(cfg.Auth, deps.Tokens))
	{
		secured.GET("/me", authHandler.Me)

		students := secured.Group("/students/:studentId", access.CheckStudentAccess())
		{
			students.GET("/rotations-summary", rotationHandler.GetRotationsSummary)
			students.GET("/case-logs", caseLogHandler.GetStudentCaseLogs)
		}

		rotations := secured.Group("/rotations/:rotationId", access.CheckRotationAccess())
		{
			rotations.GET("", rotationHandler.GetRotation)
			rotations.GET("/case-logs", caseLogHandler.GetRotationCaseLogs)
		}

		secured.POST("/case-logs", caseLogHandler.CreateCaseLog)
		caseLogs := secured.Group("/case-logs/:caseLogId", access.CheckCaseLogAccess())
		{
			caseLogs.GET("", caseLogHandler.GetCaseLog)
			caseLogs.PUT("", caseLogHandler.UpdateCaseLog)
			caseLogs.DELETE("", caseLogHandler.DeleteCaseLog)
		}
	}

	return r
}
