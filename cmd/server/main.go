package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"rotation-tracker-backend/internal/config"
	"rotation-tracker-backend/internal/database"
	"rotation-tracker-backend/internal/handler"
	"rotation-tracker-backend/internal/normalize"
	"rotation-tracker-backend/internal/repository"
	"rotation-tracker-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "rotation-tracker",
		Short:         "Clinical rotation and case log API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(v)
		},
	}
	rootCmd.PersistentFlags().String("port", "", "HTTP listen port (overrides PORT)")
	rootCmd.PersistentFlags().String("env", "", "runtime environment (overrides ENV)")
	rootCmd.PersistentFlags().String("db-driver", "", "mysql or postgres (overrides DB_DRIVER)")
	_ = v.BindPFlag("PORT", rootCmd.PersistentFlags().Lookup("port"))
	_ = v.BindPFlag("ENV", rootCmd.PersistentFlags().Lookup("env"))
	_ = v.BindPFlag("DB_DRIVER", rootCmd.PersistentFlags().Lookup("db-driver"))

	rootCmd.AddCommand(serveCmd(v))
	rootCmd.AddCommand(pingDBCmd(v))
	rootCmd.AddCommand(tokenCmd(v))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(v)
		},
	}
}

func pingDBCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "ping-db",
		Short: "Check database connectivity and print pool statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(v)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Server)

			db, err := database.Connect(cfg, logger)
			if err != nil {
				return err
			}
			defer database.Close(db)

			stats, err := database.Check(cmd.Context(), db)
			if err != nil {
				return fmt.Errorf("ping database: %w", err)
			}
			logger.Info().
				Int("open", stats.OpenConnections).
				Int("in_use", stats.InUse).
				Int("idle", stats.Idle).
				Msg("database reachable")
			return nil
		},
	}
}

func tokenCmd(v *viper.Viper) *cobra.Command {
	var studentID int64
	var role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(v)
			if err != nil {
				return err
			}
			if cfg.JWT.AccessSecret == "" {
				return errors.New("JWT_ACCESS_SECRET is not set")
			}
			token, err := utils.NewTokenIssuer(cfg.JWT.AccessSecret, cfg.JWT.AccessTokenExpiry).
				GenerateAccessToken(studentID, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().Int64Var(&studentID, "student", 522, "student id carried by the token")
	cmd.Flags().StringVar(&role, "role", utils.RoleStudent, "student, preceptor or admin")
	return cmd
}

func newLogger(cfg config.ServerConfig) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	}
	if level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil && level != zerolog.NoLevel {
		logger = logger.Level(level)
	}
	return logger
}

func runServer(v *viper.Viper) error {
	// 1. Load configuration
	cfg, err := config.LoadConfig(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg.Server)
	logger.Info().Str("env", cfg.Server.Env).Str("db_driver", cfg.Database.Driver).Msg("configuration loaded")

	// 2. Initialize database connection
	db, err := database.Connect(cfg, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer database.Close(db)

	lobCharset, err := normalize.LookupEncoding(cfg.Database.LobCharset)
	if err != nil {
		return err
	}

	// 3. Initialize repositories
	rotationRepo := repository.NewRotationRepo(db)
	caseLogRepo := repository.NewCaseLogRepo(db, lobCharset, logger)

	// 4. Setup router
	gin.SetMode(cfg.Server.GinMode)
	router := handler.NewRouter(handler.RouterDeps{
		Config:       cfg,
		DB:           db,
		RotationRepo: rotationRepo,
		CaseLogRepo:  caseLogRepo,
		Tokens:       utils.NewTokenIssuer(cfg.JWT.AccessSecret, cfg.JWT.AccessTokenExpiry),
		Logger:       logger,
	})

	if !cfg.Auth.Enabled {
		logger.Warn().Int64("student_id", cfg.Auth.DefaultStudentID).Msg("auth disabled, serving as single-tenant student")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5. Setup graceful shutdown
	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
