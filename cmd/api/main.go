package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talent-pool-backend/config"
	v1 "talent-pool-backend/internal/delivery/http/v1"
	"talent-pool-backend/internal/repository/postgres"
	"talent-pool-backend/internal/usecase"
	"talent-pool-backend/pkg/database"
	"talent-pool-backend/pkg/email"
	"talent-pool-backend/pkg/logger"
	"talent-pool-backend/pkg/redis"
	"talent-pool-backend/pkg/token"

	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting talent pool backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; nil client falls back to in-memory)
	rdb, err := redis.NewClient(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	skillRepo := postgres.NewSkillRepository(dbPool)

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - verification and interview emails will fail")
	}

	// 7. Setup Token Manager and UseCases
	tokens := token.NewManager(cfg.AppKey)
	validate := validator.New()
	authUC := usecase.NewAuthUsecase(userRepo, candidateRepo, emailService, tokens)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, skillRepo, validate)
	recruiterUC := usecase.NewRecruiterUsecase(candidateRepo, skillRepo, emailService)
	skillUC := usecase.NewSkillUsecase(skillRepo)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		Config:      cfg,
		Tokens:      tokens,
		Redis:       rdb,
		AuthUC:      authUC,
		CandidateUC: candidateUC,
		RecruiterUC: recruiterUC,
		SkillUC:     skillUC,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
