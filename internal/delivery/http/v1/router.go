package v1

import (
	"net/http"
	"time"

	"talent-pool-backend/config"
	"talent-pool-backend/internal/delivery/http/middleware"
	"talent-pool-backend/internal/delivery/http/response"
	"talent-pool-backend/internal/domain"
	"talent-pool-backend/pkg/metrics"
	"talent-pool-backend/pkg/token"
	"talent-pool-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
)

// RouterDeps bundles everything the HTTP layer needs.
type RouterDeps struct {
	Config      *config.Config
	Tokens      *token.Manager
	Redis       *goredis.Client
	AuthUC      domain.AuthUsecase
	CandidateUC domain.CandidateUsecase
	RecruiterUC domain.RecruiterUsecase
	SkillUC     domain.SkillUsecase
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	router.Use(middleware.CORSMiddleware(deps.Config))
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "OK", gin.H{"time": time.Now().UTC()})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	authLimiter := middleware.RateLimit(deps.Redis, middleware.RateLimitConfig{
		Limit:     deps.Config.RateLimitLoginThreshold,
		Window:    time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second,
		KeyPrefix: "ratelimit:auth:",
	})

	api := router.Group("/api")

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.Config, deps.AuthUC))

	NewAuthHandler(api, protected, deps.AuthUC, authLimiter)

	candidateRoutes := protected.Group("")
	candidateRoutes.Use(middleware.RequireRole(domain.RoleCandidate))
	NewCandidateHandler(candidateRoutes, deps.CandidateUC)
	NewSkillHandler(candidateRoutes, deps.SkillUC)

	managerRoutes := protected.Group("")
	managerRoutes.Use(middleware.RequireRole(domain.RoleManager))
	NewRecruiterHandler(managerRoutes, deps.RecruiterUC)

	return router
}
