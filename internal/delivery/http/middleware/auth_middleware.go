package middleware

import (
	"context"
	"net/http"
	"strings"

	"talent-pool-backend/config"
	"talent-pool-backend/internal/delivery/http/response"
	"talent-pool-backend/internal/domain"
	"talent-pool-backend/pkg/apperror"
	"talent-pool-backend/pkg/logger"
	"talent-pool-backend/pkg/metrics"
	"talent-pool-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware is the admission gate: it validates the bearer credential,
// resolves the identity against the database and stores it in the request
// context. Every rejection is a structured {message, code} response; nothing
// is thrown past this boundary.
func AuthMiddleware(tokens *token.Manager, cfg *config.Config, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		// The gate never lets a fault escape: anything unexpected becomes a
		// structured AUTH_ERROR rejection.
		defer func() {
			if r := recover(); r != nil {
				logger.Log.Error("Auth gate failure", "panic", r)
				deny(c, http.StatusUnauthorized, apperror.CodeAuthError, "Authentication error")
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			deny(c, http.StatusUnauthorized, apperror.CodeTokenMissing, "Authentication token not provided")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			deny(c, http.StatusUnauthorized, apperror.CodeInvalidToken, "Invalid or expired token")
			return
		}

		// Resolve against the database; the JWT role claim may be stale.
		// Lookup failures of any kind look identical to an invalid token so
		// the client learns nothing about why resolution failed.
		user, err := authUC.GetCurrentUser(c.Request.Context(), claims.UserID)
		if err != nil {
			deny(c, http.StatusUnauthorized, apperror.CodeInvalidToken, "Invalid or expired token")
			return
		}

		if cfg.RequireVerifiedEmail && !user.EmailVerified {
			deny(c, http.StatusUnauthorized, apperror.CodeEmailNotVerified, "Please verify your email first")
			return
		}

		role := user.Role
		if role == "" {
			role = domain.RoleCandidate // Fallback
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)
		c.Set(string(domain.KeyUserRole), role)

		// Usecases read the identity through context.Context, not gin keys.
		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, user.ID)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, user.Email)
		ctx = context.WithValue(ctx, domain.KeyUserRole, role)
		c.Request = c.Request.WithContext(ctx)

		metrics.AuthDecisions.WithLabelValues("admitted").Inc()
		logger.Log.Debug("Request admitted",
			"user_id", user.ID, "role", role,
			"method", c.Request.Method, "url", c.Request.URL.Path)

		c.Next()
	}
}

// RequireRole admits only callers whose resolved role is in the allow-list.
// The variadic list is normalized into a set once, at route registration.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := c.Get(string(domain.KeyUserRole))
		roleStr, isStr := role.(string)
		if !ok || !isStr || roleStr == "" {
			deny(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "User not authenticated")
			return
		}

		if _, ok := allowed[roleStr]; !ok {
			deny(c, http.StatusForbidden, apperror.CodeForbidden, "Access denied. Role not authorized")
			return
		}

		c.Next()
	}
}

func deny(c *gin.Context, status int, code, message string) {
	metrics.AuthDecisions.WithLabelValues(code).Inc()
	logger.Log.Warn("Request denied",
		"code", code, "method", c.Request.Method, "url", c.Request.URL.Path)
	response.Error(c, status, code, message, nil)
	c.Abort()
}
