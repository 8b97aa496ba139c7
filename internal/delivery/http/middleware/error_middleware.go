package middleware

import (
	"errors"
	"net/http"

	"talent-pool-backend/internal/delivery/http/response"
	"talent-pool-backend/pkg/apperror"
	"talent-pool-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler translates errors attached to the gin context into the JSON
// envelope. Unknown errors are logged server-side and answered with a generic
// message so no internal detail reaches the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Status, appErr.Code, appErr.Message, nil)
			} else {
				logger.Log.Error("Internal Server Error", "error", err,
					"method", c.Request.Method, "url", c.Request.URL.Path)
				response.Error(c, http.StatusInternalServerError, "",
					"An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
