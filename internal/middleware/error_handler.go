package middleware

import (
	"listing-search/internal/errors"
	"listing-search/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		appErr := errors.MapError(c.Errors.Last().Err)

		logger.GlobalLogger.Errorf("Request failed: request_id=%s path=%s method=%s client_ip=%s status=%d error=%s",
			c.GetString(RequestIDKey),
			c.Request.URL.Path,
			c.Request.Method,
			c.ClientIP(),
			appErr.HTTPStatus,
			appErr.TechnicalMessage)

		c.JSON(appErr.HTTPStatus, gin.H{
			"error": gin.H{
				"message":    appErr.UserMessage,
				"code":       appErr.Code,
				"request_id": c.GetString(RequestIDKey),
			},
		})
	}
}
