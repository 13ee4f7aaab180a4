package middleware

import (
	"time"

	"listing-search/pkg/logger"

	"github.com/gin-gonic/gin"
)

// quietPaths are polled by infrastructure and only logged at DEBUG.
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		requestID := c.GetString(RequestIDKey)
		switch {
		case status >= 500:
			logger.GlobalLogger.Warnf("%s %s %d %v ip=%s request_id=%s", c.Request.Method, path, status, latency, c.ClientIP(), requestID)
		case quietPaths[c.Request.URL.Path]:
			logger.GlobalLogger.Debugf("%s %s %d %v", c.Request.Method, path, status, latency)
		default:
			logger.GlobalLogger.Printf("%s %s %d %v ip=%s request_id=%s", c.Request.Method, path, status, latency, c.ClientIP(), requestID)
		}
	}
}
