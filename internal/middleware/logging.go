package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request once the handler chain finishes.
// Errors attached with c.Error are included; 5xx responses log at error level.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	logEntry := logger.WithField("component", "http")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := logEntry.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"duration":   time.Since(start),
			"client_ip":  c.ClientIP(),
			"bytes":      c.Writer.Size(),
			"user_agent": c.Request.UserAgent(),
		})
		if err := c.Errors.Last(); err != nil {
			entry = entry.WithError(err.Err)
		}

		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("Request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request processed")
		}
	}
}
