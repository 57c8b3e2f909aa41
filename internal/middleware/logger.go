package middleware

import (
	"time"

	"brewline/internal/apperr"
	"brewline/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger writes one structured line per request. Errors attached with
// c.Error are included; internal ones are logged at error level.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if user, ok := auth.CurrentUser(c); ok {
			fields["user_id"] = user.ID
		}

		entry := log.WithFields(fields)
		if err := c.Errors.Last(); err != nil {
			entry = entry.WithError(err.Err)
			if apperr.KindOf(err.Err) == apperr.KindInternal {
				entry.Error("request failed")
				return
			}
		}
		entry.Info("request")
	}
}
