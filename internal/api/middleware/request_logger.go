package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func RequestLogger(l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header("X-Request-Id", reqID)
		c.Set("request_id", reqID)

		c.Next()

		lat := time.Since(start)
		status := c.Writer.Status()

		var email string
		if id, ok := IdentityFrom(c); ok {
			email = id.Email
		}

		route := c.FullPath()
		entry := l.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       route,
			"resource":   resourceOf(route),
			"status":     status,
			"latency_ms": lat.Milliseconds(),
			"ip":         c.ClientIP(),
			"email":      email,
		})

		if id := c.Param("id"); id != "" {
			entry = entry.WithField("resource_id", id)
		}
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// resourceOf names the collection a route serves: "/orders/:key" is
// "orders", "/users/admin/:email" is "users".
func resourceOf(route string) string {
	seg, _, _ := strings.Cut(strings.TrimPrefix(route, "/"), "/")
	if seg == "login" || seg == "admin" {
		return "users"
	}
	return seg
}
