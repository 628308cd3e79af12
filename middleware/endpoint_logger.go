package middleware

import (
	"fmt"
	"time"

	"github.com/ariebrainware/biosecure-portal/model"
	"github.com/ariebrainware/biosecure-portal/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger logs each HTTP request as an activity event. It must run before
// SessionMiddleware so the session, if any, is visible once the handler returns.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"query":       c.Request.URL.RawQuery,
		}

		var actor string
		role := model.RoleNone
		if s, ok := GetSession(c); ok {
			details["session_id"] = s.ID
			actor = s.Phone()
			role = s.Role
		}

		util.LogActivity(c.Request.Context(), util.ActivityEvent{
			EventType: util.EventEndpointCall,
			Actor:     actor,
			Role:      role,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		})
	}
}
