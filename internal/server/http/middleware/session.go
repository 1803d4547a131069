package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// SessionIDContextKey is a gin context key for the shopper session identifier.
	SessionIDContextKey = "sessionID"
	// UserIDContextKey is a gin context key for the shopper account identifier.
	UserIDContextKey = "userID"

	sessionHeader = "X-Session-ID"
	userHeader    = "X-User-ID"
)

// SessionRequired ensures a session identifier accompanies the request.
// The guard against duplicate submissions is keyed by it.
func SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(sessionHeader))
		if sessionID == "" {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.Set(SessionIDContextKey, sessionID)

		if raw := strings.TrimSpace(c.GetHeader(userHeader)); raw != "" {
			if userID, err := strconv.ParseInt(raw, 10, 64); err == nil {
				c.Set(UserIDContextKey, userID)
			}
		}

		c.Next()
	}
}
