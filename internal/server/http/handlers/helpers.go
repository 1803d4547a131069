package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// CurrentSessionID extracts the shopper session identifier from context.
func CurrentSessionID(c *gin.Context) string {
	val, ok := c.Get(middleware.SessionIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

// CurrentUserID extracts the shopper account identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}
