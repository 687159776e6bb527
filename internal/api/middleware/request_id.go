package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vinay0094k/myteamda-withroles-mobile/pkg/response"
)

// requestIDMaxLen bounds caller-supplied ids before they reach the logs.
const requestIDMaxLen = 64

// RequestID propagates X-Request-ID, generating a UUID when absent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(response.RequestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
