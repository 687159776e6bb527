package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/api/middleware"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/service"
	"github.com/vinay0094k/myteamda-withroles-mobile/pkg/response"
)

// MustGetUserID reads the caller id JWTAuth stored. On failure it writes a
// 401 and the handler should return at once.
func MustGetUserID(c *gin.Context) (string, bool) {
	return mustGetString(c, middleware.ContextUserID)
}

// MustGetRole reads the caller role JWTAuth stored.
func MustGetRole(c *gin.Context) (string, bool) {
	return mustGetString(c, middleware.ContextRole)
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, 10002, "Not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "Not authenticated")
		return "", false
	}
	return s, true
}

// mustGetActor combines MustGetUserID and MustGetRole.
func mustGetActor(c *gin.Context) (service.Actor, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return service.Actor{}, false
	}
	role, ok := MustGetRole(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{UserID: userID, Role: role}, true
}
