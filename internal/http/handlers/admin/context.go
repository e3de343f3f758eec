package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/shopfront-next/internal/http/handlers/shared"
	"github.com/shopfront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetAdminID(c)
}

func currentAdminID(c *gin.Context) uint {
	value, exists := c.Get(handlershared.ContextKeyAdminID)
	if !exists {
		return 0
	}
	if adminID, ok := value.(uint); ok {
		return adminID
	}
	return 0
}

func currentUsername(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(handlershared.ContextKeyUsername))
}

func currentIsSuper(c *gin.Context) bool {
	return c.GetBool(handlershared.ContextKeyAdminIsSuper)
}

func parseAdminIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}
