package admin

import (
	handlershared "github.com/shopfront-next/internal/http/handlers/shared"
	"github.com/shopfront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondMappedError(c *gin.Context, err error, rules []handlershared.MappedError) {
	handlershared.RespondMappedError(c, err, rules, response.CodeInternal, "error.internal")
}
