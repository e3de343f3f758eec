package shared

import (
	"github.com/shopfront-next/internal/http/response"
	"github.com/shopfront-next/internal/i18n"
	"github.com/shopfront-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(ContextKeyRequestID); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.With("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", code,
			"key", key,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}

// BindJSON 解析请求体，失败时返回 400 AppError；key 为空时使用 error.bad_request。
func BindJSON(c *gin.Context, obj interface{}, key string) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		if key == "" {
			key = "error.bad_request"
		}
		return response.WrapError(response.CodeBadRequest, key, err)
	}
	return nil
}
