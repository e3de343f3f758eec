package admin

import (
	"errors"
	"strings"

	handlershared "github.com/shopfront-next/internal/http/handlers/shared"
	"github.com/shopfront-next/internal/http/response"
	"github.com/shopfront-next/internal/logger"
	"github.com/shopfront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 管理员登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := handlershared.BindJSON(c, &req, ""); err != nil {
		respondMappedError(c, err, nil)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logger.Warnw("admin_login_failed",
				"username", strings.TrimSpace(req.Username),
				"client_ip", c.ClientIP(),
			)
			respondError(c, response.CodeUnauthorized, "error.login_invalid", nil)
			return
		}
		respondError(c, response.CodeServiceUnavailable, "error.upstream_unavailable", err)
		return
	}

	logger.Infow("admin_login_succeeded", "admin_id", admin.ID, "username", admin.Username)
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"admin":      admin,
	})
}

// Logout 注销当前管理员的全部令牌
func (h *Handler) Logout(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	if err := h.AuthService.RevokeSessions(adminID); err != nil {
		respondMappedError(c, err, adminErrorRules)
		return
	}
	response.Success(c, nil)
}

// GetMe 获取当前管理员信息与权限快照
func (h *Handler) GetMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	policies, err := h.AuthzService.GetAdminPolicies(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{
		"admin_id": adminID,
		"username": currentUsername(c),
		"is_super": currentIsSuper(c),
		"roles":    roles,
		"policies": policies,
	})
}
