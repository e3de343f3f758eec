package admin

import (
	"github.com/shopfront-next/internal/authz"
	handlershared "github.com/shopfront-next/internal/http/handlers/shared"
	"github.com/shopfront-next/internal/http/response"
	"github.com/shopfront-next/internal/logger"
	"github.com/shopfront-next/internal/service"

	"github.com/gin-gonic/gin"
)

var adminErrorRules = handlershared.ConcatMappedErrors(
	[]handlershared.MappedError{
		{Target: service.ErrAdminExists, Code: response.CodeConflict, Key: "error.admin_exists"},
		{Target: service.ErrAdminInvalid, Code: response.CodeBadRequest, Key: "error.admin_invalid"},
		{Target: service.ErrAdminNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
	},
	handlershared.UpstreamErrorRules,
)

var authzErrorRules = handlershared.ConcatMappedErrors(
	[]handlershared.MappedError{
		{Target: authz.ErrUnavailable, Code: response.CodeServiceUnavailable, Key: "error.upstream_unavailable"},
		{Target: authz.ErrRoleRequired, Code: response.CodeBadRequest, Key: "error.bad_request"},
		{Target: authz.ErrRoleReserved, Code: response.CodeBadRequest, Key: "error.bad_request"},
		{Target: authz.ErrActionRequired, Code: response.CodeBadRequest, Key: "error.bad_request"},
		{Target: authz.ErrAdminIDRequired, Code: response.CodeBadRequest, Key: "error.bad_request"},
	},
	handlershared.UpstreamErrorRules,
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type authzSetAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

type authzCreateAdminPayload struct {
	Username string   `json:"username" binding:"required"`
	Password string   `json:"password" binding:"required"`
	IsSuper  bool     `json:"is_super"`
	Roles    []string `json:"roles"`
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, roles)
}

// CreateAuthzRole 创建角色
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if err := handlershared.BindJSON(c, &req, ""); err != nil {
		respondMappedError(c, err, nil)
		return
	}

	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondMappedError(c, err, authzErrorRules)
		return
	}

	logger.Infow("admin_authz_role_created",
		"operator_admin_id", currentAdminID(c),
		"operator_username", currentUsername(c),
		"role", role,
	)
	response.Success(c, gin.H{"role": role})
}

// GrantAuthzPolicy 授予角色策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := handlershared.BindJSON(c, &req, ""); err != nil {
		respondMappedError(c, err, nil)
		return
	}

	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondMappedError(c, err, authzErrorRules)
		return
	}

	logger.Infow("admin_authz_policy_granted",
		"operator_admin_id", currentAdminID(c),
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)
	response.Success(c, nil)
}

// RevokeAuthzPolicy 撤销角色策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := handlershared.BindJSON(c, &req, ""); err != nil {
		respondMappedError(c, err, nil)
		return
	}

	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondMappedError(c, err, authzErrorRules)
		return
	}

	logger.Infow("admin_authz_policy_revoked",
		"operator_admin_id", currentAdminID(c),
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)
	response.Success(c, nil)
}

// ListAuthzRolePolicies 查询角色直接持有的策略
func (h *Handler) ListAuthzRolePolicies(c *gin.Context) {
	policies, err := h.AuthzService.ListRolePolicies(c.Param("role"))
	if err != nil {
		respondMappedError(c, err, authzErrorRules)
		return
	}
	response.Success(c, policies)
}

// ListAuthzAdmins 获取管理员列表
func (h *Handler) ListAuthzAdmins(c *gin.Context) {
	admins, err := h.AdminRepo.List()
	if err != nil {
		respondError(c, response.CodeServiceUnavailable, "error.upstream_unavailable", err)
		return
	}

	items := make([]gin.H, 0, len(admins))
	for _, admin := range admins {
		roles, roleErr := h.AuthzService.GetAdminRoles(admin.ID)
		if roleErr != nil {
			respondError(c, response.CodeInternal, "error.internal", roleErr)
			return
		}
		items = append(items, gin.H{
			"id":            admin.ID,
			"username":      admin.Username,
			"is_super":      admin.IsSuper,
			"last_login_at": admin.LastLoginAt,
			"created_at":    admin.CreatedAt,
			"roles":         roles,
		})
	}

	response.Success(c, items)
}

// CreateAuthzAdmin 创建管理员并分配角色
func (h *Handler) CreateAuthzAdmin(c *gin.Context) {
	var req authzCreateAdminPayload
	if err := handlershared.BindJSON(c, &req, ""); err != nil {
		respondMappedError(c, err, nil)
		return
	}

	admin, err := h.AuthService.CreateAdmin(req.Username, req.Password, req.IsSuper)
	if err != nil {
		respondMappedError(c, err, adminErrorRules)
		return
	}
	if len(req.Roles) > 0 {
		if err := h.AuthzService.SetAdminRoles(admin.ID, req.Roles); err != nil {
			respondMappedError(c, err, authzErrorRules)
			return
		}
	}

	logger.Infow("admin_authz_admin_created",
		"operator_admin_id", currentAdminID(c),
		"target_admin_id", admin.ID,
		"target_username", admin.Username,
		"is_super", admin.IsSuper,
		"roles", req.Roles,
	)
	response.Success(c, admin)
}

// GetAuthzAdminRoles 获取管理员角色
func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, roles)
}

// SetAuthzAdminRoles 设置管理员角色
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeServiceUnavailable, "error.upstream_unavailable", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}

	var req authzSetAdminRolesPayload
	if err := handlershared.BindJSON(c, &req, ""); err != nil {
		respondMappedError(c, err, nil)
		return
	}
	if err := h.AuthzService.SetAdminRoles(adminID, req.Roles); err != nil {
		respondMappedError(c, err, authzErrorRules)
		return
	}

	logger.Infow("admin_authz_admin_roles_updated",
		"operator_admin_id", currentAdminID(c),
		"target_admin_id", adminID,
		"target_username", admin.Username,
		"roles", req.Roles,
	)
	response.Success(c, nil)
}
