package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 后台预置角色：只读审计、商品维护、客服、运营
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role:     "readonly_auditor",
			Policies: []Policy{{Object: "/admin/*", Action: "GET"}},
		},
		{
			Role:     "catalog",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/products", Action: "POST"},
				{Object: "/admin/products/:id", Action: "PUT"},
				{Object: "/admin/products/:id", Action: "DELETE"},
				{Object: "/admin/reviews/:id", Action: "DELETE"},
			},
		},
		{
			Role:     "support",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{{Object: "/admin/orders/:id/status", Action: "PATCH"}},
		},
		{
			Role:     "operations",
			Inherits: []string{"catalog", "support"},
			Policies: []Policy{{Object: "/admin/orders/:id", Action: "DELETE"}},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略，可重复执行
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		if err := s.applySeed(seed); err != nil {
			return fmt.Errorf("seed role %s failed: %w", seed.Role, err)
		}
	}
	return nil
}

func (s *Service) applySeed(seed RoleSeed) error {
	role, err := s.EnsureRole(seed.Role)
	if err != nil {
		return err
	}
	for _, parent := range seed.Inherits {
		parentRole, err := NormalizeRole(parent)
		if err != nil {
			return err
		}
		if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
			return err
		}
	}
	for _, policy := range seed.Policies {
		if err := s.GrantRolePolicy(role, policy.Object, policy.Action); err != nil {
			return err
		}
	}
	return nil
}
