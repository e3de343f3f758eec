package authz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceAdminWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("ops", "/admin/products/:id", "PUT"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetAdminRoles(1, []string{"ops"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}

	allow, err := svc.EnforceAdmin(1, "/api/v1/admin/products/42", "put")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceAdmin(1, "/api/v1/admin/products/42", "DELETE")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetAdminRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("ops", "/admin/orders/:id/status", "PATCH"); err != nil {
		t.Fatalf("grant ops policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("catalog_editor", "/admin/products", "POST"); err != nil {
		t.Fatalf("grant finance policy failed: %v", err)
	}

	if err := svc.SetAdminRoles(2, []string{"ops"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	roles, err := svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:ops" {
		t.Fatalf("roles want [role:ops], got=%v", roles)
	}

	if err := svc.SetAdminRoles(2, []string{"catalog_editor"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err = svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:catalog_editor" {
		t.Fatalf("roles want [role:catalog_editor], got=%v", roles)
	}

	allow, err := svc.EnforceAdmin(2, "/admin/orders/:id/status", "PATCH")
	if err != nil {
		t.Fatalf("enforce old role failed: %v", err)
	}
	if allow {
		t.Fatalf("expected old role permission removed")
	}

	allow, err = svc.EnforceAdmin(2, "/admin/products", "POST")
	if err != nil {
		t.Fatalf("enforce new role failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected new role permission granted")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "admin/orders", want: "/admin/orders"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap should be idempotent: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	wantRoles := map[string]bool{
		"role:readonly_auditor": true,
		"role:catalog":          true,
		"role:support":          true,
		"role:operations":       true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}

	cases := []struct {
		role   string
		obj    string
		act    string
		expect bool
	}{
		{"readonly_auditor", "/api/v1/admin/orders", "GET", true},
		{"readonly_auditor", "/api/v1/admin/orders/:id/status", "PATCH", false},
		{"support", "/api/v1/admin/orders/:id/status", "PATCH", true},
		{"support", "/api/v1/admin/products", "POST", false},
		{"catalog", "/api/v1/admin/products/:id", "PUT", true},
		{"catalog", "/api/v1/admin/orders/:id", "DELETE", false},
		{"operations", "/api/v1/admin/orders/:id", "DELETE", true},
		{"operations", "/api/v1/admin/reviews/:id", "DELETE", true},
		{"operations", "/api/v1/admin/authz/admins/:id/roles", "PUT", false},
	}
	for i, tc := range cases {
		adminID := uint(100 + i)
		if err := svc.SetAdminRoles(adminID, []string{tc.role}); err != nil {
			t.Fatalf("set admin roles failed: %v", err)
		}
		allow, err := svc.EnforceAdmin(adminID, tc.obj, tc.act)
		if err != nil {
			t.Fatalf("enforce failed: %v", err)
		}
		if allow != tc.expect {
			t.Fatalf("%s %s %s: want %v got %v", tc.role, tc.act, tc.obj, tc.expect, allow)
		}
	}
}

func TestRevokeRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("support", "/admin/orders/:id/status", "PATCH"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if err := svc.SetAdminRoles(7, []string{"support"}); err != nil {
		t.Fatalf("set roles failed: %v", err)
	}
	policies, err := svc.ListRolePolicies("support")
	if err != nil {
		t.Fatalf("list role policies failed: %v", err)
	}
	if len(policies) != 1 || policies[0].Object != "/admin/orders/:id/status" || policies[0].Action != "PATCH" {
		t.Fatalf("unexpected policies: %+v", policies)
	}

	if err := svc.RevokeRolePolicy("role:support", "/api/v1/admin/orders/:id/status", "patch"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if err := svc.RevokeRolePolicy("support", "/admin/orders/:id/status", "PATCH"); err != nil {
		t.Fatalf("revoke twice should succeed: %v", err)
	}
	allow, err := svc.EnforceAdmin(7, "/admin/orders/9/status", "PATCH")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if allow {
		t.Fatalf("expected revoked policy to deny")
	}
	policies, err = svc.ListRolePolicies("support")
	if err != nil {
		t.Fatalf("list role policies failed: %v", err)
	}
	if len(policies) != 0 {
		t.Fatalf("expected no policies, got %+v", policies)
	}
}

func TestNormalizeRoleRejectsEmptyAndReserved(t *testing.T) {
	if got, err := NormalizeRole(" night shift "); err != nil || got != "role:night_shift" {
		t.Fatalf("normalize role failed: got=%q err=%v", got, err)
	}
	if _, err := NormalizeRole("  "); !errors.Is(err, ErrRoleRequired) {
		t.Fatalf("expected role required, got %v", err)
	}
	if _, err := NormalizeRole("role:"); !errors.Is(err, ErrRoleRequired) {
		t.Fatalf("expected role required for bare prefix, got %v", err)
	}
	if _, err := NormalizeRole("__anchor__"); !errors.Is(err, ErrRoleReserved) {
		t.Fatalf("expected reserved role, got %v", err)
	}
}

func TestNilServiceUnavailable(t *testing.T) {
	var svc *Service
	if _, err := svc.EnforceAdmin(1, "/admin/orders", "GET"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if _, err := svc.GetAdminRoles(0); !errors.Is(err, ErrAdminIDRequired) {
		t.Fatalf("expected admin id required, got %v", err)
	}
}
