package service

import (
	"errors"
	"testing"

	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/repository"
)

func newTestAuthService(t *testing.T) (*AuthService, repository.AdminRepository) {
	t.Helper()
	db := openServiceTestDB(t)
	if err := models.InitDefaultAdmin(db, "root", "s3cret-pass"); err != nil {
		t.Fatalf("init admin failed: %v", err)
	}
	cfg := &config.Config{
		JWT:     config.JWTConfig{SecretKey: "admin-secret", ExpireHours: 1},
		UserJWT: config.JWTConfig{SecretKey: "shopper-secret", ExpireHours: 1},
	}
	repo := repository.NewAdminRepository(db)
	return NewAuthService(cfg, repo), repo
}

func TestAdminLoginAndAuthenticate(t *testing.T) {
	svc, repo := newTestAuthService(t)

	if _, _, _, err := svc.Login("root", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}

	admin, token, _, err := svc.Login("root", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	stored, err := repo.GetByID(admin.ID)
	if err != nil || stored == nil || stored.LastLoginAt == nil {
		t.Fatalf("last login should be recorded: admin=%v err=%v", stored, err)
	}
	got, err := svc.AuthenticateAdmin(token)
	if err != nil || got.ID != admin.ID {
		t.Fatalf("authenticate failed: admin=%v err=%v", got, err)
	}

	if ok, err := repo.IncrementTokenVersion(admin.ID); err != nil || !ok {
		t.Fatalf("bump token version failed: ok=%v err=%v", ok, err)
	}
	if _, err := svc.AuthenticateAdmin(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("stale token should be rejected, got %v", err)
	}
}

func TestShopperTokenUsesSeparateSecret(t *testing.T) {
	svc, _ := newTestAuthService(t)

	token, _, err := svc.IssueShopperToken(" Ada@Example.com ", "Ada")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	claims, err := svc.ParseShopperToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.ShopperKey() != "ada@example.com" {
		t.Fatalf("unexpected shopper key: %s", claims.ShopperKey())
	}
	if _, err := svc.AuthenticateAdmin(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("shopper token must not pass admin auth, got %v", err)
	}
	if _, err := svc.ParseShopperToken("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
	if _, _, err := svc.IssueShopperToken("", "x"); !errors.Is(err, ErrShopperRequired) {
		t.Fatalf("expected shopper required, got %v", err)
	}
}

func TestCreateAdminAndRevokeSessions(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.CreateAdmin("ops", "short", false); !errors.Is(err, ErrAdminInvalid) {
		t.Fatalf("expected invalid admin, got %v", err)
	}
	admin, err := svc.CreateAdmin(" ops ", "long-enough", false)
	if err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	if admin.Username != "ops" || admin.IsSuper {
		t.Fatalf("unexpected admin: %+v", admin)
	}
	if _, err := svc.CreateAdmin("ops", "long-enough", false); !errors.Is(err, ErrAdminExists) {
		t.Fatalf("expected duplicate admin, got %v", err)
	}

	_, token, _, err := svc.Login("ops", "long-enough")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := svc.RevokeSessions(admin.ID); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if _, err := svc.AuthenticateAdmin(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("revoked token should be rejected, got %v", err)
	}
	if err := svc.RevokeSessions(9999); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("expected admin not found, got %v", err)
	}
}
