package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultsUnmarshal(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Database.Driver != "sqlite" {
		t.Fatalf("unexpected server/database defaults: %+v %+v", cfg.Server, cfg.Database)
	}
	if cfg.Cart.DefaultStockCeil != 99 {
		t.Fatalf("default stock ceiling want 99 got %d", cfg.Cart.DefaultStockCeil)
	}
	if cfg.Security.LoginRateLimit.MaxAttempts != 5 || cfg.Security.TrackingRateLimit.WindowSeconds != 60 {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.Security)
	}
	if cfg.Queue.Queues["critical"] != 5 {
		t.Fatalf("unexpected queue weights: %+v", cfg.Queue.Queues)
	}
	if cfg.Captcha.Scenes.GuestCheckout || cfg.Captcha.Scenes.OrderTracking {
		t.Fatalf("captcha scenes should default to off")
	}
	if cfg.I18n.DefaultLocale != "zh-CN" {
		t.Fatalf("unexpected default locale %s", cfg.I18n.DefaultLocale)
	}
}

func TestOverridesFromYAML(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	yaml := `
order:
  tracking_prefix: SHOP
  shipping_fee: 4.5
cors:
  allowed_origins: ["https://shop.example.com"]
`
	if err := v.ReadConfig(strings.NewReader(yaml)); err != nil {
		t.Fatalf("read yaml failed: %v", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if cfg.Order.TrackingPrefix != "SHOP" || cfg.Order.ShippingFee != 4.5 {
		t.Fatalf("order overrides not applied: %+v", cfg.Order)
	}
	if cfg.Order.TrackingRetries != 3 {
		t.Fatalf("unset keys should keep defaults, got %d", cfg.Order.TrackingRetries)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "https://shop.example.com" {
		t.Fatalf("unexpected origins: %v", cfg.CORS.AllowedOrigins)
	}
}

func TestWeakSecrets(t *testing.T) {
	if !IsWeakSecret("short") {
		t.Fatalf("short secret should be weak")
	}
	if !IsWeakSecret("change-me-in-production-0123456789abcdef") {
		t.Fatalf("placeholder secret should be weak")
	}
	if IsWeakSecret("k3Vb9qZr2LmX8wTn4YpHs6JdFc1GaE7u") {
		t.Fatalf("random 32-char secret should not be weak")
	}

	cfg := &Config{
		JWT:     JWTConfig{SecretKey: "k3Vb9qZr2LmX8wTn4YpHs6JdFc1GaE7u"},
		UserJWT: JWTConfig{SecretKey: "user-change-me-in-production"},
	}
	weak := cfg.WeakSecrets()
	if len(weak) != 1 || weak[0] != "user_jwt.secret" {
		t.Fatalf("unexpected weak list: %v", weak)
	}
}
