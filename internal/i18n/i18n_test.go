package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalizeMatchesSupportedLocales(t *testing.T) {
	cases := map[string]string{
		"en":                  LocaleEN,
		"en-GB,en;q=0.9":      LocaleEN,
		"zh-Hans-CN":          LocaleZH,
		"fr-FR":               DefaultLocale(),
		"":                    DefaultLocale(),
		"not a language tag!": DefaultLocale(),
	}
	for raw, want := range cases {
		if got := Normalize(raw); got != want {
			t.Fatalf("Normalize(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestResolveLocalePrefersQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?lang=en-US", nil)
	c.Request.Header.Set("Accept-Language", "zh-CN")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("expected query locale, got %s", got)
	}
}

func TestTFallsBackToKey(t *testing.T) {
	if got := T(LocaleEN, "error.review_duplicate"); got != "You have already reviewed this product" {
		t.Fatalf("unexpected translation: %s", got)
	}
	if got := T(LocaleEN, "missing.key"); got != "missing.key" {
		t.Fatalf("expected key fallback, got %s", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range catalog[LocaleZH] {
		if _, ok := catalog[LocaleEN][key]; !ok {
			t.Fatalf("en-US catalog missing key %s", key)
		}
	}
	if len(catalog[LocaleZH]) != len(catalog[LocaleEN]) {
		t.Fatalf("catalog sizes differ")
	}
}
