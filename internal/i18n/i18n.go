package i18n

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// 支持的语言
const (
	LocaleZH = "zh-CN"
	LocaleEN = "en-US"
)

var (
	supported = []language.Tag{language.SimplifiedChinese, language.AmericanEnglish}
	locales   = []string{LocaleZH, LocaleEN}
	matcher   = language.NewMatcher(supported)

	mu            sync.RWMutex
	defaultLocale = LocaleZH
)

// SetDefaultLocale 设置默认语言（无法识别请求语言时使用）
func SetDefaultLocale(locale string) {
	normalized := Normalize(locale)
	mu.Lock()
	defer mu.Unlock()
	defaultLocale = normalized
}

// DefaultLocale 返回默认语言
func DefaultLocale() string {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLocale
}

// Normalize 将任意语言标识收敛到支持的语言
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLocale()
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return DefaultLocale()
	}
	return match(tags...)
}

// ResolveLocale 从请求解析语言：?lang= 优先，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale()
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return Normalize(lang)
	}
	return Normalize(c.GetHeader("Accept-Language"))
}

func match(tags ...language.Tag) string {
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale()
	}
	return locales[index]
}

// T 获取翻译文本，缺失时回退到默认语言，再回退到 key 本身
func T(locale, key string) string {
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	if msg, ok := lookup(DefaultLocale(), key); ok {
		return msg
	}
	return key
}

// Sprintf 获取翻译模板并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func lookup(locale, key string) (string, bool) {
	table, ok := catalog[locale]
	if !ok {
		return "", false
	}
	msg, ok := table[key]
	return msg, ok
}
