package public

import (
	"strings"

	"github.com/shopfront-next/internal/http/response"
	"github.com/shopfront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// captchaFields 下单与追踪请求附带的验证码字段
type captchaFields struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

func (f captchaFields) captchaPayload() service.CaptchaVerifyPayload {
	return service.CaptchaVerifyPayload{
		CaptchaID:   strings.TrimSpace(f.CaptchaID),
		CaptchaCode: strings.TrimSpace(f.CaptchaCode),
	}
}

// GetImageCaptcha 获取图片验证码挑战，同时返回各场景是否开启
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "error.captcha_unavailable", err)
		return
	}

	response.Success(c, gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
		"scenes": gin.H{
			"guest_checkout": h.Config.Captcha.Scenes.GuestCheckout,
			"order_tracking": h.Config.Captcha.Scenes.OrderTracking,
		},
	})
}
