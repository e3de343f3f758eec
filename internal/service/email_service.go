package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/i18n"
	"github.com/shopfront-next/internal/models"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// AdminEmail 管理员通知邮箱
func (s *EmailService) AdminEmail() string {
	if s == nil || s.cfg == nil {
		return ""
	}
	return strings.TrimSpace(s.cfg.AdminEmail)
}

// SendOrderConfirmation 下单确认邮件（顾客）
func (s *EmailService) SendOrderConfirmation(order *models.Order, locale string) error {
	subject, body := buildOrderConfirmationContent(order, locale)
	return s.sendTextEmail(order.Email, subject, body)
}

// SendAdminOrderAlert 新订单提醒（管理员）
func (s *EmailService) SendAdminOrderAlert(order *models.Order, locale string) error {
	subject, body := buildAdminAlertContent(order, locale)
	return s.sendTextEmail(s.AdminEmail(), subject, body)
}

// SendDeliveryConfirmation 送达确认邮件（顾客）
func (s *EmailService) SendDeliveryConfirmation(order *models.Order, locale string) error {
	subject, body := buildDeliveryContent(order, locale)
	return s.sendTextEmail(order.Email, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s == nil || s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return normalizeEmailSendError(sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	if s.cfg.UseTLS {
		return normalizeEmailSendError(sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	return normalizeEmailSendError(sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
}

func buildOrderConfirmationContent(order *models.Order, locale string) (string, string) {
	locale = i18n.Normalize(locale)
	subject := i18n.Sprintf(locale, "email.order_confirmation.subject", order.TrackingID)
	body := i18n.Sprintf(locale, "email.order_confirmation.body",
		order.Name,
		order.TrackingID,
		order.Total.String(),
		order.FormattedAddress(),
		formatOrderItems(order.Items),
	)
	return subject, body
}

func buildAdminAlertContent(order *models.Order, locale string) (string, string) {
	locale = i18n.Normalize(locale)
	subject := i18n.Sprintf(locale, "email.admin_alert.subject", order.TrackingID)
	body := i18n.Sprintf(locale, "email.admin_alert.body",
		order.TrackingID,
		order.Name,
		order.Phone,
		order.Email,
		order.Total.String(),
		order.PaymentMethod,
		order.FormattedAddress(),
		formatOrderItems(order.Items),
	)
	return subject, body
}

func buildDeliveryContent(order *models.Order, locale string) (string, string) {
	locale = i18n.Normalize(locale)
	subject := i18n.Sprintf(locale, "email.delivery.subject", order.TrackingID)
	body := i18n.Sprintf(locale, "email.delivery.body", order.Name, order.TrackingID, order.FormattedAddress())
	return subject, body
}

func formatOrderItems(items []models.OrderItem) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item.Name)
		if item.Color != "" {
			b.WriteString(" (")
			b.WriteString(item.Color)
			b.WriteString(")")
		}
		b.WriteString(fmt.Sprintf(" x%d @ %s\n", item.Quantity, item.Price.String()))
	}
	return strings.TrimRight(b.String(), "\n")
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := authenticate(client, auth); err != nil {
		return err
	}
	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}
	if err := authenticate(client, auth); err != nil {
		return err
	}
	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := authenticate(client, auth); err != nil {
		return err
	}
	return sendSMTPData(client, from, to, msg)
}

func authenticate(client *smtp.Client, auth smtp.Auth) error {
	if auth == nil {
		return nil
	}
	if ok, _ := client.Extension("AUTH"); ok {
		return client.Auth(auth)
	}
	return nil
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	message := strings.ToLower(err.Error())
	for _, keyword := range []string{"no such recipient", "no such user", "recipient address rejected", "user unknown", "mailbox unavailable"} {
		if strings.Contains(message, keyword) {
			return ErrEmailRecipientRejected
		}
	}
	return err
}
