package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/adminkit/account-service/config"
	"github.com/adminkit/account-service/internal/account/domain"
)

// SMTPMailer sends account notifications through a plain SMTP relay.
type SMTPMailer struct {
	cfg  config.SMTP
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg config.SMTP) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

func (m *SMTPMailer) SendActivationEmail(_ context.Context, user *domain.User, token string) error {
	body := fmt.Sprintf(
		"Welcome! Activate your account by visiting:\r\n\r\n%s/activate?token=%s\r\n\r\nThe link expires; request a new one if needed.",
		m.cfg.BaseURL, token,
	)

	return m.deliver(user.Email, "Activate your account", body)
}

func (m *SMTPMailer) SendResetPasswordEmail(_ context.Context, user *domain.User, token string) error {
	body := fmt.Sprintf(
		"A password reset was requested for your account. Set a new password here:\r\n\r\n%s/password-reset?token=%s\r\n\r\nIf you did not request this, you can ignore this message.",
		m.cfg.BaseURL, token,
	)

	return m.deliver(user.Email, "Reset your password", body)
}

func (m *SMTPMailer) SendPasswordChangedEmail(_ context.Context, user *domain.User) error {
	body := "Your account password was just changed.\r\n\r\nIf this was not you, contact an administrator immediately."

	return m.deliver(user.Email, "Your password was changed", body)
}

func (m *SMTPMailer) SendWelcomeEmail(_ context.Context, user *domain.User) error {
	body := "Your account is now active. You can sign in with your email address."

	return m.deliver(user.Email, "Your account is active", body)
}

func (m *SMTPMailer) deliver(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := m.send(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return nil
}
