package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/TejasJagadale/backendofficial/internal/log"
)

// Sender dispatches the account emails. Failures are the caller's problem to
// log; they never abort the request that triggered them.
type Sender interface {
	SendPasswordReset(to, resetURL string) error
	SendPasswordChanged(to string) error
}

type SMTPConfig struct {
	Host    string
	Port    int
	User    string
	Pass    string
	From    string
	AppName string
}

type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTP(cfg SMTPConfig) *SMTPSender { return &SMTPSender{cfg: cfg} }

func (s *SMTPSender) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	headers := []string{
		fmt.Sprintf("From: %s", s.cfg.From),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body,
	}
	msg := strings.Join(headers, "\r\n")
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

func (s *SMTPSender) SendPasswordReset(to, resetURL string) error {
	subject := fmt.Sprintf("%s - Password Reset Request", s.cfg.AppName)
	body := fmt.Sprintf(
		`<p>You recently requested to reset your password for your %s account.</p>`+
			`<p><a href="%s">Reset Password</a></p>`+
			`<p>If you did not request a password reset, please ignore this email.</p>`+
			`<p>This password reset link is only valid for the next 60 minutes.</p>`+
			`<p>If the link above does not work, copy and paste this URL into your browser:<br>%s</p>`,
		s.cfg.AppName, resetURL, resetURL)
	return s.send(to, subject, body)
}

func (s *SMTPSender) SendPasswordChanged(to string) error {
	subject := fmt.Sprintf("%s - Password Reset Confirmation", s.cfg.AppName)
	body := fmt.Sprintf(
		`<p>Your password for %s has been successfully changed.</p>`+
			`<p>If you did not make this change, please contact support immediately.</p>`,
		s.cfg.AppName)
	return s.send(to, subject, body)
}

// LogSender stands in when SMTP is not configured: local runs and tests.
type LogSender struct{}

func (LogSender) SendPasswordReset(to, resetURL string) error {
	log.L().Info("mail: password reset", zap.String("to", to), zap.String("url", resetURL))
	return nil
}

func (LogSender) SendPasswordChanged(to string) error {
	log.L().Info("mail: password changed", zap.String("to", to))
	return nil
}
