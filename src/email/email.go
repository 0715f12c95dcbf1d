// Package email sends transactional mail over SMTP. When no SMTP host
// is configured the service stays disabled and every send reports an
// error instead of silently dropping mail.
package email

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/apimgr/saaskit/src/config"
	"github.com/apimgr/saaskit/src/server/metrics"
)

// Service handles outbound mail.
type Service struct {
	cfg     config.SMTPConfig
	baseURL string
	enabled bool
}

// New creates the mail service. BaseURL is used to build absolute links
// in message bodies.
func New(cfg config.SMTPConfig, baseURL string) *Service {
	return &Service{
		cfg:     cfg,
		baseURL: strings.TrimRight(baseURL, "/"),
		enabled: cfg.Host != "" && cfg.Port > 0 && cfg.From != "",
	}
}

// IsEnabled reports whether SMTP is configured.
func (s *Service) IsEnabled() bool {
	return s.enabled
}

// Send delivers a plain-text message.
func (s *Service) Send(to, subject, body string) error {
	if !s.enabled {
		return fmt.Errorf("email disabled: SMTP not configured")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendVerification mails the account activation link.
func (s *Service) SendVerification(to, siteName, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, token)
	body := fmt.Sprintf(
		"Welcome to %s!\n\nPlease verify your email address by visiting the link below:\n\n%s\n\nIf you did not create this account, you can ignore this message.\n",
		siteName, link,
	)
	if err := s.Send(to, fmt.Sprintf("Verify your %s account", siteName), body); err != nil {
		return err
	}
	metrics.EmailsSent.WithLabelValues("verification").Inc()
	return nil
}

// SendPasswordReset mails the password reset link.
func (s *Service) SendPasswordReset(to, siteName, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	body := fmt.Sprintf(
		"A password reset was requested for your %s account.\n\nVisit the link below to choose a new password. The link expires in one hour.\n\n%s\n\nIf you did not request this, you can ignore this message.\n",
		siteName, link,
	)
	if err := s.Send(to, fmt.Sprintf("Reset your %s password", siteName), body); err != nil {
		return err
	}
	metrics.EmailsSent.WithLabelValues("reset").Inc()
	return nil
}

// SendContactMessage relays a contact form submission to the site
// contact address.
func (s *Service) SendContactMessage(to, fromName, fromEmail, message string) error {
	body := fmt.Sprintf("New contact form message\n\nName: %s\nEmail: %s\n\n%s\n", fromName, fromEmail, message)
	if err := s.Send(to, fmt.Sprintf("Contact form: %s", fromName), body); err != nil {
		return err
	}
	metrics.EmailsSent.WithLabelValues("contact").Inc()
	return nil
}
