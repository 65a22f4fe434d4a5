package email

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/smartattend/attendance-backend-go/internal/config"
)

// Sender is the fire-and-forget notification transport. Send reports
// whether delivery was handed to the MTA; an unconfigured transport
// answers false without being an error.
type Sender interface {
	Send(recipients []string, subject, body string) bool
	Configured() bool
}

type smtpSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender creates a plain-text SMTP sender. With an empty host
// the sender stays unconfigured and every Send is a logged no-op.
func NewSMTPSender(cfg config.SMTPConfig) Sender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Configured() bool {
	return s.cfg.Host != ""
}

func (s *smtpSender) Send(recipients []string, subject, body string) bool {
	if !s.Configured() {
		slog.Warn("SMTP not configured, skipping email send", "recipients", recipients, "subject", subject)
		return false
	}
	if len(recipients) == 0 {
		return false
	}

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	headers += fmt.Sprintf("To: %s\r\n", strings.Join(recipients, ", "))
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/plain; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	if err := smtp.SendMail(addr, auth, s.cfg.From, recipients, message); err != nil {
		slog.Error("Failed to send email", "recipients", recipients, "subject", subject, "error", err)
		return false
	}

	slog.Info("Email sent", "recipients", recipients, "subject", subject)
	return true
}
