package infra

import (
	"fmt"
	"net/smtp"

	"github.com/4ndreams/GPS-sub001/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for outbound notification mail.
// All sends are best-effort: callers log failures and move on.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
	admin    string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		admin:    cfg.AdminEmail,
	}
}

// AdminEmail returns the configured administrator inbox for critical alerts.
func (m *Mailer) AdminEmail() string { return m.admin }

// Send delivers a plain-text email. Optional adjuntos are file paths
// attached to the message (sale receipt PDFs).
func (m *Mailer) Send(to, subject, body string, adjuntos ...string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	for _, path := range adjuntos {
		if _, err := e.AttachFile(path); err != nil {
			return fmt.Errorf("mailer: adjuntar %s: %w", path, err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
