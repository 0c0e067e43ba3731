package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// SMTPConfig carries the mail credentials; loaded once from config and
// injected, never read from the environment here.
type SMTPConfig struct {
	FromEmail string
	Password  string
	Host      string
	Address   string
}

type Mailer struct {
	cfg SMTPConfig
}

func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send renders the given template with data and mails it as HTML.
func (m *Mailer) Send(emailTo string, emailSubject string, data any, templatePath string) error {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.cfg.FromEmail,
		emailTo,
		emailSubject,
		body.String(),
	)

	auth := smtp.PlainAuth("", m.cfg.FromEmail, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(m.cfg.Address, auth, m.cfg.FromEmail, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
