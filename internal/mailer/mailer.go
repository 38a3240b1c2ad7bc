// Package mailer sends transactional HTML email over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
)

type Mailer struct {
	host     string
	port     string
	user     string
	password string
	from     string
	enabled  bool
}

// New builds a mailer. With enabled false every Send is a silent no-op, which
// keeps local development working without an SMTP account.
func New(host string, port string, user string, password string, from string, enabled bool) *Mailer {
	return &Mailer{host: host, port: port, user: user, password: password, from: from, enabled: enabled}
}

func (m *Mailer) Enabled() bool {
	return m.enabled
}

func (m *Mailer) Send(to string, subject string, htmlBody string) error {
	if !m.enabled {
		return nil
	}
	if m.host == "" || m.port == "" || m.from == "" {
		return fmt.Errorf("incomplete SMTP configuration")
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"utf-8\"\r\n"+
			"\r\n%s\r\n",
		m.from, to, subject, htmlBody,
	))

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	if err := smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
