// Package mailer delivers outbound email for account and raffle notices.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/summitraffle/summitraffle/internal/logger"
)

// Mailer defines the interface for sending email
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail through a plain-auth SMTP relay
type SMTPMailer struct {
	host string
	port int
	from string
	auth smtp.Auth
	log  logger.Logger

	// sendMail is swappable so tests can intercept the wire call
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates a mailer for the given relay. Username and password
// may be empty for relays that accept unauthenticated local delivery.
func NewSMTPMailer(host string, port int, from, username, password string, log logger.Logger) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		host:     host,
		port:     port,
		from:     from,
		auth:     auth,
		log:      log,
		sendMail: smtp.SendMail,
	}
}

// Send delivers one message. The context is checked before dialing; net/smtp
// does not support cancellation mid-send.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if to == "" {
		return fmt.Errorf("no recipient address")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := m.sendMail(addr, m.auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	m.log.Debug("Mail sent", "to", to, "subject", subject)
	return nil
}

// Ensure SMTPMailer implements Mailer
var _ Mailer = (*SMTPMailer)(nil)
