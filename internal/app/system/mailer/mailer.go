// Package mailer sends transactional email over SMTP. The applications
// feature uses it as the notification hook fired when an admin changes an
// application's status; sending is best-effort and failures are logged by
// the caller, never surfaced to the client.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Email is one outbound message with both plain-text and HTML bodies.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer sends email through a single SMTP endpoint.
type Mailer struct {
	host     string
	port     int
	user     string
	pass     string
	from     string
	fromName string
	log      *zap.Logger
}

// New creates a Mailer. With an empty host the mailer is disabled and Send
// becomes a logged no-op, which keeps local development working without an
// SMTP server.
func New(host string, port int, user, pass, from, fromName string, logger *zap.Logger) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		user:     user,
		pass:     pass,
		from:     from,
		fromName: fromName,
		log:      logger,
	}
}

// Enabled reports whether the mailer has an SMTP endpoint configured.
func (m *Mailer) Enabled() bool { return m != nil && m.host != "" }

// Send delivers the email. MIME multipart/alternative with text and HTML
// parts, matching what transactional mail providers expect.
func (m *Mailer) Send(email Email) error {
	if m == nil {
		return nil
	}
	if !m.Enabled() {
		m.log.Info("mailer disabled, dropping email",
			zap.String("to", email.To),
			zap.String("subject", email.Subject))
		return nil
	}

	var b strings.Builder
	boundary := "enrollhub-alt-boundary"
	fmt.Fprintf(&b, "From: %s <%s>\r\n", m.fromName, m.from)
	fmt.Fprintf(&b, "To: %s\r\n", email.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", email.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, email.TextBody)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, email.HTMLBody)
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	if err := smtp.SendMail(addr, auth, m.from, []string{email.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", email.To, err)
	}
	return nil
}
