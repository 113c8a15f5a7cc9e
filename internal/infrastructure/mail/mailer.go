package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"NewsDigest/internal/config"
	"NewsDigest/internal/ports"
)

// sendFunc matches smtp.SendMail; swapped out in tests.
type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Mailer delivers the rendered digest over SMTP with a bounded
// exponential-backoff retry. Transient mail failures never invalidate the
// collection result; the caller decides how loudly to report them.
type Mailer struct {
	cfg        config.MailConfig
	send       sendFunc
	logger     *slog.Logger
	maxRetries uint64
}

var _ ports.Dispatcher = (*Mailer)(nil)

// NewMailer wires SMTP delivery from mail configuration.
func NewMailer(cfg config.MailConfig, logger *slog.Logger) *Mailer {
	return &Mailer{
		cfg:        cfg,
		send:       smtp.SendMail,
		logger:     logger,
		maxRetries: 3,
	}
}

// Deliver sends the document as an HTML mail to the configured recipient.
func (m *Mailer) Deliver(ctx context.Context, subject, document string) error {
	if !m.cfg.Configured() {
		return fmt.Errorf("mail credentials are not configured")
	}

	msg := m.buildMessage(subject, document)
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	auth := smtp.PlainAuth("", m.cfg.Sender, m.cfg.Password, m.cfg.SMTPHost)

	operation := func() error {
		return m.send(addr, auth, m.cfg.Sender, []string{m.cfg.Recipient}, msg)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), m.maxRetries),
		ctx,
	)

	notify := func(err error, wait time.Duration) {
		if m.logger != nil {
			m.logger.Warn("digest delivery failed, retrying", "wait", wait, "error", err)
		}
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	if m.logger != nil {
		m.logger.Info("digest delivered", "recipient", m.cfg.Recipient)
	}
	return nil
}

// buildMessage assembles an RFC 5322 HTML mail.
func (m *Mailer) buildMessage(subject, body string) []byte {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.cfg.Sender))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", m.cfg.Recipient))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return []byte(msg.String())
}
