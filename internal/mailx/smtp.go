package mailx

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/lyonblue/PHADMINISTRATION/internal/logging"
)

// SMTPConfig holds the connection settings for plain SMTP delivery.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPMailer sends mail through an SMTP relay. Transient send failures are
// retried with fibonacci backoff before giving up.
type SMTPMailer struct {
	config SMTPConfig
	logger logging.Logger

	// sendMail is a seam for testing smtp.SendMail.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig, logger logging.Logger) *SMTPMailer {
	return &SMTPMailer{
		config:   cfg,
		logger:   logger.With("module", "mailer"),
		sendMail: smtp.SendMail,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)
	payload := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		m.config.From, msg.To, msg.Subject, msg.Body))

	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := m.sendMail(addr, auth, m.config.From, []string{msg.To}, payload); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		m.logger.Error(ctx, "email delivery failed", "to", msg.To, "error", err.Error())
		return fmt.Errorf("error sending email: %w", err)
	}

	m.logger.Info(ctx, "email sent", "to", msg.To)
	return nil
}

// LogMailer writes messages to the log instead of delivering them. It is the
// fallback when SMTP credentials are not configured, so token flows stay
// usable in development.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(logger logging.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("module", "mailer")}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.Info(ctx, "email (dev mode, not delivered)", "to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}
