// Package mailx sends plain-text transactional mail over SMTP.
package mailx

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c Config) validate() error {
	switch {
	case c.Host == "":
		return errors.New("mailx: missing SMTP host")
	case c.Port <= 0:
		return errors.New("mailx: missing SMTP port")
	case c.From == "":
		return errors.New("mailx: missing From address")
	}
	return nil
}

// Email is one outbound message.
type Email struct {
	To      []string
	Subject string
	Body    string

	// MessageID, when set, becomes the Message-ID header so receivers can
	// drop redelivered copies.
	MessageID string
}

// Dialer is the part of gomail.Dialer that Mailer uses.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends Email values through an SMTP dialer.
type Mailer struct {
	from   string
	domain string
	dialer Dialer
}

// New validates cfg and returns a Mailer backed by gomail.
func New(cfg Config) (*Mailer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return NewWithDialer(cfg.From, gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)), nil
}

// NewWithDialer builds a Mailer over an arbitrary dialer.
func NewWithDialer(from string, d Dialer) *Mailer {
	domain := "localhost"
	if _, host, ok := strings.Cut(from, "@"); ok && host != "" {
		domain = strings.TrimSuffix(host, ">")
	}
	return &Mailer{from: from, domain: domain, dialer: d}
}

// Send delivers email, giving up when ctx is done. The SMTP session itself
// cannot be interrupted, so a cancelled send may still complete later.
func (m *Mailer) Send(ctx context.Context, email Email) error {
	if len(email.To) == 0 {
		return errors.New("mailx: no recipients specified")
	}

	msg := m.buildMessage(email)

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mailx: send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mailx: send: %w", ctx.Err())
	}
}

func (m *Mailer) buildMessage(email Email) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)
	if email.MessageID != "" {
		msg.SetHeader("Message-ID", "<"+email.MessageID+"@"+m.domain+">")
	}
	msg.SetBody("text/plain", email.Body)
	return msg
}
