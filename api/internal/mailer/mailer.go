package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// Message is one outgoing email with a plain-text body and an HTML alternative.
type Message struct {
	FromName string
	From     string
	To       string
	Subject  string
	Text     string
	HTML     string
}

// SMTP sends mail through an authenticated SMTP submission server (Gmail by default).
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

func NewSMTP(host string, port int, username, password string) *SMTP {
	return &SMTP{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		Timeout:  30 * time.Second,
	}
}

// Build converts a Message into a go-mail message.
func Build(m Message) (*mail.Msg, error) {
	if m.To == "" {
		return nil, errors.New("mailer: empty recipient")
	}
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.FromName, m.From); err != nil {
		return nil, fmt.Errorf("mailer: from %q: %w", m.From, err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("mailer: to %q: %w", m.To, err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Text)
	if m.HTML != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, m.HTML)
	}
	return msg, nil
}

// Send makes a single delivery attempt; there is no retry or queue.
func (s *SMTP) Send(ctx context.Context, m Message) error {
	msg, err := Build(m)
	if err != nil {
		return err
	}
	c, err := mail.NewClient(s.Host,
		mail.WithPort(s.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithUsername(s.Username),
		mail.WithPassword(s.Password),
		mail.WithTimeout(s.Timeout),
	)
	if err != nil {
		return fmt.Errorf("mailer: client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", m.To, err)
	}
	return nil
}
