package email

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/gbmsdev99/xclinic/config"
)

type Message struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

type ErrDisabled struct{}

func (e ErrDisabled) Error() string { return "email is disabled" }

type Client struct {
	cfg config.EmailConfig
}

func New(cfg config.EmailConfig) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) Enabled() bool { return c.cfg.Enabled }

func (c *Client) Send(ctx context.Context, m Message) error {
	if !c.cfg.Enabled {
		return ErrDisabled{}
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", strings.TrimSpace(c.cfg.From))
	msg.SetHeader("To", m.To...)
	msg.SetHeader("Subject", m.Subject)
	if m.HTMLBody != "" {
		msg.SetBody("text/plain", m.TextBody)
		msg.AddAlternative("text/html", m.HTMLBody)
	} else {
		msg.SetBody("text/plain", m.TextBody)
	}

	d := gomail.NewDialer(c.cfg.SMTP.Host, c.cfg.SMTP.Port, c.cfg.SMTP.Username, c.cfg.SMTP.Password)
	d.SSL = c.cfg.SMTP.UseTLS
	if c.cfg.SMTP.UseTLS {
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(msg)
	}()

	wait := 15 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		if until := time.Until(dl); until > 0 && until < wait {
			wait = until
		}
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return context.DeadlineExceeded
	}
}
