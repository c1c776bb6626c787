package worker

import (
	"alfaaz/internal/config"
	"alfaaz/internal/domain"
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

type SMTPMailer struct {
	Host     string
	Port     int
	FromName string
	Insecure bool
}

func NewSMTPMailer(cfg config.SMTP) SMTPMailer {
	return SMTPMailer{
		Host:     cfg.Host,
		Port:     cfg.Port,
		FromName: cfg.FromName,
		Insecure: cfg.Insecure,
	}
}

// Send builds a fresh client per message; nothing is pooled between tasks.
func (m SMTPMailer) Send(ctx context.Context, auth domain.Credentials, p domain.SendEmailPayload) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.FromName, auth.User); err != nil {
		return fmt.Errorf("invalid sender %q: %w", auth.User, err)
	}
	if err := msg.To(p.To); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", p.To, err)
	}
	msg.Subject(p.Subject)
	msg.SetBodyString(mail.TypeTextHTML, p.HTML)

	opts := []mail.Option{
		mail.WithPort(m.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(auth.User),
		mail.WithPassword(auth.Pass),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if m.Insecure {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	client, err := mail.NewClient(m.Host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp transport: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp delivery to %s failed: %w", p.To, err)
	}
	return nil
}
