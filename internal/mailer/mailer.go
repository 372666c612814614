package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/scrimhub/scrimhub/internal/model"
)

// Mailer relays stored contact-form submissions to the site inbox.
type Mailer struct {
	client *mail.Client
	from   string
	to     string
}

func New(host string, port int, username, password, to string) (*Mailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}
	return &Mailer{client: client, from: username, to: to}, nil
}

func (m *Mailer) Send(ctx context.Context, msg *model.Message) error {
	mm := mail.NewMsg()
	if err := mm.From(m.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := mm.To(m.to); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	if err := mm.ReplyTo(msg.Email); err != nil {
		return fmt.Errorf("invalid reply-to address: %w", err)
	}

	subject := msg.Subject
	if subject == "" {
		subject = "New contact form message"
	}
	mm.Subject(subject)
	mm.SetBodyString(mail.TypeTextPlain,
		fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Body))

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
