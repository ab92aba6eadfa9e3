package notification

import (
	"context"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
)

type Message struct {
	To      []string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type emailClient interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendSender delivers through the Resend HTTP API.
type ResendSender struct {
	emails emailClient
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		emails: resend.NewClient(apiKey).Emails,
		from:   from,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	res, err := s.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return errors.Wrap(err, "sending email")
	}

	log.Debug().Str("email_id", res.Id).Str("subject", msg.Subject).Msg("email sent")
	return nil
}

// LogSender only logs; used when no email provider is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	log.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("email not configured, skipping")
	return nil
}
