// Package mailer sends the submission confirmation email. Delivery is
// best-effort: callers fire it from a detached goroutine and only log
// failures.
package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

type Sender interface {
	SendConfirmation(ctx context.Context, to, name, submissionType string) error
}

type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) SendConfirmation(ctx context.Context, to, name, submissionType string) error {
	text := fmt.Sprintf(
		"Dear %s,\n\nThank you for your submission. We have received your %s submission successfully.\n\nBest regards,\nYour Company",
		name, submissionType,
	)

	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "Submission Confirmation",
		Text:    text,
	})
	if err != nil {
		return fmt.Errorf("send confirmation to %s: %w", to, err)
	}
	return nil
}
