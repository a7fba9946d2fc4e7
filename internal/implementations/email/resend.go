package email

import (
	"context"
	"fmt"

	"waitlist/internal/core/domain/confirmation"

	"github.com/resend/resend-go/v2"
)

// ResendSender submits confirmations through the Resend API. On Resend's free
// tier an unverified sending domain only delivers to the account owner; such
// rejections come back as errors like any other.
type ResendSender struct {
	client *resend.Client
}

func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

func (s *ResendSender) Send(ctx context.Context, m confirmation.Message) (confirmation.MessageID, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.From,
		To:      []string{string(m.To)},
		Subject: m.Subject,
		Html:    m.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("resend send failed: %w", err)
	}
	return confirmation.MessageID(sent.Id), nil
}
