// Package confirmation builds and sends the email that acknowledges a
// waitlist signup.
//
// Delivery is best-effort: the service only learns whether the provider
// accepted the submission, never whether the message reached the inbox.
package confirmation

import (
	"context"
	"fmt"
	"time"

	e "waitlist/internal/core/domain/errors"
	"waitlist/internal/core/domain/waitlist"

	"github.com/osteele/liquid"
)

const Subject = "Waitlist Confirmed | Foretyx"

const htmlTemplate = `
<div style="font-family: sans-serif; background: #000; color: #fff; padding: 40px; border-radius: 12px; border: 1px solid #333; max-width: 600px; margin: auto;">
  <h2 style="color: #10b981; margin-top: 0;">You're on the list.</h2>
  <p style="color: #ccc; line-height: 1.6; font-size: 16px;">
    Thank you for joining the <strong>Foretyx</strong> waitlist. We're building the future of enterprise AI security, and we'll notify you the moment we're ready for your team.
  </p>
  <hr style="border: none; border-top: 1px solid #333; margin: 30px 0;" />
  <p style="font-size: 12px; color: #666; text-align: center;">
    &copy; {{ year }} Foretyx, Inc. <br/> Secure. Private. Enterprise-Ready.
  </p>
</div>
`

type MessageID string

type Message struct {
	From    string
	To      waitlist.Email
	Subject string
	HTML    string
}

// Sender is the notifier adapter.
type Sender interface {
	Send(ctx context.Context, m Message) (MessageID, error)
}

// Composer renders the confirmation for a recipient. The body carries
// nothing recipient-specific; only the copyright year changes.
type Composer struct {
	from     string
	template *liquid.Template
	now      func() time.Time
}

func NewComposer(from string, now func() time.Time) *Composer {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	template, err := liquid.NewEngine().ParseString(htmlTemplate)
	if err != nil {
		panic(fmt.Sprintf("could not parse confirmation template: %v", err))
	}
	return &Composer{from: from, template: template, now: now}
}

func (c *Composer) Compose(to waitlist.Email) (Message, error) {
	html, err := c.template.RenderString(liquid.Bindings{"year": c.now().Year()})
	if err != nil {
		return Message{}, fmt.Errorf("could not render confirmation: %w", err)
	}
	return Message{
		From:    c.from,
		To:      to,
		Subject: Subject,
		HTML:    html,
	}, nil
}
