package email

import (
	"context"
	"fmt"
	"time"

	"waitlist/internal/core/domain/confirmation"
	e "waitlist/internal/core/domain/errors"
	"waitlist/internal/core/domain/logging"
)

// NoopSender logs confirmations instead of sending them. Meant for local
// runs without provider credentials.
type NoopSender struct {
	log logging.Logger
	now func() time.Time
}

func NewNoopSender(log logging.Logger, now func() time.Time) *NoopSender {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &NoopSender{log: log, now: now}
}

func (s *NoopSender) Send(ctx context.Context, m confirmation.Message) (confirmation.MessageID, error) {
	s.log.Info(
		ctx,
		"Confirmation email is not sent, noop sender is configured.",
		logging.Entry("to", m.To),
		logging.Entry("subject", m.Subject),
	)
	return confirmation.MessageID(fmt.Sprintf("noop-%d", s.now().UnixNano())), nil
}
