package joinwaitlist

import (
	"context"
	"time"

	"waitlist/internal/core/domain/confirmation"
	e "waitlist/internal/core/domain/errors"
	"waitlist/internal/core/domain/logging"
	"waitlist/internal/core/services"
)

type serviceWithConfirmationSending struct {
	log      logging.Logger
	composer *confirmation.Composer
	sender   confirmation.Sender
	timeout  time.Duration
	inner    services.Service[Input, Result]
}

// NewWithConfirmationSending sends the confirmation after inner has recorded
// the signup. Send errors never reach the caller.
func NewWithConfirmationSending(
	log logging.Logger,
	composer *confirmation.Composer,
	sender confirmation.Sender,
	timeout time.Duration,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if composer == nil {
		panic(e.NewNilArgumentError("composer"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithConfirmationSending{
		log:      log,
		composer: composer,
		sender:   sender,
		timeout:  timeout,
		inner:    inner,
	}
}

func (s *serviceWithConfirmationSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if err != nil {
		s.log.Info(ctx, "Skip sending waitlist confirmation.", logging.Err(err))
		return result, err
	}

	message, err := s.composer.Compose(result.Record.Email)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not compose waitlist confirmation.",
			logging.Entry("email", result.Record.Email),
			logging.Err(err),
		)
		return result, nil
	}

	sendCtx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	id, err := s.sender.Send(sendCtx, message)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send waitlist confirmation, the signup is kept.",
			logging.Entry("email", result.Record.Email),
			logging.Err(err),
		)
		return result, nil
	}

	result.ConfirmationSent = true
	result.ConfirmationID = id
	s.log.Info(
		ctx,
		"Waitlist confirmation has been accepted by the provider.",
		logging.Entry("email", result.Record.Email),
		logging.Entry("messageId", id),
	)
	return result, nil
}
