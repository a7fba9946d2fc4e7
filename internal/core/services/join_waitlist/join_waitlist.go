// Package joinwaitlist is the signup orchestrator: validate the address,
// append it to the store, then send a confirmation.
//
// Persisting is the source of truth. A store failure fails the signup and the
// confirmation is never attempted. A confirmation failure is only logged: the
// signup has been recorded and the caller is told so. Keep it that way; do not
// couple the outcome to the email provider.
package joinwaitlist

import (
	"context"
	"time"

	"waitlist/internal/core/domain/confirmation"
	e "waitlist/internal/core/domain/errors"
	"waitlist/internal/core/domain/logging"
	"waitlist/internal/core/domain/waitlist"
	"waitlist/internal/core/services"
)

type Input struct {
	Email string
}

type Result struct {
	Record waitlist.Record
	// ConfirmationSent reports whether the provider accepted the confirmation.
	// It is diagnostic only.
	ConfirmationSent bool
	ConfirmationID   confirmation.MessageID
}

type service struct {
	log        logging.Logger
	repository waitlist.Repository
	timeout    time.Duration
}

// New validates the input and appends it to the store. A zero timeout leaves
// the insert bounded only by ctx.
func New(
	log logging.Logger,
	repository waitlist.Repository,
	timeout time.Duration,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	return &service{log: log, repository: repository, timeout: timeout}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	email := waitlist.NewEmail(input.Email)
	if err := email.Validate(); err != nil {
		s.log.Info(
			ctx,
			"Rejected waitlist signup with invalid email.",
			logging.Entry("email", input.Email),
			logging.Err(err),
		)
		return result, err
	}

	s.log.Info(ctx, "Processing waitlist signup.", logging.Entry("email", email))

	insertCtx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	record, err := s.repository.Insert(insertCtx, email)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not add email to the waitlist.",
			logging.Entry("email", email),
			logging.Err(err),
		)
		return result, waitlist.NewStoreError(err)
	}

	s.log.Info(ctx, "Email has been added to the waitlist.", logging.Entry("record", record))
	return Result{Record: record}, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
