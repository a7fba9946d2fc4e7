package joinwaitlist

import (
	"context"
	"errors"

	e "waitlist/internal/core/domain/errors"
	"waitlist/internal/core/domain/waitlist"
	"waitlist/internal/core/services"
)

// Outcome is what a caller can observe of a signup. There is no outcome for
// a failed confirmation.
type Outcome string

const (
	OutcomeSuccess         Outcome = "success"
	OutcomeValidationError Outcome = "validation_error"
	OutcomeStoreError      Outcome = "store_error"
)

// OutcomeOf classifies the error returned by Run. Anything that is not a
// validation error means the signup was not recorded.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, waitlist.ErrInvalidEmail):
		return OutcomeValidationError
	default:
		return OutcomeStoreError
	}
}

type OutcomeRecorder interface {
	RecordOutcome(outcome Outcome)
	RecordConfirmation(sent bool)
}

type serviceWithOutcomeRecording struct {
	recorder OutcomeRecorder
	inner    services.Service[Input, Result]
}

func NewWithOutcomeRecording(
	recorder OutcomeRecorder,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if recorder == nil {
		panic(e.NewNilArgumentError("recorder"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithOutcomeRecording{recorder: recorder, inner: inner}
}

func (s *serviceWithOutcomeRecording) Run(ctx context.Context, input Input) (Result, error) {
	result, err := s.inner.Run(ctx, input)
	outcome := OutcomeOf(err)
	s.recorder.RecordOutcome(outcome)
	if outcome == OutcomeSuccess {
		s.recorder.RecordConfirmation(result.ConfirmationSent)
	}
	return result, err
}
