package services

import (
	"waitlist/internal/app/deps"
	"waitlist/internal/core/services"
	joinwaitlist "waitlist/internal/core/services/join_waitlist"
)

type Services struct {
	JoinWaitlist services.Service[joinwaitlist.Input, joinwaitlist.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.JoinWaitlist = joinwaitlist.NewWithOutcomeRecording(
		deps.OutcomeRecorder,
		joinwaitlist.NewWithConfirmationSending(
			deps.Logger,
			deps.Composer,
			deps.ConfirmationSender,
			deps.Config.NotifierTimeout,
			joinwaitlist.New(
				deps.Logger,
				deps.WaitlistRepository,
				deps.Config.StoreTimeout,
			),
		),
	)

	return s
}
