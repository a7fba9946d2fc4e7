package joinwaitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"waitlist/internal/core/domain/confirmation"
	"waitlist/internal/core/domain/logging"
	"waitlist/internal/core/domain/waitlist"
	"waitlist/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL  = "a@b.com"
	SENDER = "Foretyx <onboarding@resend.dev>"
)

var NOW time.Time = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger     *logging.FakeLogger
	Repository *waitlist.FakeRepository
	Sender     *confirmation.FakeSender
	Service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.Repository = waitlist.NewFakeRepository()
	suite.Repository.Now = func() time.Time { return NOW }
	suite.Sender = confirmation.NewFakeSender()
	suite.Service = NewWithConfirmationSending(
		suite.Logger,
		confirmation.NewComposer(SENDER, func() time.Time { return NOW }),
		suite.Sender,
		50*time.Millisecond,
		New(suite.Logger, suite.Repository, 50*time.Millisecond),
	)
}

func TestJoinWaitlistService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(OutcomeSuccess, OutcomeOf(err))
	assert.Equal(waitlist.Email(EMAIL), result.Record.Email)
	assert.Equal(NOW, result.Record.CreatedAt)
	assert.True(result.ConfirmationSent)
	assert.NotEmpty(result.ConfirmationID)

	assert.Equal(1, suite.Repository.InsertCalls())
	assert.Equal(1, suite.Sender.Calls())
	sent := suite.Sender.LastSent()
	assert.Equal(SENDER, sent.From)
	assert.Equal(waitlist.Email(EMAIL), sent.To)
	assert.Equal(confirmation.Subject, sent.Subject)
}

func (suite *testSuite) TestInvalidEmailDoesNotReachAdapters() {
	for _, email := range []string{"", "   ", "not-an-email", "a.b.com"} {
		suite.Run(email, func() {
			suite.SetupTest()
			_, err := suite.Service.Run(context.Background(), Input{Email: email})

			assert := suite.Require()
			assert.True(errors.Is(err, waitlist.ErrInvalidEmail))
			assert.Equal(OutcomeValidationError, OutcomeOf(err))
			assert.Equal(0, suite.Repository.InsertCalls())
			assert.Equal(0, suite.Sender.Calls())
		})
	}
}

func (suite *testSuite) TestStoreFailureSkipsConfirmation() {
	suite.Repository.Err = waitlist.ErrFakeStoreUnavailable

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.True(errors.Is(err, waitlist.ErrStore))
	assert.Equal(OutcomeStoreError, OutcomeOf(err))

	var storeErr *waitlist.StoreError
	assert.True(errors.As(err, &storeErr))
	assert.Equal(waitlist.ErrFakeStoreUnavailable.Error(), storeErr.Cause)
	assert.Equal(1, suite.Repository.InsertCalls())
	assert.Equal(0, suite.Sender.Calls())
}

func (suite *testSuite) TestSameEmailTwiceSucceedsThenFails() {
	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})
	suite.Require().Nil(err)

	_, err = suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Equal(OutcomeStoreError, OutcomeOf(err))
	assert.True(errors.Is(err, waitlist.ErrEmailAlreadyExists))
	assert.Equal(1, suite.Sender.Calls())
	assert.Len(suite.Repository.Records, 1)
}

// A failed confirmation must not turn a recorded signup into a failure.
func (suite *testSuite) TestConfirmationFailureIsSwallowed() {
	suite.Sender.Err = confirmation.ErrFakeNetwork

	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(OutcomeSuccess, OutcomeOf(err))
	assert.False(result.ConfirmationSent)
	assert.Len(suite.Repository.Records, 1)
	assert.Equal(1, suite.Sender.Calls())

	errorRecords := suite.Logger.Records(logging.ERROR)
	assert.Len(errorRecords, 1)
	logged, ok := errorRecords[0].Value("err")
	assert.True(ok)
	assert.Equal(confirmation.ErrFakeNetwork, logged)
}

func (suite *testSuite) TestStoreTimeoutIsStoreError() {
	suite.Repository.WaitForContext = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Equal(OutcomeStoreError, OutcomeOf(err))
	assert.True(errors.Is(err, context.DeadlineExceeded))
	assert.Equal(0, suite.Sender.Calls())
}

func (suite *testSuite) TestConfirmationTimeoutIsSwallowed() {
	suite.Sender.WaitForContext = true

	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.False(result.ConfirmationSent)
	assert.Len(suite.Logger.Records(logging.ERROR), 1)
}

func (suite *testSuite) TestEmailIsTrimmedBeforeInsert() {
	result, err := suite.Service.Run(context.Background(), Input{Email: "  " + EMAIL + " "})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(waitlist.Email(EMAIL), result.Record.Email)
}
