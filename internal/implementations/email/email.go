package email

import (
	"context"
	"errors"

	"waitlist/internal/core/domain/confirmation"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESSender submits confirmations through Amazon SES. The From identity of
// every message must be verified with SES.
type SESSender struct {
	ses sesAPI
}

func NewSESSender(awsConfig aws.Config) *SESSender {
	return &SESSender{ses: ses.NewFromConfig(awsConfig)}
}

func (s *SESSender) Send(ctx context.Context, m confirmation.Message) (confirmation.MessageID, error) {
	out, err := s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: aws.String(m.From),
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{string(m.To)},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: aws.String(m.Subject), Charset: aws.String(charset)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(m.HTML), Charset: aws.String(charset)},
				},
			},
		},
	)
	if err != nil {
		return "", err
	}
	if out.MessageId == nil {
		return "", errors.New("SES accepted the email without a message id")
	}
	return confirmation.MessageID(*out.MessageId), nil
}
