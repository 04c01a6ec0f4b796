package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SESMailer struct {
	client *ses.Client
	from   string
}

func NewSESMailer(ctx context.Context, region, from string) (*SESMailer, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config for ses: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), from: from}, nil
}

func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(m.from),
	})
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

// LogMailer prints mails instead of sending them; used when SES_EMAIL is unset.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, body string) error {
	log.Printf("mail to=%s subject=%q\n%s", to, subject, body)
	return nil
}

func VerifyEmailMail(clientURL, token string) (string, string) {
	return "Verify your email",
		fmt.Sprintf(`<p>Welcome! Confirm your address by opening <a href="%s/verify-email?token=%s">this link</a>.</p>`, clientURL, token)
}

func OTPMail(code string) (string, string) {
	return "Password reset code",
		fmt.Sprintf("<p>Your password reset code is <b>%s</b>. It expires in 10 minutes.</p>", code)
}

func PasswordChangedMail(name string) (string, string) {
	return "Your password was changed",
		fmt.Sprintf("<p>Hi %s, your password has just been reset. Contact us if this was not you.</p>", name)
}
