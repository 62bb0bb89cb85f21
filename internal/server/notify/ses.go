package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

type sesAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newSESClientFromConfig = func(cfg aws.Config, optFns ...func(*sesv2.Options)) sesAPI {
		return sesv2.NewFromConfig(cfg, optFns...)
	}
)

// SESConfig carries the credential pair and sender settings.
type SESConfig struct {
	User     string
	Pass     string
	From     string
	Region   string
	Endpoint string
}

// SESNotifier sends email through Amazon SES v2.
type SESNotifier struct {
	client sesAPI
	from   string
}

func NewSESNotifier(ctx context.Context, c SESConfig) (*SESNotifier, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(c.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.User, c.Pass, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newSESClientFromConfig(cfg, func(o *sesv2.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	})

	from := c.From
	if from == "" {
		from = c.User
	}
	return &SESNotifier{client: client, from: from}, nil
}

func (n *SESNotifier) SendOTP(ctx context.Context, to, otp string) error {
	return n.send(ctx, otpMessage(to, otp))
}

func (n *SESNotifier) SendPasswordReset(ctx context.Context, to, link string) error {
	return n.send(ctx, resetMessage(to, link))
}

func (n *SESNotifier) send(ctx context.Context, m Message) error {
	body := &types.Body{}
	if m.Text != "" {
		body.Text = &types.Content{Data: aws.String(m.Text), Charset: aws.String("UTF-8")}
	}
	if m.HTML != "" {
		body.Html = &types.Content{Data: aws.String(m.HTML), Charset: aws.String("UTF-8")}
	}

	_, err := n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.from),
		Destination:      &types.Destination{ToAddresses: []string{m.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(m.Subject), Charset: aws.String("UTF-8")},
				Body:    body,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send %q email: %w", m.Subject, err)
	}
	return nil
}
