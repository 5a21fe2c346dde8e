package sms

import (
	"ari-server/internal/observability"
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type TwilioClient struct {
	client *twilio.RestClient
	from   string
	logger *observability.Logger
}

func NewTwilioClient(accountSID, authToken, from string, logger *observability.Logger) *TwilioClient {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioClient{
		client: client,
		from:   from,
		logger: logger,
	}
}

func (c *TwilioClient) SendSMS(ctx context.Context, to, body string) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "sms_to", Value: to},
	)

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(c.from)
	params.SetTo(to)
	params.SetBody(body)

	msg, err := c.client.Api.CreateMessage(params)
	if err != nil {
		c.logger.Error(ctx, "failed to send sms", err)
		return "", fmt.Errorf("failed to send sms: %w", err)
	}

	sid := ""
	if msg.Sid != nil {
		sid = *msg.Sid
	}
	c.logger.Info(ctx, "sms sent successfully")
	return sid, nil
}
