package notifications

import (
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"fmt"
	"strings"
)

// EmailSender delivers a single HTML email.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, htmlContent string) (string, error)
}

// SMSSender delivers a single text message.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) (string, error)
}

// Service fans new-lead notifications out to the owning client over email
// and SMS. Either sender may be nil when the channel is not configured.
type Service struct {
	email     EmailSender
	sms       SMSSender
	webAppURI string
	logger    *observability.Logger
}

func New(email EmailSender, sms SMSSender, webAppURI string, logger *observability.Logger) *Service {
	return &Service{
		email:     email,
		sms:       sms,
		webAppURI: webAppURI,
		logger:    logger,
	}
}

// SendLeadNotification tells the client about a freshly captured lead.
// Channel failures are logged and do not fail the other channel.
func (s *Service) SendLeadNotification(ctx context.Context, client store.Client, campaign store.Campaign, lead store.Lead) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "client_id", Value: client.ClientID},
		observability.Field{Key: "lead_id", Value: lead.ID},
	)

	to := client.ContactEmail
	if to == "" {
		to = client.Email
	}
	if s.email != nil && to != "" {
		subject := fmt.Sprintf("New Lead: %s", lead.Name)
		body := leadEmailBody(s.webAppURI, campaign, lead)
		if _, err := s.email.SendEmail(ctx, to, subject, body); err != nil {
			s.logger.Error(ctx, "failed to send lead notification email", err)
		}
	}

	phone := client.ContactPhone
	if phone == "" {
		phone = client.Phone
	}
	if s.sms != nil && phone != "" {
		body := fmt.Sprintf("New lead: %s (%s) - View in dashboard", lead.Name, lead.Email)
		if _, err := s.sms.SendSMS(ctx, phone, body); err != nil {
			s.logger.Error(ctx, "failed to send lead notification sms", err)
		}
	}
}

// SendWelcomeEmail sends the campaign's auto-responder to the lead itself.
// It is a no-op when the auto-responder is disabled or the lead left no email.
func (s *Service) SendWelcomeEmail(ctx context.Context, campaign store.Campaign, lead store.Lead) {
	if s.email == nil || !campaign.AutoResponder.Enabled || lead.Email == "" {
		return
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "campaign_id", Value: campaign.ID},
		observability.Field{Key: "lead_id", Value: lead.ID},
	)

	body := campaign.AutoResponder.Body
	replacer := strings.NewReplacer(
		"{{name}}", lead.Name,
		"{{email}}", lead.Email,
		"{{phone}}", lead.Phone,
		"{{company}}", lead.Company,
	)
	body = replacer.Replace(body)

	if _, err := s.email.SendEmail(ctx, lead.Email, campaign.AutoResponder.Subject, body); err != nil {
		s.logger.Error(ctx, "failed to send welcome email", err)
	}
}

func leadEmailBody(webAppURI string, campaign store.Campaign, lead store.Lead) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p>New lead captured from campaign: %s</p>", campaign.Name))
	b.WriteString("<ul>")
	b.WriteString(fmt.Sprintf("<li>Name: %s</li>", lead.Name))
	b.WriteString(fmt.Sprintf("<li>Email: %s</li>", lead.Email))
	b.WriteString(fmt.Sprintf("<li>Phone: %s</li>", lead.Phone))
	b.WriteString(fmt.Sprintf("<li>Company: %s</li>", lead.Company))
	b.WriteString(fmt.Sprintf("<li>Source: %s</li>", lead.Source))
	b.WriteString(fmt.Sprintf("<li>Lead Score: %d</li>", lead.Score))
	b.WriteString("</ul>")
	b.WriteString(fmt.Sprintf(`<p><a href="%s/client/leads">View lead</a></p>`, webAppURI))
	return b.String()
}
