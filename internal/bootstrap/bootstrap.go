package bootstrap

import (
	"context"
	"fmt"

	"ari-server/internal/config"
	"ari-server/internal/observability"
	"ari-server/internal/store"

	acceleratorHandler "ari-server/internal/accelerator/handler"
	acceleratorProcessor "ari-server/internal/accelerator/processor"
	appointmentHandler "ari-server/internal/appointments/handler"
	appointmentProcessor "ari-server/internal/appointments/processor"
	authHandler "ari-server/internal/auth/handler"
	authProcessor "ari-server/internal/auth/processor"
	billingHandler "ari-server/internal/billing/handler"
	billingProcessor "ari-server/internal/billing/processor"
	callHandler "ari-server/internal/calls/handler"
	callProcessor "ari-server/internal/calls/processor"
	campaignHandler "ari-server/internal/campaigns/handler"
	campaignProcessor "ari-server/internal/campaigns/processor"
	clientHandler "ari-server/internal/clients/handler"
	clientProcessor "ari-server/internal/clients/processor"
	dashboardHandler "ari-server/internal/dashboard/handler"
	dashboardProcessor "ari-server/internal/dashboard/processor"
	"ari-server/internal/integrations/mail"
	"ari-server/internal/integrations/sheets"
	"ari-server/internal/integrations/sms"
	"ari-server/internal/integrations/vapiapi"
	leadHandler "ari-server/internal/leads/handler"
	leadProcessor "ari-server/internal/leads/processor"
	"ari-server/internal/notifications"
	receptionistHandler "ari-server/internal/receptionist/handler"
	receptionistProcessor "ari-server/internal/receptionist/processor"
	vapiHandler "ari-server/internal/vapi/handler"
	vapiProcessor "ari-server/internal/vapi/processor"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  *store.Store
	Logger *observability.Logger

	// Handlers
	AuthHandler         authHandler.Handler
	ClientHandler       clientHandler.Handler
	ReceptionistHandler receptionistHandler.Handler
	AcceleratorHandler  acceleratorHandler.Handler
	CampaignHandler     campaignHandler.Handler
	LeadHandler         leadHandler.Handler
	AppointmentHandler  appointmentHandler.Handler
	CallHandler         callHandler.Handler
	DashboardHandler    dashboardHandler.Handler
	BillingHandler      billingHandler.Handler
	VapiHandler         vapiHandler.Handler
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Initialize document store
	var err error
	deps.Store, err = store.New(ctx, cfg.Database.URI, cfg.Database.Name, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize integration clients
	mailClient, err := mail.NewResendClient(cfg.Services.ResendAPIKey, cfg.Services.DefaultEmailSender, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create resend client: %w", err)
	}

	smsClient := sms.NewTwilioClient(
		cfg.Services.TwilioAccountSID,
		cfg.Services.TwilioAuthToken,
		cfg.Services.TwilioFromNumber,
		logger,
	)

	vapiClient := vapiapi.NewClient(cfg.Services.VapiPrivateToken, logger)

	// Sheets export is optional and stays disabled without credentials.
	var sheetsExporter leadProcessor.SheetsExporter
	if cfg.Services.SheetsCredentials != "" {
		sheetsClient, err := sheets.NewClient(ctx, []byte(cfg.Services.SheetsCredentials), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets client: %w", err)
		}
		sheetsExporter = sheetsClient
	}

	// Initialize notification service
	notificationService := notifications.New(mailClient, smsClient, cfg.Services.WebAppURI, logger)

	// Initialize auth processor and handler
	authProc := authProcessor.New(deps.Store, cfg.Services.WebAppURI, logger)
	deps.AuthHandler = authHandler.New(authProc, logger)

	// Initialize client account processor and handler
	clientProc := clientProcessor.New(deps.Store, logger)
	deps.ClientHandler = clientHandler.New(clientProc, logger)

	// Initialize receptionist processor and handler
	webhookURL := cfg.Services.WebAppURI + "/api/vapi/webhook"
	receptionistProc := receptionistProcessor.New(
		deps.Store,
		vapiClient,
		webhookURL,
		cfg.Services.VapiWebhookSecret,
		logger,
	)
	deps.ReceptionistHandler = receptionistHandler.New(receptionistProc, logger)

	// Initialize booking accelerator processor and handler
	acceleratorProc := acceleratorProcessor.New(deps.Store, cfg.Services.WebAppURI, logger)
	deps.AcceleratorHandler = acceleratorHandler.New(acceleratorProc, logger)

	// Initialize campaign processor and handler
	campaignProc := campaignProcessor.New(deps.Store, logger)
	deps.CampaignHandler = campaignHandler.New(campaignProc, logger)

	// Initialize lead processor and handler
	leadProc := leadProcessor.New(deps.Store, sheetsExporter, notificationService, logger)
	deps.LeadHandler = leadHandler.New(leadProc, logger)

	// Initialize appointment processor and handler
	appointmentProc := appointmentProcessor.New(deps.Store, logger)
	deps.AppointmentHandler = appointmentHandler.New(appointmentProc, logger)

	// Initialize call history processor and handler
	callProc := callProcessor.New(deps.Store, logger)
	deps.CallHandler = callHandler.New(callProc, logger)

	// Initialize dashboard processor and handler
	dashboardProc := dashboardProcessor.New(deps.Store, logger)
	deps.DashboardHandler = dashboardHandler.New(dashboardProc, logger)

	// Initialize billing processor and handler
	billingProc := billingProcessor.New(deps.Store, logger)
	deps.BillingHandler = billingHandler.New(billingProc, logger)

	// Initialize webhook processor and handler
	webhookProc := vapiProcessor.New(deps.Store, logger)
	deps.VapiHandler = vapiHandler.New(webhookProc, logger)

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup(ctx context.Context) {
	if d.Store != nil {
		if err := d.Store.Close(ctx); err != nil {
			d.Logger.Error(ctx, "failed to close store", err)
		}
	}
}
