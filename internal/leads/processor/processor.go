package processor

import (
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"errors"
	"time"
)

// LeadStore defines the database operations required by LeadProcessor
type LeadStore interface {
	CreateLead(ctx context.Context, params store.CreateLeadParams) (store.Lead, error)
	GetLeadByID(ctx context.Context, leadID string) (store.Lead, error)
	ListLeadsByClient(ctx context.Context, clientID string) ([]store.Lead, error)
	UpdateLead(ctx context.Context, leadID string, fields map[string]interface{}) error
	AddLeadNote(ctx context.Context, leadID, note string) error
	GetCampaignByID(ctx context.Context, campaignID string) (store.Campaign, error)
	GetClientByID(ctx context.Context, clientID string) (store.Client, error)
	IncrementCampaignStat(ctx context.Context, campaignID, stat string) error
	IncrementLeadsDelivered(ctx context.Context, clientID string) error
}

// SheetsExporter appends a captured lead to a client's spreadsheet.
type SheetsExporter interface {
	AppendLead(ctx context.Context, spreadsheetID string, lead store.Lead) error
}

// Notifier fans lead alerts out to the owning client.
type Notifier interface {
	SendLeadNotification(ctx context.Context, client store.Client, campaign store.Campaign, lead store.Lead)
	SendWelcomeEmail(ctx context.Context, campaign store.Campaign, lead store.Lead)
}

var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrCampaignNotActive = errors.New("campaign is not active")
)

const sideEffectTimeout = 30 * time.Second

type LeadProcessor struct {
	store    LeadStore
	sheets   SheetsExporter
	notifier Notifier
	logger   *observability.Logger
}

// New creates a lead processor. sheets may be nil when no export
// credentials are configured.
func New(store LeadStore, sheets SheetsExporter, notifier Notifier, logger *observability.Logger) LeadProcessor {
	return LeadProcessor{
		store:    store,
		sheets:   sheets,
		notifier: notifier,
		logger:   logger,
	}
}

// CaptureLeadParams is a public form submission against a campaign.
type CaptureLeadParams struct {
	CampaignID  string
	FormData    map[string]string
	Tracking    map[string]interface{}
	RequesterIP string
}

// CaptureLead persists a lead submitted through a public campaign form.
// The form builder stores field values under numeric keys, so those take
// precedence over the named fallbacks used by hand-built pages. Export,
// notifications and counter bumps run after the response; their failures
// are logged only.
func (p LeadProcessor) CaptureLead(ctx context.Context, params CaptureLeadParams) (store.Lead, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "campaign_id", Value: params.CampaignID},
	)

	campaign, err := p.store.GetCampaignByID(ctx, params.CampaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Lead{}, ErrCampaignNotActive
		}
		p.logger.Error(ctx, "failed to load campaign", err)
		return store.Lead{}, err
	}
	if campaign.Status != "active" {
		return store.Lead{}, ErrCampaignNotActive
	}

	tracking := make(map[string]interface{}, len(params.Tracking)+2)
	for k, v := range params.Tracking {
		tracking[k] = v
	}
	tracking["ip"] = params.RequesterIP
	tracking["capturedAt"] = time.Now().UTC().Format(time.RFC3339)

	lead, err := p.store.CreateLead(ctx, store.CreateLeadParams{
		ClientID:      campaign.ClientID,
		CampaignID:    params.CampaignID,
		Name:          formField(params.FormData, "1", "name", "Unknown"),
		Email:         formField(params.FormData, "2", "email", ""),
		Phone:         formField(params.FormData, "3", "phone", ""),
		Company:       formField(params.FormData, "4", "company", ""),
		Source:        "Lead Gen Campaign",
		Status:        "new",
		Score:         70,
		FormResponses: params.FormData,
		Tracking:      tracking,
		Timestamp:     time.Now(),
	})
	if err != nil {
		p.logger.Error(ctx, "failed to save captured lead", err)
		return store.Lead{}, err
	}

	go p.runCaptureSideEffects(campaign, lead)

	return lead, nil
}

// runCaptureSideEffects does the post-capture work that must not delay or
// fail the submission response.
func (p LeadProcessor) runCaptureSideEffects(campaign store.Campaign, lead store.Lead) {
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "campaign_id", Value: campaign.ID},
		observability.Field{Key: "lead_id", Value: lead.ID},
	)

	client, err := p.store.GetClientByID(ctx, campaign.ClientID)
	if err != nil {
		p.logger.Error(ctx, "failed to load client for capture side effects", err)
		client = store.Client{ClientID: campaign.ClientID}
	}

	if p.sheets != nil && client.Integrations.SheetsEnabled && client.Integrations.SheetsSpreadsheetID != "" {
		if err := p.sheets.AppendLead(ctx, client.Integrations.SheetsSpreadsheetID, lead); err != nil {
			p.logger.Error(ctx, "sheets export failed", err)
		}
	}

	if p.notifier != nil {
		if campaign.NotifyOnSubmit() {
			p.notifier.SendLeadNotification(ctx, client, campaign, lead)
		}
		p.notifier.SendWelcomeEmail(ctx, campaign, lead)
	}

	if err := p.store.IncrementCampaignStat(ctx, campaign.ID, "submissions"); err != nil {
		p.logger.Error(ctx, "failed to increment campaign submissions", err)
	}
	if err := p.store.IncrementLeadsDelivered(ctx, campaign.ClientID); err != nil {
		p.logger.Error(ctx, "failed to increment leads delivered", err)
	}
}

// ListLeads returns a client's leads, newest first. An empty clientID
// returns every lead (admin view).
func (p LeadProcessor) ListLeads(ctx context.Context, clientID string) ([]store.Lead, error) {
	leads, err := p.store.ListLeadsByClient(ctx, clientID)
	if err != nil {
		p.logger.Error(ctx, "failed to list leads", err)
		return nil, err
	}
	return leads, nil
}

// UpdateLead applies a partial update to a lead.
func (p LeadProcessor) UpdateLead(ctx context.Context, leadID string, fields map[string]interface{}) error {
	err := p.store.UpdateLead(ctx, leadID, fields)
	if errors.Is(err, store.ErrNotFound) {
		return ErrLeadNotFound
	}
	return err
}

// AddNote appends a dated note to a lead's note log.
func (p LeadProcessor) AddNote(ctx context.Context, leadID, note string) error {
	err := p.store.AddLeadNote(ctx, leadID, note)
	if errors.Is(err, store.ErrNotFound) {
		return ErrLeadNotFound
	}
	return err
}

func formField(form map[string]string, numericKey, namedKey, fallback string) string {
	if v := form[numericKey]; v != "" {
		return v
	}
	if v := form[namedKey]; v != "" {
		return v
	}
	return fallback
}
