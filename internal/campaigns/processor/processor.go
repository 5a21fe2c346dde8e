package processor

import (
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"errors"
)

// CampaignStore defines the database operations required by CampaignProcessor
type CampaignStore interface {
	CreateCampaign(ctx context.Context, params store.CreateCampaignParams) (store.Campaign, error)
	GetCampaignByID(ctx context.Context, campaignID string) (store.Campaign, error)
	ListCampaignsByClient(ctx context.Context, clientID string) ([]store.Campaign, error)
	UpdateCampaign(ctx context.Context, campaignID string, fields map[string]interface{}) error
	UpdateCampaignStatus(ctx context.Context, campaignID, status string, markPublished bool) error
	DeleteCampaign(ctx context.Context, campaignID string) error
	IncrementCampaignStat(ctx context.Context, campaignID, stat string) error
}

var (
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrInvalidTransition = errors.New("invalid campaign status transition")
)

type CampaignProcessor struct {
	store  CampaignStore
	logger *observability.Logger
}

func New(store CampaignStore, logger *observability.Logger) CampaignProcessor {
	return CampaignProcessor{
		store:  store,
		logger: logger,
	}
}

// CreateCampaign creates a campaign in draft status.
func (p CampaignProcessor) CreateCampaign(ctx context.Context, params store.CreateCampaignParams) (store.Campaign, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "client_id", Value: params.ClientID},
	)

	campaign, err := p.store.CreateCampaign(ctx, params)
	if err != nil {
		p.logger.Error(ctx, "failed to create campaign", err)
		return store.Campaign{}, err
	}

	p.logger.Info(ctx, "campaign created")
	return campaign, nil
}

// GetCampaign returns one campaign by id.
func (p CampaignProcessor) GetCampaign(ctx context.Context, campaignID string) (store.Campaign, error) {
	campaign, err := p.store.GetCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Campaign{}, ErrCampaignNotFound
		}
		return store.Campaign{}, err
	}
	return campaign, nil
}

// ListCampaigns returns a client's campaigns, newest first.
func (p CampaignProcessor) ListCampaigns(ctx context.Context, clientID string) ([]store.Campaign, error) {
	campaigns, err := p.store.ListCampaignsByClient(ctx, clientID)
	if err != nil {
		p.logger.Error(ctx, "failed to list campaigns", err)
		return nil, err
	}
	return campaigns, nil
}

// UpdateCampaign applies a partial update. Status changes do not go
// through here; the transition endpoints own those.
func (p CampaignProcessor) UpdateCampaign(ctx context.Context, campaignID string, fields map[string]interface{}) error {
	delete(fields, "status")
	err := p.store.UpdateCampaign(ctx, campaignID, fields)
	if errors.Is(err, store.ErrNotFound) {
		return ErrCampaignNotFound
	}
	return err
}

// DeleteCampaign removes a campaign. Its captured leads stay around.
func (p CampaignProcessor) DeleteCampaign(ctx context.Context, campaignID string) error {
	err := p.store.DeleteCampaign(ctx, campaignID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrCampaignNotFound
	}
	return err
}

// PublishCampaign activates a draft or paused campaign and stamps
// publishedAt.
func (p CampaignProcessor) PublishCampaign(ctx context.Context, campaignID string) (store.Campaign, error) {
	return p.transition(ctx, campaignID, "active", true, "draft", "paused")
}

// PauseCampaign suspends an active campaign.
func (p CampaignProcessor) PauseCampaign(ctx context.Context, campaignID string) (store.Campaign, error) {
	return p.transition(ctx, campaignID, "paused", false, "active")
}

// CompleteCampaign closes out an active or paused campaign. Completed is
// terminal.
func (p CampaignProcessor) CompleteCampaign(ctx context.Context, campaignID string) (store.Campaign, error) {
	return p.transition(ctx, campaignID, "completed", false, "active", "paused")
}

// RecordView bumps the campaign's view counter for a public page load.
func (p CampaignProcessor) RecordView(ctx context.Context, campaignID string) {
	if err := p.store.IncrementCampaignStat(ctx, campaignID, "views"); err != nil {
		p.logger.Error(ctx, "failed to increment campaign views", err)
	}
}

func (p CampaignProcessor) transition(ctx context.Context, campaignID, target string, markPublished bool, allowedFrom ...string) (store.Campaign, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "campaign_id", Value: campaignID},
		observability.Field{Key: "target_status", Value: target},
	)

	campaign, err := p.store.GetCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Campaign{}, ErrCampaignNotFound
		}
		return store.Campaign{}, err
	}

	allowed := false
	for _, from := range allowedFrom {
		if campaign.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return store.Campaign{}, ErrInvalidTransition
	}

	if err := p.store.UpdateCampaignStatus(ctx, campaignID, target, markPublished); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Campaign{}, ErrCampaignNotFound
		}
		p.logger.Error(ctx, "failed to update campaign status", err)
		return store.Campaign{}, err
	}

	campaign.Status = target
	p.logger.Info(ctx, "campaign status changed")
	return campaign, nil
}
