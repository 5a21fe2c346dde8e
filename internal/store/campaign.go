package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CreateCampaignParams represents parameters for creating a campaign
type CreateCampaignParams struct {
	ClientID       string
	Name           string
	Description    string
	Type           string
	Status         string
	TargetAudience map[string]interface{}
	LeadMagnet     map[string]interface{}
	LandingPage    map[string]interface{}
	ThankYouPage   map[string]interface{}
	Form           *CampaignForm
	AutoResponder  *CampaignAutoResponder
	Settings       *CampaignSettings
}

// CreateCampaign inserts a new campaign document in draft status unless a
// status was given, with a zeroed stats block.
func (s *Store) CreateCampaign(ctx context.Context, params CreateCampaignParams) (Campaign, error) {
	now := time.Now()
	campaign := Campaign{
		ID:             uuid.New().String(),
		ClientID:       params.ClientID,
		Name:           params.Name,
		Description:    params.Description,
		Type:           params.Type,
		Status:         params.Status,
		TargetAudience: params.TargetAudience,
		LeadMagnet:     params.LeadMagnet,
		LandingPage:    params.LandingPage,
		ThankYouPage:   params.ThankYouPage,
		Stats:          CampaignStats{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if campaign.Type == "" {
		campaign.Type = "lead-capture"
	}
	if campaign.Status == "" {
		campaign.Status = "draft"
	}
	if campaign.TargetAudience == nil {
		campaign.TargetAudience = map[string]interface{}{}
	}
	if campaign.LandingPage == nil {
		campaign.LandingPage = map[string]interface{}{}
	}
	if campaign.ThankYouPage == nil {
		campaign.ThankYouPage = map[string]interface{}{}
	}
	if params.Form != nil {
		campaign.Form = *params.Form
	} else {
		campaign.Form = CampaignForm{
			Fields:         []map[string]interface{}{},
			SubmitText:     "Submit",
			SuccessMessage: "Thank you for your interest!",
		}
	}
	if params.AutoResponder != nil {
		campaign.AutoResponder = *params.AutoResponder
	}
	if params.Settings != nil {
		campaign.Settings = *params.Settings
	} else {
		campaign.Settings = CampaignSettings{LeadScoring: true, NotifyOnSubmit: true}
	}

	if _, err := s.collection(collectionCampaigns).InsertOne(ctx, campaign); err != nil {
		s.logger.Error(ctx, "failed to create campaign", err)
		return Campaign{}, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

// GetCampaignByID retrieves a campaign by id.
func (s *Store) GetCampaignByID(ctx context.Context, campaignID string) (Campaign, error) {
	var campaign Campaign
	err := s.collection(collectionCampaigns).
		FindOne(ctx, bson.M{"id": campaignID}).
		Decode(&campaign)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Campaign{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get campaign", err)
		return Campaign{}, fmt.Errorf("failed to get campaign: %w", err)
	}
	return campaign, nil
}

// ListCampaignsByClient retrieves campaigns for a client, newest first.
func (s *Store) ListCampaignsByClient(ctx context.Context, clientID string) ([]Campaign, error) {
	filter := bson.M{}
	if clientID != "" {
		filter["clientId"] = clientID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection(collectionCampaigns).Find(ctx, filter, opts)
	if err != nil {
		s.logger.Error(ctx, "failed to list campaigns", err)
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer cursor.Close(ctx)

	campaigns := []Campaign{}
	if err := cursor.All(ctx, &campaigns); err != nil {
		s.logger.Error(ctx, "failed to decode campaigns", err)
		return nil, fmt.Errorf("failed to decode campaigns: %w", err)
	}
	return campaigns, nil
}

// UpdateCampaign merges the provided fields into the campaign document.
func (s *Store) UpdateCampaign(ctx context.Context, campaignID string, fields map[string]interface{}) error {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	result, err := s.collection(collectionCampaigns).
		UpdateOne(ctx, bson.M{"id": campaignID}, bson.M{"$set": set})
	if err != nil {
		s.logger.Error(ctx, "failed to update campaign", err)
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateCampaignStatus sets the campaign status. Entering active status for
// the first time also stamps publishedAt.
func (s *Store) UpdateCampaignStatus(ctx context.Context, campaignID, status string, markPublished bool) error {
	set := bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}
	if markPublished {
		set["publishedAt"] = time.Now()
	}

	result, err := s.collection(collectionCampaigns).
		UpdateOne(ctx, bson.M{"id": campaignID}, bson.M{"$set": set})
	if err != nil {
		s.logger.Error(ctx, "failed to update campaign status", err)
		return fmt.Errorf("failed to update campaign status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCampaign removes the campaign document.
func (s *Store) DeleteCampaign(ctx context.Context, campaignID string) error {
	result, err := s.collection(collectionCampaigns).DeleteOne(ctx, bson.M{"id": campaignID})
	if err != nil {
		s.logger.Error(ctx, "failed to delete campaign", err)
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementCampaignStat bumps one counter inside the embedded stats block
// (e.g. "submissions" or "views").
func (s *Store) IncrementCampaignStat(ctx context.Context, campaignID, stat string) error {
	update := bson.M{
		"$inc": bson.M{"stats." + stat: 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	result, err := s.collection(collectionCampaigns).UpdateOne(ctx, bson.M{"id": campaignID}, update)
	if err != nil {
		s.logger.Error(ctx, "failed to increment campaign stat", err)
		return fmt.Errorf("failed to increment campaign stat: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
