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

// CreateLeadParams represents parameters for creating a lead
type CreateLeadParams struct {
	ClientID      string
	CampaignID    string
	Name          string
	Email         string
	Phone         string
	Company       string
	Interest      string
	Budget        string
	Timeline      string
	LeadQuality   string
	Notes         string
	Status        string
	Source        string
	CallID        string
	Score         int
	FormResponses map[string]string
	Tracking      map[string]interface{}
	Timestamp     time.Time
}

// CreateLead inserts a new lead document with a generated id. Defaults follow
// the capture flows: quality "warm", status "new", source "ai-receptionist",
// score 70 when the caller did not compute one.
func (s *Store) CreateLead(ctx context.Context, params CreateLeadParams) (Lead, error) {
	now := time.Now()
	createdAt := params.Timestamp
	if createdAt.IsZero() {
		createdAt = now
	}

	lead := Lead{
		ID:            uuid.New().String(),
		ClientID:      params.ClientID,
		CampaignID:    params.CampaignID,
		Name:          params.Name,
		Email:         params.Email,
		Phone:         params.Phone,
		Company:       params.Company,
		Interest:      params.Interest,
		Budget:        params.Budget,
		Timeline:      params.Timeline,
		LeadQuality:   params.LeadQuality,
		Notes:         params.Notes,
		Status:        params.Status,
		Source:        params.Source,
		CallID:        params.CallID,
		Score:         params.Score,
		FormResponses: params.FormResponses,
		Tracking:      params.Tracking,
		CreatedAt:     createdAt,
		UpdatedAt:     now,
	}
	if lead.LeadQuality == "" {
		lead.LeadQuality = "warm"
	}
	if lead.Status == "" {
		lead.Status = "new"
	}
	if lead.Source == "" {
		lead.Source = "ai-receptionist"
	}
	if lead.Score == 0 {
		lead.Score = 70
	}

	if _, err := s.collection(collectionLeads).InsertOne(ctx, lead); err != nil {
		s.logger.Error(ctx, "failed to create lead", err)
		return Lead{}, fmt.Errorf("failed to create lead: %w", err)
	}
	return lead, nil
}

// GetLeadByID retrieves a lead by id.
func (s *Store) GetLeadByID(ctx context.Context, leadID string) (Lead, error) {
	var lead Lead
	err := s.collection(collectionLeads).FindOne(ctx, bson.M{"id": leadID}).Decode(&lead)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Lead{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get lead", err)
		return Lead{}, fmt.Errorf("failed to get lead: %w", err)
	}
	return lead, nil
}

// ListLeadsByClient retrieves leads for a client, newest first. An empty
// clientID returns leads across all clients (admin view).
func (s *Store) ListLeadsByClient(ctx context.Context, clientID string) ([]Lead, error) {
	filter := bson.M{}
	if clientID != "" {
		filter["clientId"] = clientID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection(collectionLeads).Find(ctx, filter, opts)
	if err != nil {
		s.logger.Error(ctx, "failed to list leads", err)
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer cursor.Close(ctx)

	leads := []Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		s.logger.Error(ctx, "failed to decode leads", err)
		return nil, fmt.Errorf("failed to decode leads: %w", err)
	}
	return leads, nil
}

// CountLeadsByClient counts lead documents for a client.
func (s *Store) CountLeadsByClient(ctx context.Context, clientID string) (int64, error) {
	count, err := s.collection(collectionLeads).CountDocuments(ctx, bson.M{"clientId": clientID})
	if err != nil {
		s.logger.Error(ctx, "failed to count leads", err)
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return count, nil
}

// UpdateLead merges the provided fields into the lead document. Status is an
// open string set, so any status value is accepted as-is.
func (s *Store) UpdateLead(ctx context.Context, leadID string, fields map[string]interface{}) error {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	result, err := s.collection(collectionLeads).
		UpdateOne(ctx, bson.M{"id": leadID}, bson.M{"$set": set})
	if err != nil {
		s.logger.Error(ctx, "failed to update lead", err)
		return fmt.Errorf("failed to update lead: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddLeadNote appends a dated note to the lead's note log.
func (s *Store) AddLeadNote(ctx context.Context, leadID, note string) error {
	update := bson.M{
		"$push": bson.M{"noteLog": LeadNote{Text: note, AddedAt: time.Now()}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := s.collection(collectionLeads).UpdateOne(ctx, bson.M{"id": leadID}, update)
	if err != nil {
		s.logger.Error(ctx, "failed to add lead note", err)
		return fmt.Errorf("failed to add lead note: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
