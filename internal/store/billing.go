package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// CreateBillingRecordParams represents parameters for creating a billing record
type CreateBillingRecordParams struct {
	ClientID    string
	Type        string
	UpfrontFee  float64
	UpfrontPaid bool
	PerLeadRate float64
	Notes       string
}

// CreateBillingRecord inserts a new active billing record with zeroed
// counters. Callers are expected to check for an existing active record
// first; the "one active record per client" invariant is maintained by that
// save flow, not by a storage constraint.
func (s *Store) CreateBillingRecord(ctx context.Context, params CreateBillingRecordParams) (BillingRecord, error) {
	now := time.Now()
	record := BillingRecord{
		ID:          uuid.New().String(),
		ClientID:    params.ClientID,
		Type:        params.Type,
		UpfrontFee:  params.UpfrontFee,
		UpfrontPaid: params.UpfrontPaid,
		PerLeadRate: params.PerLeadRate,
		Status:      "active",
		Notes:       params.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.collection(collectionBilling).InsertOne(ctx, record); err != nil {
		s.logger.Error(ctx, "failed to create billing record", err)
		return BillingRecord{}, fmt.Errorf("failed to create billing record: %w", err)
	}
	return record, nil
}

// GetActiveBillingByClientID retrieves the client's active billing record.
func (s *Store) GetActiveBillingByClientID(ctx context.Context, clientID string) (BillingRecord, error) {
	var record BillingRecord
	err := s.collection(collectionBilling).
		FindOne(ctx, bson.M{"clientId": clientID, "status": "active"}).
		Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return BillingRecord{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get billing record", err)
		return BillingRecord{}, fmt.Errorf("failed to get billing record: %w", err)
	}
	return record, nil
}

// UpdateBillingRecord merges the provided fields into the billing record.
func (s *Store) UpdateBillingRecord(ctx context.Context, recordID string, fields map[string]interface{}) error {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	result, err := s.collection(collectionBilling).
		UpdateOne(ctx, bson.M{"id": recordID}, bson.M{"$set": set})
	if err != nil {
		s.logger.Error(ctx, "failed to update billing record", err)
		return fmt.Errorf("failed to update billing record: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementLeadsDelivered bumps the delivered-lead counter on the client's
// active billing record. A client without an active record is not an error;
// delivery tracking is best effort.
func (s *Store) IncrementLeadsDelivered(ctx context.Context, clientID string) error {
	update := bson.M{
		"$inc": bson.M{"leadsDelivered": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	_, err := s.collection(collectionBilling).
		UpdateOne(ctx, bson.M{"clientId": clientID, "status": "active"}, update)
	if err != nil {
		s.logger.Error(ctx, "failed to increment leads delivered", err)
		return fmt.Errorf("failed to increment leads delivered: %w", err)
	}
	return nil
}
