package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Product configuration blobs are persisted wholesale: the dashboard editors
// own the document shape, the backend only keys them by clientId and stamps
// updatedAt. GET-with-default behavior lives in the product processors.

// GetReceptionistConfig retrieves the AI receptionist configuration blob.
func (s *Store) GetReceptionistConfig(ctx context.Context, clientID string) (map[string]interface{}, error) {
	return s.getConfig(ctx, collectionReceptionistConfig, clientID)
}

// UpsertReceptionistConfig replaces the AI receptionist configuration blob.
func (s *Store) UpsertReceptionistConfig(ctx context.Context, clientID string, cfg map[string]interface{}) error {
	return s.upsertConfig(ctx, collectionReceptionistConfig, clientID, cfg)
}

// GetAcceleratorConfig retrieves the booking accelerator configuration blob.
func (s *Store) GetAcceleratorConfig(ctx context.Context, clientID string) (map[string]interface{}, error) {
	return s.getConfig(ctx, collectionAcceleratorConfig, clientID)
}

// UpsertAcceleratorConfig replaces the booking accelerator configuration blob.
func (s *Store) UpsertAcceleratorConfig(ctx context.Context, clientID string, cfg map[string]interface{}) error {
	return s.upsertConfig(ctx, collectionAcceleratorConfig, clientID, cfg)
}

func (s *Store) getConfig(ctx context.Context, collection, clientID string) (map[string]interface{}, error) {
	var cfg map[string]interface{}
	err := s.collection(collection).
		FindOne(ctx, bson.M{"clientId": clientID}, options.FindOne().SetProjection(bson.M{"_id": 0})).
		Decode(&cfg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get config", err)
		return nil, fmt.Errorf("failed to get config: %w", err)
	}
	return cfg, nil
}

func (s *Store) upsertConfig(ctx context.Context, collection, clientID string, cfg map[string]interface{}) error {
	doc := bson.M{}
	for k, v := range cfg {
		doc[k] = v
	}
	doc["clientId"] = clientID
	doc["updatedAt"] = time.Now()

	opts := options.Replace().SetUpsert(true)
	_, err := s.collection(collection).ReplaceOne(ctx, bson.M{"clientId": clientID}, doc, opts)
	if err != nil {
		s.logger.Error(ctx, "failed to upsert config", err)
		return fmt.Errorf("failed to upsert config: %w", err)
	}
	return nil
}
