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

// InsertCallTranscriptParams represents parameters for a finalized transcript
type InsertCallTranscriptParams struct {
	CallID      string
	ClientID    string
	PhoneNumber string
	Transcript  string
	Summary     string
	LeadData    map[string]string
	DurationMS  int64
	Status      string
	Timestamp   time.Time
}

// InsertCallTranscript writes a finalized transcript document from an
// end-of-call report. Each report produces its own document; the upstream
// platform's at-least-once delivery can therefore produce duplicates.
func (s *Store) InsertCallTranscript(ctx context.Context, params InsertCallTranscriptParams) (CallTranscript, error) {
	now := time.Now()
	createdAt := params.Timestamp
	if createdAt.IsZero() {
		createdAt = now
	}

	transcript := CallTranscript{
		ID:          uuid.New().String(),
		CallID:      params.CallID,
		ClientID:    params.ClientID,
		PhoneNumber: params.PhoneNumber,
		Transcript:  params.Transcript,
		Summary:     params.Summary,
		LeadData:    params.LeadData,
		DurationMS:  params.DurationMS,
		Status:      params.Status,
		CreatedAt:   createdAt,
		UpdatedAt:   now,
	}
	if transcript.Status == "" {
		transcript.Status = "completed"
	}

	if _, err := s.collection(collectionCallTranscripts).InsertOne(ctx, transcript); err != nil {
		s.logger.Error(ctx, "failed to insert call transcript", err)
		return CallTranscript{}, fmt.Errorf("failed to insert call transcript: %w", err)
	}
	return transcript, nil
}

// UpsertPartialTranscript merges a streaming transcript fragment into the
// document keyed by callId, creating it on first delivery. Last write wins,
// so duplicate or out-of-order deliveries self-heal to the latest text.
func (s *Store) UpsertPartialTranscript(ctx context.Context, callID, clientID, text string) error {
	update := bson.M{
		"$set": bson.M{
			"transcript": text,
			"isPartial":  true,
			"updatedAt":  time.Now(),
		},
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"callId":    callID,
			"clientId":  clientID,
			"createdAt": time.Now(),
		},
	}

	opts := options.UpdateOne().SetUpsert(true)
	_, err := s.collection(collectionCallTranscripts).
		UpdateOne(ctx, bson.M{"callId": callID}, update, opts)
	if err != nil {
		s.logger.Error(ctx, "failed to upsert partial transcript", err)
		return fmt.Errorf("failed to upsert partial transcript: %w", err)
	}
	return nil
}

// GetTranscriptByCallID retrieves a transcript by call id.
func (s *Store) GetTranscriptByCallID(ctx context.Context, callID string) (CallTranscript, error) {
	var transcript CallTranscript
	err := s.collection(collectionCallTranscripts).
		FindOne(ctx, bson.M{"callId": callID}).
		Decode(&transcript)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return CallTranscript{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get call transcript", err)
		return CallTranscript{}, fmt.Errorf("failed to get call transcript: %w", err)
	}
	return transcript, nil
}

// ListTranscriptsByClient retrieves a client's call history, newest first.
func (s *Store) ListTranscriptsByClient(ctx context.Context, clientID string) ([]CallTranscript, error) {
	filter := bson.M{}
	if clientID != "" {
		filter["clientId"] = clientID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection(collectionCallTranscripts).Find(ctx, filter, opts)
	if err != nil {
		s.logger.Error(ctx, "failed to list call transcripts", err)
		return nil, fmt.Errorf("failed to list call transcripts: %w", err)
	}
	defer cursor.Close(ctx)

	transcripts := []CallTranscript{}
	if err := cursor.All(ctx, &transcripts); err != nil {
		s.logger.Error(ctx, "failed to decode call transcripts", err)
		return nil, fmt.Errorf("failed to decode call transcripts: %w", err)
	}
	return transcripts, nil
}

// CountCompletedCallsByClient counts finalized (non-partial) transcripts.
func (s *Store) CountCompletedCallsByClient(ctx context.Context, clientID string) (int64, error) {
	filter := bson.M{"clientId": clientID, "isPartial": bson.M{"$ne": true}}
	count, err := s.collection(collectionCallTranscripts).CountDocuments(ctx, filter)
	if err != nil {
		s.logger.Error(ctx, "failed to count call transcripts", err)
		return 0, fmt.Errorf("failed to count call transcripts: %w", err)
	}
	return count, nil
}

// AverageCallDurationMS computes the mean duration of a client's finalized
// calls in milliseconds, 0 when the client has no calls.
func (s *Store) AverageCallDurationMS(ctx context.Context, clientID string) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"clientId": clientID, "isPartial": bson.M{"$ne": true}}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": nil, "avgDuration": bson.M{"$avg": "$duration"}}}},
	}

	cursor, err := s.collection(collectionCallTranscripts).Aggregate(ctx, pipeline)
	if err != nil {
		s.logger.Error(ctx, "failed to aggregate call durations", err)
		return 0, fmt.Errorf("failed to aggregate call durations: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		AvgDuration float64 `bson:"avgDuration"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		s.logger.Error(ctx, "failed to decode call duration aggregate", err)
		return 0, fmt.Errorf("failed to decode call duration aggregate: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].AvgDuration, nil
}
