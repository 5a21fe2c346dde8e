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

// CreateClientParams represents parameters for creating a client
type CreateClientParams struct {
	BusinessName string
	ContactName  string
	Email        string
	Phone        string
	Industry     string
	Website      string
	Address      string
	ContactTitle string
	ContactEmail string
	ContactPhone string
	PasswordHash string
	Services     ClientServices
	Notes        string
}

// CreateClient inserts a new client document with a generated clientId.
func (s *Store) CreateClient(ctx context.Context, params CreateClientParams) (Client, error) {
	now := time.Now()
	client := Client{
		ClientID:     uuid.New().String(),
		BusinessName: params.BusinessName,
		ContactName:  params.ContactName,
		Email:        params.Email,
		Phone:        params.Phone,
		Industry:     params.Industry,
		Website:      params.Website,
		Address:      params.Address,
		ContactTitle: params.ContactTitle,
		ContactEmail: params.ContactEmail,
		ContactPhone: params.ContactPhone,
		LoginEmail:   params.Email,
		PasswordHash: params.PasswordHash,
		Services:     params.Services,
		Status:       "active",
		Notes:        params.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.collection(collectionClients).InsertOne(ctx, client); err != nil {
		s.logger.Error(ctx, "failed to create client", err)
		return Client{}, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// GetClientByID retrieves a client by its application-generated id.
func (s *Store) GetClientByID(ctx context.Context, clientID string) (Client, error) {
	var client Client
	err := s.collection(collectionClients).
		FindOne(ctx, bson.M{"clientId": clientID}).
		Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Client{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get client", err)
		return Client{}, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

// GetClientByLoginEmail retrieves a client by its login email.
func (s *Store) GetClientByLoginEmail(ctx context.Context, email string) (Client, error) {
	var client Client
	err := s.collection(collectionClients).
		FindOne(ctx, bson.M{"loginEmail": email}).
		Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Client{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get client by login email", err)
		return Client{}, fmt.Errorf("failed to get client by login email: %w", err)
	}
	return client, nil
}

// ListClients retrieves all clients, newest first.
func (s *Store) ListClients(ctx context.Context) ([]Client, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection(collectionClients).Find(ctx, bson.M{}, opts)
	if err != nil {
		s.logger.Error(ctx, "failed to list clients", err)
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer cursor.Close(ctx)

	clients := []Client{}
	if err := cursor.All(ctx, &clients); err != nil {
		s.logger.Error(ctx, "failed to decode clients", err)
		return nil, fmt.Errorf("failed to decode clients: %w", err)
	}
	return clients, nil
}

// UpdateClient merges the provided fields into the client document.
// Keys may be dotted paths ("services.aiReceptionist.knowledgeBase") per the
// shallow $set merge convention used across all entities.
func (s *Store) UpdateClient(ctx context.Context, clientID string, fields map[string]interface{}) error {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	result, err := s.collection(collectionClients).
		UpdateOne(ctx, bson.M{"clientId": clientID}, bson.M{"$set": set})
	if err != nil {
		s.logger.Error(ctx, "failed to update client", err)
		return fmt.Errorf("failed to update client: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClient removes the client document.
func (s *Store) DeleteClient(ctx context.Context, clientID string) error {
	result, err := s.collection(collectionClients).DeleteOne(ctx, bson.M{"clientId": clientID})
	if err != nil {
		s.logger.Error(ctx, "failed to delete client", err)
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
