package store

import (
	"context"
	"errors"
	"fmt"

	"ari-server/internal/observability"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var ErrNotFound = errors.New("not found")

const (
	collectionClients            = "clients"
	collectionLeads              = "leads"
	collectionCampaigns          = "campaigns"
	collectionCallTranscripts    = "call_transcripts"
	collectionAppointments       = "appointments"
	collectionBilling            = "billing"
	collectionReceptionistConfig = "receptionist_configs"
	collectionAcceleratorConfig  = "accelerator_configs"
	collectionAdminUsers         = "admin_users"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *observability.Logger
}

func New(ctx context.Context, uri, dbName string, logger *observability.Logger) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return &Store{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}
