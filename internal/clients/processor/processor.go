package processor

import (
	"ari-server/internal/auth/credentials"
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"errors"
)

// ClientStore defines the database operations required by ClientProcessor
type ClientStore interface {
	CreateClient(ctx context.Context, params store.CreateClientParams) (store.Client, error)
	GetClientByID(ctx context.Context, clientID string) (store.Client, error)
	ListClients(ctx context.Context) ([]store.Client, error)
	UpdateClient(ctx context.Context, clientID string, fields map[string]interface{}) error
	DeleteClient(ctx context.Context, clientID string) error
}

var ErrClientNotFound = errors.New("client not found")

const generatedPasswordLength = 12

type ClientProcessor struct {
	store  ClientStore
	logger *observability.Logger
}

func New(store ClientStore, logger *observability.Logger) ClientProcessor {
	return ClientProcessor{
		store:  store,
		logger: logger,
	}
}

// CreateClientParams is an onboarding request for a new business.
type CreateClientParams struct {
	BusinessName       string
	ContactName        string
	Email              string
	Phone              string
	Industry           string
	Website            string
	Address            string
	ContactTitle       string
	ContactEmail       string
	ContactPhone       string
	Notes              string
	AIReceptionist     bool
	BookingAccelerator bool
	LeadGen            bool
}

// CreateClient onboards a client and issues login credentials. The
// plaintext password is returned exactly once; only the hash is stored.
func (p ClientProcessor) CreateClient(ctx context.Context, params CreateClientParams) (store.Client, string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "business_name", Value: params.BusinessName},
	)

	password, err := credentials.GeneratePassword(generatedPasswordLength)
	if err != nil {
		p.logger.Error(ctx, "failed to generate client password", err)
		return store.Client{}, "", err
	}
	hash, err := credentials.HashPassword(password)
	if err != nil {
		p.logger.Error(ctx, "failed to hash client password", err)
		return store.Client{}, "", err
	}

	client, err := p.store.CreateClient(ctx, store.CreateClientParams{
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
		PasswordHash: hash,
		Notes:        params.Notes,
		Services: store.ClientServices{
			AIReceptionist:     store.ReceptionistService{Enabled: params.AIReceptionist},
			BookingAccelerator: store.AcceleratorService{Enabled: params.BookingAccelerator},
			LeadGen:            store.LeadGenService{Enabled: params.LeadGen},
		},
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create client", err)
		return store.Client{}, "", err
	}

	p.logger.Info(ctx, "client created")
	return client, password, nil
}

// GetClient returns one client by id.
func (p ClientProcessor) GetClient(ctx context.Context, clientID string) (store.Client, error) {
	client, err := p.store.GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Client{}, ErrClientNotFound
		}
		return store.Client{}, err
	}
	return client, nil
}

// ListClients returns all clients, newest first.
func (p ClientProcessor) ListClients(ctx context.Context) ([]store.Client, error) {
	clients, err := p.store.ListClients(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list clients", err)
		return nil, err
	}
	return clients, nil
}

// UpdateClient merges the given fields into the client document. Login
// and password fields are not updatable through this path.
func (p ClientProcessor) UpdateClient(ctx context.Context, clientID string, fields map[string]interface{}) (store.Client, error) {
	delete(fields, "clientId")
	delete(fields, "passwordHash")
	delete(fields, "password")

	err := p.store.UpdateClient(ctx, clientID, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Client{}, ErrClientNotFound
		}
		p.logger.Error(ctx, "failed to update client", err)
		return store.Client{}, err
	}

	return p.GetClient(ctx, clientID)
}

// DeleteClient removes a client account.
func (p ClientProcessor) DeleteClient(ctx context.Context, clientID string) error {
	err := p.store.DeleteClient(ctx, clientID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrClientNotFound
	}
	return err
}

