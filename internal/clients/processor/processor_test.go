package processor

import (
	"ari-server/internal/auth/credentials"
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockClientStore is a mock implementation of ClientStore
type MockClientStore struct {
	mock.Mock
}

func (m *MockClientStore) CreateClient(ctx context.Context, params store.CreateClientParams) (store.Client, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(store.Client), args.Error(1)
}

func (m *MockClientStore) GetClientByID(ctx context.Context, clientID string) (store.Client, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(store.Client), args.Error(1)
}

func (m *MockClientStore) ListClients(ctx context.Context) ([]store.Client, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.Client), args.Error(1)
}

func (m *MockClientStore) UpdateClient(ctx context.Context, clientID string, fields map[string]interface{}) error {
	args := m.Called(ctx, clientID, fields)
	return args.Error(0)
}

func (m *MockClientStore) DeleteClient(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func TestCreateClient(t *testing.T) {
	ctx := context.Background()

	mockStore := new(MockClientStore)
	processor := New(mockStore, observability.NewLogger())

	var storedHash string
	mockStore.On("CreateClient", mock.Anything, mock.MatchedBy(func(p store.CreateClientParams) bool {
		storedHash = p.PasswordHash
		return p.BusinessName == "Acme Dental" &&
			p.PasswordHash != "" &&
			p.Services.AIReceptionist.Enabled &&
			!p.Services.BookingAccelerator.Enabled
	})).Return(store.Client{ClientID: "client-1", BusinessName: "Acme Dental"}, nil)

	client, password, err := processor.CreateClient(ctx, CreateClientParams{
		BusinessName:   "Acme Dental",
		Email:          "owner@acme.com",
		AIReceptionist: true,
	})

	assert.NoError(t, err)
	assert.Equal(t, "client-1", client.ClientID)
	assert.Len(t, password, 12)

	// The store only ever sees the hash of the returned plaintext.
	assert.NotEqual(t, password, storedHash)
	assert.True(t, credentials.CheckPassword(storedHash, password))
	mockStore.AssertExpectations(t)
}

func TestUpdateClient_StripsCredentialFields(t *testing.T) {
	ctx := context.Background()

	mockStore := new(MockClientStore)
	processor := New(mockStore, observability.NewLogger())

	mockStore.On("UpdateClient", mock.Anything, "client-1", map[string]interface{}{
		"businessName": "Acme Dental Group",
	}).Return(nil)
	mockStore.On("GetClientByID", mock.Anything, "client-1").
		Return(store.Client{ClientID: "client-1", BusinessName: "Acme Dental Group"}, nil)

	client, err := processor.UpdateClient(ctx, "client-1", map[string]interface{}{
		"businessName": "Acme Dental Group",
		"clientId":     "hijacked",
		"passwordHash": "evil",
		"password":     "evil",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Acme Dental Group", client.BusinessName)
	mockStore.AssertExpectations(t)
}

func TestGetClient_NotFound(t *testing.T) {
	mockStore := new(MockClientStore)
	processor := New(mockStore, observability.NewLogger())

	mockStore.On("GetClientByID", mock.Anything, "missing").
		Return(store.Client{}, store.ErrNotFound)

	_, err := processor.GetClient(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrClientNotFound)
}
