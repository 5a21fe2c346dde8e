package processor

import (
	"ari-server/internal/auth/credentials"
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthStore is a mock implementation of AuthStore
type MockAuthStore struct {
	mock.Mock
}

func (m *MockAuthStore) GetAdminUserByEmail(ctx context.Context, email string) (store.AdminUser, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(store.AdminUser), args.Error(1)
}

func (m *MockAuthStore) GetClientByLoginEmail(ctx context.Context, email string) (store.Client, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(store.Client), args.Error(1)
}

func (m *MockAuthStore) GetClientByID(ctx context.Context, clientID string) (store.Client, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(store.Client), args.Error(1)
}

func (m *MockAuthStore) UpdateClient(ctx context.Context, clientID string, fields map[string]interface{}) error {
	args := m.Called(ctx, clientID, fields)
	return args.Error(0)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := credentials.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return hash
}

func TestLoginAdmin(t *testing.T) {
	ctx := context.Background()
	hash := mustHash(t, "s3cret-pass")

	t.Run("issues a token on valid credentials", func(t *testing.T) {
		mockStore := new(MockAuthStore)
		processor := New(mockStore, "https://app.example.com", observability.NewLogger())

		mockStore.On("GetAdminUserByEmail", mock.Anything, "admin@example.com").
			Return(store.AdminUser{
				ID:           "admin-1",
				Email:        "admin@example.com",
				Name:         "Ops",
				Role:         "admin",
				PasswordHash: hash,
			}, nil)

		result, err := processor.LoginAdmin(ctx, "admin@example.com", "s3cret-pass")

		assert.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "admin-1", result.User.ID)
		assert.Equal(t, "admin", result.User.Role)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		mockStore := new(MockAuthStore)
		processor := New(mockStore, "https://app.example.com", observability.NewLogger())

		mockStore.On("GetAdminUserByEmail", mock.Anything, "admin@example.com").
			Return(store.AdminUser{PasswordHash: hash}, nil)

		_, err := processor.LoginAdmin(ctx, "admin@example.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects an unknown email", func(t *testing.T) {
		mockStore := new(MockAuthStore)
		processor := New(mockStore, "https://app.example.com", observability.NewLogger())

		mockStore.On("GetAdminUserByEmail", mock.Anything, "ghost@example.com").
			Return(store.AdminUser{}, store.ErrNotFound)

		_, err := processor.LoginAdmin(ctx, "ghost@example.com", "anything")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginClient(t *testing.T) {
	ctx := context.Background()
	hash := mustHash(t, "client-pass")

	mockStore := new(MockAuthStore)
	processor := New(mockStore, "https://app.example.com", observability.NewLogger())

	mockStore.On("GetClientByLoginEmail", mock.Anything, "owner@acme.com").
		Return(store.Client{
			ClientID:     "client-1",
			LoginEmail:   "owner@acme.com",
			BusinessName: "Acme Dental",
			PasswordHash: hash,
		}, nil)

	result, err := processor.LoginClient(ctx, "owner@acme.com", "client-pass")

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "client-1", result.User.ID)
	assert.Equal(t, "client", result.User.Role)
	assert.Equal(t, "Acme Dental", result.User.BusinessName)
}

func TestRegenerateClientCredentials(t *testing.T) {
	ctx := context.Background()

	mockStore := new(MockAuthStore)
	processor := New(mockStore, "https://app.example.com", observability.NewLogger())

	var storedHash string
	mockStore.On("GetClientByID", mock.Anything, "client-1").
		Return(store.Client{ClientID: "client-1", LoginEmail: "owner@acme.com"}, nil)
	mockStore.On("UpdateClient", mock.Anything, "client-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		hash, ok := fields["passwordHash"].(string)
		storedHash = hash
		return ok && hash != ""
	})).Return(nil)

	creds, err := processor.RegenerateClientCredentials(ctx, "client-1")

	assert.NoError(t, err)
	assert.Equal(t, "owner@acme.com", creds.Email)
	assert.Len(t, creds.Password, 12)
	assert.Equal(t, "https://app.example.com/client/login", creds.LoginURL)

	// Only the hash is persisted, and it must verify the returned plaintext.
	assert.NotEqual(t, creds.Password, storedHash)
	assert.True(t, strings.HasPrefix(storedHash, "$2"))
	assert.True(t, credentials.CheckPassword(storedHash, creds.Password))
}

func TestClientPasswordHashNeverSerialized(t *testing.T) {
	client := store.Client{
		ClientID:     "client-1",
		LoginEmail:   "owner@acme.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}

	raw, err := json.Marshal(client)
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "passwordHash")
	assert.NotContains(t, string(raw), client.PasswordHash)
}
