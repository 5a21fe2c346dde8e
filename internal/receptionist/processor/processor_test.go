package processor

import (
	"ari-server/internal/integrations/vapiapi"
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReceptionistStore is a mock implementation of ReceptionistStore
type MockReceptionistStore struct {
	mock.Mock
}

func (m *MockReceptionistStore) GetClientByID(ctx context.Context, clientID string) (store.Client, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(store.Client), args.Error(1)
}

func (m *MockReceptionistStore) UpdateClient(ctx context.Context, clientID string, fields map[string]interface{}) error {
	args := m.Called(ctx, clientID, fields)
	return args.Error(0)
}

func (m *MockReceptionistStore) GetReceptionistConfig(ctx context.Context, clientID string) (map[string]interface{}, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func (m *MockReceptionistStore) UpsertReceptionistConfig(ctx context.Context, clientID string, cfg map[string]interface{}) error {
	args := m.Called(ctx, clientID, cfg)
	return args.Error(0)
}

// MockVapiClient is a mock implementation of VapiClient
type MockVapiClient struct {
	mock.Mock
}

func (m *MockVapiClient) CreateAssistant(ctx context.Context, params vapiapi.AssistantParams) (vapiapi.Assistant, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(vapiapi.Assistant), args.Error(1)
}

func (m *MockVapiClient) ListAvailablePhoneNumbers(ctx context.Context, areaCode string) ([]vapiapi.PhoneNumber, error) {
	args := m.Called(ctx, areaCode)
	return args.Get(0).([]vapiapi.PhoneNumber), args.Error(1)
}

func (m *MockVapiClient) PurchasePhoneNumber(ctx context.Context, assistantID, areaCode string) (vapiapi.PhoneNumber, error) {
	args := m.Called(ctx, assistantID, areaCode)
	return args.Get(0).(vapiapi.PhoneNumber), args.Error(1)
}

func newReceptionistFixture() (*MockReceptionistStore, *MockVapiClient, ReceptionistProcessor) {
	mockStore := new(MockReceptionistStore)
	mockVapi := new(MockVapiClient)
	processor := New(mockStore, mockVapi, "https://api.example.com/api/vapi/webhook", "hook-secret", observability.NewLogger())
	return mockStore, mockVapi, processor
}

func TestGetConfig_DefaultsOnFirstAccess(t *testing.T) {
	mockStore, _, processor := newReceptionistFixture()

	mockStore.On("GetReceptionistConfig", mock.Anything, "client-1").
		Return(nil, store.ErrNotFound)

	cfg, err := processor.GetConfig(context.Background(), "client-1")

	assert.NoError(t, err)
	assert.Equal(t, "client-1", cfg["clientId"])
	assert.Contains(t, cfg, "basicInfo")
	assert.Contains(t, cfg, "voice")
	assert.Contains(t, cfg, "appointmentBooking")
}

func TestActivate(t *testing.T) {
	ctx := context.Background()
	client := store.Client{ClientID: "client-1", BusinessName: "Acme Dental"}

	t.Run("provisions an assistant and records it", func(t *testing.T) {
		mockStore, mockVapi, processor := newReceptionistFixture()

		mockStore.On("GetClientByID", mock.Anything, "client-1").Return(client, nil)
		mockVapi.On("CreateAssistant", mock.Anything, mock.MatchedBy(func(p vapiapi.AssistantParams) bool {
			return p.BusinessName == "Acme Dental" &&
				p.BookingEnabled &&
				p.ServerURL == "https://api.example.com/api/vapi/webhook" &&
				p.ServerSecret == "hook-secret"
		})).Return(vapiapi.Assistant{ID: "asst-1", Name: "Acme Dental Receptionist"}, nil)
		mockStore.On("UpdateClient", mock.Anything, "client-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["services.aiReceptionist.vapiAssistantId"] == "asst-1" &&
				fields["services.aiReceptionist.setupComplete"] == true
		})).Return(nil)

		result, err := processor.Activate(ctx, ActivateParams{
			ClientID: "client-1",
			Config:   map[string]interface{}{"bookingEnabled": true},
		})

		assert.NoError(t, err)
		assert.Equal(t, "asst-1", result.Assistant.ID)
		assert.Nil(t, result.PhoneNumber)
		mockVapi.AssertNotCalled(t, "PurchasePhoneNumber", mock.Anything, mock.Anything, mock.Anything)
		mockStore.AssertExpectations(t)
	})

	t.Run("optionally purchases a number for the new assistant", func(t *testing.T) {
		mockStore, mockVapi, processor := newReceptionistFixture()

		mockStore.On("GetClientByID", mock.Anything, "client-1").Return(client, nil)
		mockVapi.On("CreateAssistant", mock.Anything, mock.Anything).
			Return(vapiapi.Assistant{ID: "asst-1"}, nil)
		mockVapi.On("PurchasePhoneNumber", mock.Anything, "asst-1", "415").
			Return(vapiapi.PhoneNumber{ID: "num-1", Number: "+14155550100"}, nil)
		mockStore.On("UpdateClient", mock.Anything, "client-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["services.aiReceptionist.phoneNumber"] == "+14155550100" &&
				fields["services.aiReceptionist.phoneNumberId"] == "num-1"
		})).Return(nil)

		result, err := processor.Activate(ctx, ActivateParams{
			ClientID:      "client-1",
			Config:        map[string]interface{}{},
			PurchasePhone: true,
			AreaCode:      "415",
		})

		assert.NoError(t, err)
		assert.NotNil(t, result.PhoneNumber)
		assert.Equal(t, "+14155550100", result.PhoneNumber.Number)
	})

	t.Run("unknown client maps to the domain error", func(t *testing.T) {
		mockStore, _, processor := newReceptionistFixture()

		mockStore.On("GetClientByID", mock.Anything, "missing").
			Return(store.Client{}, store.ErrNotFound)

		_, err := processor.Activate(ctx, ActivateParams{ClientID: "missing"})

		assert.ErrorIs(t, err, ErrClientNotFound)
	})
}

func TestPurchasePhoneNumber_RequiresAssistant(t *testing.T) {
	mockStore, mockVapi, processor := newReceptionistFixture()

	mockStore.On("GetClientByID", mock.Anything, "client-1").
		Return(store.Client{ClientID: "client-1"}, nil)

	_, err := processor.PurchasePhoneNumber(context.Background(), "client-1", "415")

	assert.ErrorIs(t, err, ErrNotConfigured)
	mockVapi.AssertNotCalled(t, "PurchasePhoneNumber", mock.Anything, mock.Anything, mock.Anything)
}
