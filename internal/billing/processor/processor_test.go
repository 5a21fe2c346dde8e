package processor

import (
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBillingStore is a mock implementation of BillingStore
type MockBillingStore struct {
	mock.Mock
}

func (m *MockBillingStore) CreateBillingRecord(ctx context.Context, params store.CreateBillingRecordParams) (store.BillingRecord, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(store.BillingRecord), args.Error(1)
}

func (m *MockBillingStore) GetActiveBillingByClientID(ctx context.Context, clientID string) (store.BillingRecord, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(store.BillingRecord), args.Error(1)
}

func (m *MockBillingStore) UpdateBillingRecord(ctx context.Context, recordID string, fields map[string]interface{}) error {
	args := m.Called(ctx, recordID, fields)
	return args.Error(0)
}

func TestSaveBilling(t *testing.T) {
	ctx := context.Background()

	params := SaveBillingParams{
		Type:        "pay-per-lead",
		UpfrontFee:  1500,
		UpfrontPaid: true,
		PerLeadRate: 45,
		Notes:       "negotiated rate",
	}

	t.Run("updates the active record in place", func(t *testing.T) {
		mockStore := new(MockBillingStore)
		processor := New(mockStore, observability.NewLogger())

		mockStore.On("GetActiveBillingByClientID", mock.Anything, "client-1").
			Return(store.BillingRecord{ID: "bill-1", ClientID: "client-1"}, nil)
		mockStore.On("UpdateBillingRecord", mock.Anything, "bill-1", map[string]interface{}{
			"type":        "pay-per-lead",
			"upfrontFee":  float64(1500),
			"upfrontPaid": true,
			"perLeadRate": float64(45),
			"notes":       "negotiated rate",
		}).Return(nil)

		err := processor.SaveBilling(ctx, "client-1", params)

		assert.NoError(t, err)
		mockStore.AssertNotCalled(t, "CreateBillingRecord", mock.Anything, mock.Anything)
		mockStore.AssertExpectations(t)
	})

	t.Run("creates a record when none is active", func(t *testing.T) {
		mockStore := new(MockBillingStore)
		processor := New(mockStore, observability.NewLogger())

		mockStore.On("GetActiveBillingByClientID", mock.Anything, "client-1").
			Return(store.BillingRecord{}, store.ErrNotFound)
		mockStore.On("CreateBillingRecord", mock.Anything, store.CreateBillingRecordParams{
			ClientID:    "client-1",
			Type:        "pay-per-lead",
			UpfrontFee:  1500,
			UpfrontPaid: true,
			PerLeadRate: 45,
			Notes:       "negotiated rate",
		}).Return(store.BillingRecord{ID: "bill-1"}, nil)

		err := processor.SaveBilling(ctx, "client-1", params)

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})
}

func TestCalculateInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("bills delivered minus invoiced leads", func(t *testing.T) {
		mockStore := new(MockBillingStore)
		processor := New(mockStore, observability.NewLogger())

		mockStore.On("GetActiveBillingByClientID", mock.Anything, "client-1").
			Return(store.BillingRecord{
				ID:             "bill-1",
				PerLeadRate:    45,
				LeadsDelivered: 32,
				LeadsInvoiced:  20,
				UpfrontFee:     1500,
				UpfrontPaid:    true,
			}, nil)

		invoice, err := processor.CalculateInvoice(ctx, "client-1")

		assert.NoError(t, err)
		assert.Equal(t, 12, invoice.UnbilledLeads)
		assert.Equal(t, float64(540), invoice.Amount)
		assert.Equal(t, float64(45), invoice.PerLeadRate)
		assert.True(t, invoice.UpfrontPaid)
	})

	t.Run("missing record maps to the domain error", func(t *testing.T) {
		mockStore := new(MockBillingStore)
		processor := New(mockStore, observability.NewLogger())

		mockStore.On("GetActiveBillingByClientID", mock.Anything, "client-1").
			Return(store.BillingRecord{}, store.ErrNotFound)

		_, err := processor.CalculateInvoice(ctx, "client-1")

		assert.ErrorIs(t, err, ErrBillingNotFound)
	})
}
