package processor

import (
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockLeadStore is a mock implementation of LeadStore
type MockLeadStore struct {
	mock.Mock
}

func (m *MockLeadStore) CreateLead(ctx context.Context, params store.CreateLeadParams) (store.Lead, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(store.Lead), args.Error(1)
}

func (m *MockLeadStore) GetLeadByID(ctx context.Context, leadID string) (store.Lead, error) {
	args := m.Called(ctx, leadID)
	return args.Get(0).(store.Lead), args.Error(1)
}

func (m *MockLeadStore) ListLeadsByClient(ctx context.Context, clientID string) ([]store.Lead, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]store.Lead), args.Error(1)
}

func (m *MockLeadStore) UpdateLead(ctx context.Context, leadID string, fields map[string]interface{}) error {
	args := m.Called(ctx, leadID, fields)
	return args.Error(0)
}

func (m *MockLeadStore) AddLeadNote(ctx context.Context, leadID, note string) error {
	args := m.Called(ctx, leadID, note)
	return args.Error(0)
}

func (m *MockLeadStore) GetCampaignByID(ctx context.Context, campaignID string) (store.Campaign, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).(store.Campaign), args.Error(1)
}

func (m *MockLeadStore) GetClientByID(ctx context.Context, clientID string) (store.Client, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(store.Client), args.Error(1)
}

func (m *MockLeadStore) IncrementCampaignStat(ctx context.Context, campaignID, stat string) error {
	args := m.Called(ctx, campaignID, stat)
	return args.Error(0)
}

func (m *MockLeadStore) IncrementLeadsDelivered(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

type fakeSheets struct {
	spreadsheetID string
	lead          store.Lead
	called        bool
}

func (f *fakeSheets) AppendLead(ctx context.Context, spreadsheetID string, lead store.Lead) error {
	f.called = true
	f.spreadsheetID = spreadsheetID
	f.lead = lead
	return nil
}

type fakeNotifier struct {
	leadAlerts    int
	welcomeEmails int
}

func (f *fakeNotifier) SendLeadNotification(ctx context.Context, client store.Client, campaign store.Campaign, lead store.Lead) {
	f.leadAlerts++
}

func (f *fakeNotifier) SendWelcomeEmail(ctx context.Context, campaign store.Campaign, lead store.Lead) {
	f.welcomeEmails++
}

func activeCampaign() store.Campaign {
	return store.Campaign{
		ID:       "camp-1",
		ClientID: "client-1",
		Name:     "Spring Promo",
		Status:   "active",
	}
}

func TestCaptureLead(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an unknown campaign", func(t *testing.T) {
		mockStore := new(MockLeadStore)
		processor := New(mockStore, nil, nil, observability.NewLogger())

		mockStore.On("GetCampaignByID", mock.Anything, "missing").
			Return(store.Campaign{}, store.ErrNotFound)

		_, err := processor.CaptureLead(ctx, CaptureLeadParams{CampaignID: "missing"})

		assert.ErrorIs(t, err, ErrCampaignNotActive)
		mockStore.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
	})

	t.Run("rejects campaigns that are not active", func(t *testing.T) {
		for _, status := range []string{"draft", "paused", "completed"} {
			mockStore := new(MockLeadStore)
			processor := New(mockStore, nil, nil, observability.NewLogger())

			campaign := activeCampaign()
			campaign.Status = status
			mockStore.On("GetCampaignByID", mock.Anything, "camp-1").Return(campaign, nil)

			_, err := processor.CaptureLead(ctx, CaptureLeadParams{CampaignID: "camp-1"})

			assert.ErrorIs(t, err, ErrCampaignNotActive, status)
			mockStore.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
		}
	})

	t.Run("numeric form keys win over named fields", func(t *testing.T) {
		mockStore := new(MockLeadStore)
		processor := New(mockStore, nil, nil, observability.NewLogger())

		mockStore.On("GetCampaignByID", mock.Anything, "camp-1").Return(activeCampaign(), nil)
		mockStore.On("CreateLead", mock.Anything, mock.MatchedBy(func(p store.CreateLeadParams) bool {
			return p.Name == "Alice" &&
				p.Email == "alice@example.com" &&
				p.ClientID == "client-1" &&
				p.Source == "Lead Gen Campaign" &&
				p.Score == 70 &&
				p.Tracking["ip"] == "203.0.113.9"
		})).Return(store.Lead{ID: "lead-1"}, nil)
		mockStore.On("GetClientByID", mock.Anything, "client-1").Return(store.Client{ClientID: "client-1"}, nil).Maybe()
		mockStore.On("IncrementCampaignStat", mock.Anything, "camp-1", "submissions").Return(nil).Maybe()
		mockStore.On("IncrementLeadsDelivered", mock.Anything, "client-1").Return(nil).Maybe()

		lead, err := processor.CaptureLead(ctx, CaptureLeadParams{
			CampaignID: "camp-1",
			FormData: map[string]string{
				"1":     "Alice",
				"name":  "Bob",
				"email": "alice@example.com",
			},
			RequesterIP: "203.0.113.9",
		})

		assert.NoError(t, err)
		assert.Equal(t, "lead-1", lead.ID)
	})

	t.Run("anonymous submissions default the name", func(t *testing.T) {
		mockStore := new(MockLeadStore)
		processor := New(mockStore, nil, nil, observability.NewLogger())

		mockStore.On("GetCampaignByID", mock.Anything, "camp-1").Return(activeCampaign(), nil)
		mockStore.On("CreateLead", mock.Anything, mock.MatchedBy(func(p store.CreateLeadParams) bool {
			return p.Name == "Unknown" && p.Email == "" && p.Phone == ""
		})).Return(store.Lead{ID: "lead-2"}, nil)
		mockStore.On("GetClientByID", mock.Anything, "client-1").Return(store.Client{ClientID: "client-1"}, nil).Maybe()
		mockStore.On("IncrementCampaignStat", mock.Anything, "camp-1", "submissions").Return(nil).Maybe()
		mockStore.On("IncrementLeadsDelivered", mock.Anything, "client-1").Return(nil).Maybe()

		_, err := processor.CaptureLead(ctx, CaptureLeadParams{
			CampaignID: "camp-1",
			FormData:   map[string]string{"message": "call me"},
		})

		assert.NoError(t, err)
	})

	t.Run("storage failure surfaces", func(t *testing.T) {
		mockStore := new(MockLeadStore)
		processor := New(mockStore, nil, nil, observability.NewLogger())

		mockStore.On("GetCampaignByID", mock.Anything, "camp-1").Return(activeCampaign(), nil)
		mockStore.On("CreateLead", mock.Anything, mock.Anything).
			Return(store.Lead{}, errors.New("write failed"))

		_, err := processor.CaptureLead(ctx, CaptureLeadParams{CampaignID: "camp-1"})

		assert.Error(t, err)
	})
}

func TestCaptureLead_SideEffects(t *testing.T) {
	ctx := context.Background()

	mockStore := new(MockLeadStore)
	sheets := &fakeSheets{}
	notifier := &fakeNotifier{}
	processor := New(mockStore, sheets, notifier, observability.NewLogger())

	campaign := activeCampaign()
	campaign.LandingPage = map[string]interface{}{"notifyOnSubmit": true}

	client := store.Client{
		ClientID:     "client-1",
		BusinessName: "Acme Dental",
		Integrations: store.ClientIntegrations{
			SheetsEnabled:       true,
			SheetsSpreadsheetID: "sheet-1",
		},
	}

	done := make(chan struct{})
	mockStore.On("GetCampaignByID", mock.Anything, "camp-1").Return(campaign, nil)
	mockStore.On("CreateLead", mock.Anything, mock.Anything).Return(store.Lead{ID: "lead-1", ClientID: "client-1"}, nil)
	mockStore.On("GetClientByID", mock.Anything, "client-1").Return(client, nil)
	mockStore.On("IncrementCampaignStat", mock.Anything, "camp-1", "submissions").Return(nil)
	mockStore.On("IncrementLeadsDelivered", mock.Anything, "client-1").
		Run(func(args mock.Arguments) { close(done) }).
		Return(nil)

	_, err := processor.CaptureLead(ctx, CaptureLeadParams{
		CampaignID: "camp-1",
		FormData:   map[string]string{"1": "Alice"},
	})
	assert.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("side effects did not run")
	}

	assert.True(t, sheets.called)
	assert.Equal(t, "sheet-1", sheets.spreadsheetID)
	assert.Equal(t, 1, notifier.leadAlerts)
	assert.Equal(t, 1, notifier.welcomeEmails)
	mockStore.AssertExpectations(t)
}

func TestUpdateLead(t *testing.T) {
	ctx := context.Background()

	t.Run("maps missing leads to the domain error", func(t *testing.T) {
		mockStore := new(MockLeadStore)
		processor := New(mockStore, nil, nil, observability.NewLogger())

		mockStore.On("UpdateLead", mock.Anything, "missing", mock.Anything).Return(store.ErrNotFound)

		err := processor.UpdateLead(ctx, "missing", map[string]interface{}{"status": "contacted"})

		assert.ErrorIs(t, err, ErrLeadNotFound)
	})

	t.Run("passes fields through", func(t *testing.T) {
		mockStore := new(MockLeadStore)
		processor := New(mockStore, nil, nil, observability.NewLogger())

		fields := map[string]interface{}{"status": "closed-won"}
		mockStore.On("UpdateLead", mock.Anything, "lead-1", fields).Return(nil)

		err := processor.UpdateLead(ctx, "lead-1", fields)

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})
}

func TestAddNote(t *testing.T) {
	ctx := context.Background()

	mockStore := new(MockLeadStore)
	processor := New(mockStore, nil, nil, observability.NewLogger())

	mockStore.On("AddLeadNote", mock.Anything, "lead-1", "Spoke on the phone").Return(nil)

	err := processor.AddNote(ctx, "lead-1", "Spoke on the phone")

	assert.NoError(t, err)
	mockStore.AssertExpectations(t)
}
