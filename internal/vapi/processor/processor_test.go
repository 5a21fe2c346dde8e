package processor

import (
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockWebhookStore is a mock implementation of WebhookStore
type MockWebhookStore struct {
	mock.Mock
}

func (m *MockWebhookStore) InsertCallTranscript(ctx context.Context, params store.InsertCallTranscriptParams) (store.CallTranscript, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(store.CallTranscript), args.Error(1)
}

func (m *MockWebhookStore) UpsertPartialTranscript(ctx context.Context, callID, clientID, text string) error {
	args := m.Called(ctx, callID, clientID, text)
	return args.Error(0)
}

func (m *MockWebhookStore) CreateLead(ctx context.Context, params store.CreateLeadParams) (store.Lead, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(store.Lead), args.Error(1)
}

func (m *MockWebhookStore) CreateAppointment(ctx context.Context, params store.CreateAppointmentParams) (store.Appointment, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(store.Appointment), args.Error(1)
}

func newTestProcessor(t *testing.T) (WebhookProcessor, *MockWebhookStore) {
	t.Helper()
	mockStore := new(MockWebhookStore)
	return New(mockStore, observability.NewLogger()), mockStore
}

func TestCalculateLeadScore(t *testing.T) {
	tests := []struct {
		name     string
		data     map[string]interface{}
		expected int
	}{
		{
			name:     "no data scores the base",
			data:     map[string]interface{}{},
			expected: 50,
		},
		{
			name:     "nil data scores the base",
			data:     nil,
			expected: 50,
		},
		{
			name:     "email adds ten",
			data:     map[string]interface{}{"email": "jo@example.com"},
			expected: 60,
		},
		{
			name:     "email and phone add twenty",
			data:     map[string]interface{}{"email": "jo@example.com", "phone": "+15550001111"},
			expected: 70,
		},
		{
			name:     "budget and timeline add thirty",
			data:     map[string]interface{}{"budget": "$5k", "timeline": "next month"},
			expected: 80,
		},
		{
			name:     "warm quality adds ten",
			data:     map[string]interface{}{"leadQuality": "warm"},
			expected: 60,
		},
		{
			name:     "hot quality adds twenty",
			data:     map[string]interface{}{"leadQuality": "hot"},
			expected: 70,
		},
		{
			name:     "unknown quality adds nothing",
			data:     map[string]interface{}{"leadQuality": "cold"},
			expected: 50,
		},
		{
			name: "everything clamps at one hundred",
			data: map[string]interface{}{
				"email":       "jo@example.com",
				"phone":       "+15550001111",
				"budget":      "$5k",
				"timeline":    "asap",
				"leadQuality": "hot",
			},
			expected: 100,
		},
		{
			name:     "numeric budget and timeline count as present",
			data:     map[string]interface{}{"budget": float64(1), "timeline": float64(1)},
			expected: 80,
		},
		{
			name:     "boolean email counts when true",
			data:     map[string]interface{}{"email": true},
			expected: 60,
		},
		{
			name:     "zero and false values add nothing",
			data:     map[string]interface{}{"email": float64(0), "phone": false, "budget": nil},
			expected: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateLeadScore(tt.data))
		})
	}
}

func TestHandleFunctionCall_GenerateQuote(t *testing.T) {
	processor, _ := newTestProcessor(t)
	ctx := context.Background()

	t.Run("premium service times quantity", func(t *testing.T) {
		result := processor.HandleFunctionCall(ctx, WebhookMessage{
			Type: "function-call",
			FunctionCall: FunctionCall{
				Name:       "generate_quote",
				Parameters: map[string]interface{}{"service": "Premium", "quantity": float64(3)},
			},
		})

		assert.Equal(t, true, result["success"])
		quote := result["quote"].(map[string]interface{})
		assert.Equal(t, float64(1000), quote["unitPrice"])
		assert.Equal(t, float64(3000), quote["total"])
		assert.Equal(t, "30 days", quote["validFor"])
		assert.Equal(t, "Based on your requirements, the quote is $3000. This quote is valid for 30 days.", result["message"])
	})

	t.Run("unknown service falls back to standard", func(t *testing.T) {
		result := processor.HandleFunctionCall(ctx, WebhookMessage{
			FunctionCall: FunctionCall{
				Name:       "generate_quote",
				Parameters: map[string]interface{}{"service": "platinum"},
			},
		})

		quote := result["quote"].(map[string]interface{})
		assert.Equal(t, float64(500), quote["unitPrice"])
		assert.Equal(t, float64(1), quote["quantity"])
		assert.Equal(t, float64(500), quote["total"])
	})

	t.Run("missing parameters quote one standard unit", func(t *testing.T) {
		result := processor.HandleFunctionCall(ctx, WebhookMessage{
			FunctionCall: FunctionCall{Name: "generate_quote"},
		})

		quote := result["quote"].(map[string]interface{})
		assert.Equal(t, float64(500), quote["total"])
	})
}

func TestHandleFunctionCall_CheckAvailability(t *testing.T) {
	processor, _ := newTestProcessor(t)
	ctx := context.Background()

	t.Run("names the weekday for a valid date", func(t *testing.T) {
		result := processor.HandleFunctionCall(ctx, WebhookMessage{
			FunctionCall: FunctionCall{
				Name:       "check_availability",
				Parameters: map[string]interface{}{"date": "2026-03-02"},
			},
		})

		assert.Equal(t, true, result["available"])
		assert.Equal(t, "We have availability on Monday", result["message"])

		slots := result["slots"].([]map[string]interface{})
		assert.Len(t, slots, 6)
		assert.Equal(t, "11:00 AM", slots[2]["time"])
		assert.Equal(t, false, slots[2]["available"])
	})

	t.Run("unparsable date gets neutral wording", func(t *testing.T) {
		result := processor.HandleFunctionCall(ctx, WebhookMessage{
			FunctionCall: FunctionCall{
				Name:       "check_availability",
				Parameters: map[string]interface{}{"date": "tomorrow"},
			},
		})

		assert.Equal(t, "We have availability on that day", result["message"])
	})
}

func TestHandleFunctionCall_BookAppointment(t *testing.T) {
	ctx := context.Background()
	call := Call{
		ID:       "call-1",
		Customer: Customer{Number: "+15550002222"},
		Metadata: map[string]interface{}{"clientId": "client-1"},
	}

	t.Run("books with defaults from the call", func(t *testing.T) {
		processor, mockStore := newTestProcessor(t)

		mockStore.On("CreateAppointment", mock.Anything, store.CreateAppointmentParams{
			ClientID: "client-1",
			Name:     "Jo Smith",
			Phone:    "+15550002222",
			Date:     "2026-03-02",
			Time:     "2:00 PM",
			Service:  "General Consultation",
			Status:   "scheduled",
			CallID:   "call-1",
		}).Return(store.Appointment{ID: "appt-1"}, nil)

		result := processor.HandleFunctionCall(ctx, WebhookMessage{
			Call: call,
			FunctionCall: FunctionCall{
				Name: "book_appointment",
				Parameters: map[string]interface{}{
					"name": "Jo Smith",
					"date": "2026-03-02",
					"time": "2:00 PM",
				},
			},
		})

		assert.Equal(t, true, result["success"])
		assert.Equal(t, "Appointment booked for Jo Smith on 2026-03-02 at 2:00 PM", result["message"])
		mockStore.AssertExpectations(t)
	})

	t.Run("storage failure tells the caller to hold", func(t *testing.T) {
		processor, mockStore := newTestProcessor(t)

		mockStore.On("CreateAppointment", mock.Anything, mock.Anything).
			Return(store.Appointment{}, errors.New("write failed"))

		result := processor.HandleFunctionCall(ctx, WebhookMessage{
			Call:         call,
			FunctionCall: FunctionCall{Name: "book_appointment"},
		})

		assert.Equal(t, false, result["success"])
		assert.Equal(t, "Sorry, there was an error booking your appointment. Let me transfer you to a team member.", result["message"])
	})
}

func TestHandleFunctionCall_UnknownFunction(t *testing.T) {
	processor, _ := newTestProcessor(t)

	result := processor.HandleFunctionCall(context.Background(), WebhookMessage{
		FunctionCall: FunctionCall{Name: "transfer_funds"},
	})

	assert.Equal(t, "Unknown function: transfer_funds", result["error"])
}

func TestHandleEndOfCallReport(t *testing.T) {
	ctx := context.Background()

	t.Run("saves transcript and scored lead", func(t *testing.T) {
		processor, mockStore := newTestProcessor(t)

		mockStore.On("InsertCallTranscript", mock.Anything, mock.MatchedBy(func(p store.InsertCallTranscriptParams) bool {
			return p.CallID == "call-1" && p.ClientID == "client-1" && p.DurationMS == 120000
		})).Return(store.CallTranscript{ID: "t-1"}, nil)

		mockStore.On("CreateLead", mock.Anything, mock.MatchedBy(func(p store.CreateLeadParams) bool {
			return p.Name == "Jo Smith" &&
				p.Phone == "+15550002222" && // falls back to the caller's number
				p.Source == "ai-receptionist" &&
				p.Score == 65 &&
				p.Notes == "Caller asked about premium plans"
		})).Return(store.Lead{ID: "lead-1"}, nil)

		err := processor.HandleEndOfCallReport(ctx, WebhookMessage{
			Type: "end-of-call-report",
			Call: Call{
				ID:        "call-1",
				Status:    "ended",
				StartedAt: "2026-03-02T10:00:00Z",
				EndedAt:   "2026-03-02T10:02:00Z",
				Customer:  Customer{Number: "+15550002222"},
				Metadata:  map[string]interface{}{"clientId": "client-1"},
			},
			Analysis: Analysis{
				Summary: "Caller asked about premium plans",
				StructuredData: map[string]interface{}{
					"name":   "Jo Smith",
					"budget": "$5k",
				},
			},
			Artifact: Artifact{Transcript: "full transcript"},
		})

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("numeric contact details still create a lead", func(t *testing.T) {
		processor, mockStore := newTestProcessor(t)

		mockStore.On("InsertCallTranscript", mock.Anything, mock.Anything).
			Return(store.CallTranscript{ID: "t-1"}, nil)

		mockStore.On("CreateLead", mock.Anything, mock.MatchedBy(func(p store.CreateLeadParams) bool {
			return p.Phone == "15550003333" && p.Budget == "5000" && p.Score == 75
		})).Return(store.Lead{ID: "lead-2"}, nil)

		err := processor.HandleEndOfCallReport(ctx, WebhookMessage{
			Call: Call{ID: "call-5", Metadata: map[string]interface{}{"clientId": "client-1"}},
			Analysis: Analysis{
				StructuredData: map[string]interface{}{
					"phone":  float64(15550003333),
					"budget": float64(5000),
				},
			},
		})

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("no contact details means no lead", func(t *testing.T) {
		processor, mockStore := newTestProcessor(t)

		mockStore.On("InsertCallTranscript", mock.Anything, mock.Anything).
			Return(store.CallTranscript{ID: "t-1"}, nil)

		err := processor.HandleEndOfCallReport(ctx, WebhookMessage{
			Call: Call{ID: "call-2"},
			Analysis: Analysis{
				StructuredData: map[string]interface{}{"company": "Acme"},
			},
		})

		assert.NoError(t, err)
		mockStore.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
	})

	t.Run("missing metadata lands under unknown", func(t *testing.T) {
		processor, mockStore := newTestProcessor(t)

		mockStore.On("InsertCallTranscript", mock.Anything, mock.MatchedBy(func(p store.InsertCallTranscriptParams) bool {
			return p.ClientID == "unknown"
		})).Return(store.CallTranscript{}, nil)

		err := processor.HandleEndOfCallReport(ctx, WebhookMessage{Call: Call{ID: "call-3"}})

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("transcript write failure surfaces", func(t *testing.T) {
		processor, mockStore := newTestProcessor(t)

		mockStore.On("InsertCallTranscript", mock.Anything, mock.Anything).
			Return(store.CallTranscript{}, errors.New("write failed"))

		err := processor.HandleEndOfCallReport(ctx, WebhookMessage{Call: Call{ID: "call-4"}})

		assert.Error(t, err)
		mockStore.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
	})
}

func TestHandleTranscript(t *testing.T) {
	ctx := context.Background()

	t.Run("merges a partial chunk", func(t *testing.T) {
		processor, mockStore := newTestProcessor(t)

		mockStore.On("UpsertPartialTranscript", mock.Anything, "call-1", "client-1", "Hello there").
			Return(nil)

		err := processor.HandleTranscript(ctx, WebhookMessage{
			Call:       Call{ID: "call-1", Metadata: map[string]interface{}{"clientId": "client-1"}},
			Transcript: TranscriptChunk{Text: "Hello there"},
		})

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("ignores chunks without a call id", func(t *testing.T) {
		processor, mockStore := newTestProcessor(t)

		err := processor.HandleTranscript(ctx, WebhookMessage{
			Transcript: TranscriptChunk{Text: "Hello there"},
		})

		assert.NoError(t, err)
		mockStore.AssertNotCalled(t, "UpsertPartialTranscript", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ignores empty chunks", func(t *testing.T) {
		processor, mockStore := newTestProcessor(t)

		err := processor.HandleTranscript(ctx, WebhookMessage{Call: Call{ID: "call-1"}})

		assert.NoError(t, err)
		mockStore.AssertNotCalled(t, "UpsertPartialTranscript", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
