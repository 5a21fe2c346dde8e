package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ari-server/internal/observability"
	"ari-server/internal/store"
	"ari-server/internal/vapi/processor"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockWebhookStore is a mock implementation of processor.WebhookStore
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

func postWebhook(t *testing.T, handler Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/vapi/webhook", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.HandleWebhook(c)
	return w
}

func TestHandleWebhook_EndOfCallReportFailuresAreAcked(t *testing.T) {
	mockStore := new(MockWebhookStore)
	handler := New(processor.New(mockStore, observability.NewLogger()), observability.NewLogger())

	mockStore.On("InsertCallTranscript", mock.Anything, mock.Anything).
		Return(store.CallTranscript{}, errors.New("write failed"))

	w := postWebhook(t, handler, map[string]interface{}{
		"message": map[string]interface{}{
			"type": "end-of-call-report",
			"call": map[string]interface{}{"id": "call-1"},
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
}

func TestHandleWebhook_FunctionCallReturnsRawResult(t *testing.T) {
	mockStore := new(MockWebhookStore)
	handler := New(processor.New(mockStore, observability.NewLogger()), observability.NewLogger())

	w := postWebhook(t, handler, map[string]interface{}{
		"message": map[string]interface{}{
			"type": "function-call",
			"functionCall": map[string]interface{}{
				"name":       "generate_quote",
				"parameters": map[string]interface{}{"service": "premium", "quantity": 2},
			},
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	// The tool result is the body itself, not wrapped in an envelope.
	assert.Equal(t, true, response["success"])
	quote, ok := response["quote"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2000), quote["total"])
}

func TestHandleWebhook_TranscriptFailureIsAnError(t *testing.T) {
	mockStore := new(MockWebhookStore)
	handler := New(processor.New(mockStore, observability.NewLogger()), observability.NewLogger())

	mockStore.On("UpsertPartialTranscript", mock.Anything, "call-1", "unknown", "Hello").
		Return(errors.New("write failed"))

	w := postWebhook(t, handler, map[string]interface{}{
		"message": map[string]interface{}{
			"type":       "transcript",
			"call":       map[string]interface{}{"id": "call-1"},
			"transcript": map[string]interface{}{"text": "Hello"},
		},
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Failed to process webhook", response["error"])
}

func TestHandleWebhook_UnknownTypeIsAcked(t *testing.T) {
	mockStore := new(MockWebhookStore)
	handler := New(processor.New(mockStore, observability.NewLogger()), observability.NewLogger())

	w := postWebhook(t, handler, map[string]interface{}{
		"message": map[string]interface{}{"type": "speech-update"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
}

func TestHandleWebhook_MalformedBody(t *testing.T) {
	mockStore := new(MockWebhookStore)
	handler := New(processor.New(mockStore, observability.NewLogger()), observability.NewLogger())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/vapi/webhook", bytes.NewReader([]byte("{not json")))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.HandleWebhook(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
