package vapiapi

import (
	"ari-server/internal/observability"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const baseURL = "https://api.vapi.ai"

// AssistantParams carries the tunable pieces of an assistant definition.
// Everything else (structured data schema, analysis plan, transport) is
// fixed platform configuration assembled by CreateAssistant.
type AssistantParams struct {
	BusinessName    string
	SystemPrompt    string
	GreetingMessage string
	VoiceProvider   string
	VoiceID         string
	BookingEnabled  bool
	QuoteEnabled    bool
	ServerURL       string
	ServerSecret    string
}

// Assistant is the subset of the platform's assistant object we care about.
type Assistant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// PhoneNumber describes a provisioned or purchasable number.
type PhoneNumber struct {
	ID          string `json:"id,omitempty"`
	Number      string `json:"number"`
	AssistantID string `json:"assistantId,omitempty"`
}

// Client talks to the Vapi REST API with the account's private token.
type Client struct {
	token      string
	httpClient *http.Client
	logger     *observability.Logger
}

func NewClient(privateToken string, logger *observability.Logger) *Client {
	return &Client{
		token: privateToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// CreateAssistant provisions a new voice assistant for a client.
func (c *Client) CreateAssistant(ctx context.Context, params AssistantParams) (Assistant, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "business_name", Value: params.BusinessName},
	)

	voiceProvider := params.VoiceProvider
	if voiceProvider == "" {
		voiceProvider = "openai"
	}
	voiceID := params.VoiceID
	if voiceID == "" {
		voiceID = "alloy"
	}
	greeting := params.GreetingMessage
	if greeting == "" {
		greeting = "Hello! Thank you for calling. How can I help you today?"
	}

	model := map[string]interface{}{
		"provider":     "openai",
		"model":        "gpt-4-turbo",
		"temperature":  0.7,
		"systemPrompt": params.SystemPrompt,
	}
	if functions := functionTools(params.BookingEnabled, params.QuoteEnabled); len(functions) > 0 {
		model["functions"] = functions
	}

	payload := map[string]interface{}{
		"name":  fmt.Sprintf("%s - AI Receptionist", params.BusinessName),
		"model": model,
		"voice": map[string]interface{}{
			"provider": voiceProvider,
			"voiceId":  voiceID,
		},
		"firstMessage":               greeting,
		"serverUrl":                  params.ServerURL,
		"serverUrlSecret":            params.ServerSecret,
		"endCallFunctionEnabled":     false,
		"recordingEnabled":           true,
		"hipaaEnabled":               false,
		"clientMessages":             []string{"transcript", "hang", "function-call", "speech-update", "metadata", "conversation-update"},
		"serverMessages":             []string{"end-of-call-report", "status-update", "hang", "function-call"},
		"silenceTimeoutSeconds":      30,
		"maxDurationSeconds":         1800,
		"backgroundSound":            "off",
		"backchannelingEnabled":      false,
		"backgroundDenoisingEnabled": true,
		"analysisPlan": map[string]interface{}{
			"summaryPrompt":           "Provide a concise summary of this call, highlighting key points discussed, any actions taken, and follow-up items.",
			"structuredDataPrompt":    "Extract the caller information and lead details from this conversation.",
			"structuredDataSchema":    structuredDataSchema(),
			"successEvaluationPrompt": "Was this call successful? Did we capture the lead information and address the caller's needs?",
			"successEvaluationRubric": "NumericScale",
		},
	}

	var assistant Assistant
	if err := c.do(ctx, http.MethodPost, "/assistant", payload, &assistant); err != nil {
		return Assistant{}, err
	}

	c.logger.Info(ctx, "assistant created")
	return assistant, nil
}

// UpdateAssistant applies a partial update to an existing assistant.
func (c *Client) UpdateAssistant(ctx context.Context, assistantID string, updates map[string]interface{}) (Assistant, error) {
	var assistant Assistant
	err := c.do(ctx, http.MethodPatch, "/assistant/"+assistantID, updates, &assistant)
	return assistant, err
}

// GetAssistant fetches an assistant by id.
func (c *Client) GetAssistant(ctx context.Context, assistantID string) (Assistant, error) {
	var assistant Assistant
	err := c.do(ctx, http.MethodGet, "/assistant/"+assistantID, nil, &assistant)
	return assistant, err
}

// ListAvailablePhoneNumbers returns purchasable numbers, optionally
// filtered by area code.
func (c *Client) ListAvailablePhoneNumbers(ctx context.Context, areaCode string) ([]PhoneNumber, error) {
	path := "/phone-number/available"
	if areaCode != "" {
		path += "?areaCode=" + areaCode
	}

	var numbers []PhoneNumber
	if err := c.do(ctx, http.MethodGet, path, nil, &numbers); err != nil {
		return nil, err
	}
	return numbers, nil
}

// PurchasePhoneNumber buys a number and binds it to an assistant.
func (c *Client) PurchasePhoneNumber(ctx context.Context, assistantID, areaCode string) (PhoneNumber, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "assistant_id", Value: assistantID},
	)

	payload := map[string]interface{}{
		"assistantId": assistantID,
		"name":        fmt.Sprintf("Phone for %s", assistantID),
	}
	if areaCode != "" {
		payload["areaCode"] = areaCode
	}

	var number PhoneNumber
	if err := c.do(ctx, http.MethodPost, "/phone-number/buy", payload, &number); err != nil {
		return PhoneNumber{}, err
	}

	c.logger.Info(ctx, "phone number purchased")
	return number, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonPayload)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "vapi request failed", err)
		return fmt.Errorf("vapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("vapi api error: status %d: %s", resp.StatusCode, string(raw))
		c.logger.Error(ctx, "vapi api returned error", err)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode vapi response: %w", err)
	}
	return nil
}

func structuredDataSchema() map[string]interface{} {
	prop := func(desc string) map[string]interface{} {
		return map[string]interface{}{"type": "string", "description": desc}
	}
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name":     prop("The caller's full name"),
			"email":    prop("The caller's email address"),
			"phone":    prop("The caller's phone number"),
			"company":  prop("The caller's company name"),
			"interest": prop("What service the caller is interested in"),
			"budget":   prop("The caller's budget range"),
			"timeline": prop("When the caller needs the service"),
			"leadQuality": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"hot", "warm", "cold"},
				"description": "Assessment of lead quality",
			},
			"notes": prop("Any additional important information"),
		},
	}
}

func functionTools(bookingEnabled, quoteEnabled bool) []map[string]interface{} {
	var functions []map[string]interface{}

	if bookingEnabled {
		functions = append(functions,
			map[string]interface{}{
				"name":        "check_availability",
				"description": "Check available appointment slots",
				"parameters": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"date":    map[string]interface{}{"type": "string", "description": "Date to check (YYYY-MM-DD)"},
						"service": map[string]interface{}{"type": "string", "description": "Service type needed"},
					},
					"required": []string{"date"},
				},
			},
			map[string]interface{}{
				"name":        "book_appointment",
				"description": "Book an appointment",
				"parameters": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"date":    map[string]interface{}{"type": "string", "description": "Appointment date (YYYY-MM-DD)"},
						"time":    map[string]interface{}{"type": "string", "description": "Appointment time (e.g., \"10:00 AM\")"},
						"name":    map[string]interface{}{"type": "string", "description": "Customer name"},
						"email":   map[string]interface{}{"type": "string", "description": "Customer email"},
						"phone":   map[string]interface{}{"type": "string", "description": "Customer phone number"},
						"service": map[string]interface{}{"type": "string", "description": "Service requested"},
					},
					"required": []string{"date", "time", "name"},
				},
			},
		)
	}

	if quoteEnabled {
		functions = append(functions, map[string]interface{}{
			"name":        "generate_quote",
			"description": "Generate a price quote",
			"parameters": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"service":      map[string]interface{}{"type": "string", "description": "Service type"},
					"quantity":     map[string]interface{}{"type": "number", "description": "Quantity or scope"},
					"requirements": map[string]interface{}{"type": "string", "description": "Specific requirements"},
				},
				"required": []string{"service"},
			},
		})
	}

	return functions
}
