package processor

import (
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WebhookStore defines the database operations required by WebhookProcessor
type WebhookStore interface {
	InsertCallTranscript(ctx context.Context, params store.InsertCallTranscriptParams) (store.CallTranscript, error)
	UpsertPartialTranscript(ctx context.Context, callID, clientID, text string) error
	CreateLead(ctx context.Context, params store.CreateLeadParams) (store.Lead, error)
	CreateAppointment(ctx context.Context, params store.CreateAppointmentParams) (store.Appointment, error)
}

// WebhookPayload is the envelope the voice platform posts to us.
type WebhookPayload struct {
	Message WebhookMessage `json:"message"`
}

// WebhookMessage carries one platform event; which fields are populated
// depends on Type.
type WebhookMessage struct {
	Type         string          `json:"type"`
	Call         Call            `json:"call"`
	Analysis     Analysis        `json:"analysis"`
	Artifact     Artifact        `json:"artifact"`
	FunctionCall FunctionCall    `json:"functionCall"`
	Transcript   TranscriptChunk `json:"transcript"`
}

// Call is the platform's call object.
type Call struct {
	ID        string                 `json:"id"`
	Status    string                 `json:"status"`
	CreatedAt string                 `json:"createdAt"`
	StartedAt string                 `json:"startedAt"`
	EndedAt   string                 `json:"endedAt"`
	Customer  Customer               `json:"customer"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// Customer identifies the caller.
type Customer struct {
	Number string `json:"number"`
}

// Analysis is the platform's post-call analysis block.
type Analysis struct {
	Summary        string                 `json:"summary"`
	StructuredData map[string]interface{} `json:"structuredData"`
}

// Artifact holds call artifacts such as the full transcript.
type Artifact struct {
	Transcript string `json:"transcript"`
}

// FunctionCall is a synchronous tool invocation from the assistant.
type FunctionCall struct {
	Name       string                 `json:"name"`
	Parameters map[string]interface{} `json:"parameters"`
}

// TranscriptChunk is a streaming partial transcript update.
type TranscriptChunk struct {
	Text string `json:"text"`
}

// ClientID resolves the owning client from call metadata. Calls placed
// outside the provisioning flow have no metadata and land under "unknown".
func (c Call) ClientID() string {
	if c.Metadata != nil {
		if id, ok := c.Metadata["clientId"].(string); ok && id != "" {
			return id
		}
	}
	return "unknown"
}

type WebhookProcessor struct {
	store  WebhookStore
	logger *observability.Logger
}

func New(store WebhookStore, logger *observability.Logger) WebhookProcessor {
	return WebhookProcessor{
		store:  store,
		logger: logger,
	}
}

// HandleEndOfCallReport persists the finished call's transcript and, when
// the analysis extracted caller details, a scored lead. Each platform
// delivery inserts a fresh transcript document.
func (p WebhookProcessor) HandleEndOfCallReport(ctx context.Context, msg WebhookMessage) error {
	call := msg.Call
	clientID := call.ClientID()

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "call_id", Value: call.ID},
		observability.Field{Key: "client_id", Value: clientID},
	)

	data := msg.Analysis.StructuredData

	_, err := p.store.InsertCallTranscript(ctx, store.InsertCallTranscriptParams{
		CallID:      call.ID,
		ClientID:    clientID,
		PhoneNumber: call.Customer.Number,
		Transcript:  msg.Artifact.Transcript,
		Summary:     msg.Analysis.Summary,
		LeadData:    stringValues(data),
		DurationMS:  call.durationMS(),
		Status:      call.Status,
		Timestamp:   parseTimestamp(call.CreatedAt),
	})
	if err != nil {
		p.logger.Error(ctx, "failed to save call transcript", err)
		return err
	}

	if !fieldPresent(data, "name") && !fieldPresent(data, "email") && !fieldPresent(data, "phone") {
		return nil
	}

	phone := fieldText(data, "phone")
	if phone == "" {
		phone = call.Customer.Number
	}
	notes := fieldText(data, "notes")
	if notes == "" {
		notes = msg.Analysis.Summary
	}

	_, err = p.store.CreateLead(ctx, store.CreateLeadParams{
		ClientID:    clientID,
		Name:        fieldText(data, "name"),
		Email:       fieldText(data, "email"),
		Phone:       phone,
		Company:     fieldText(data, "company"),
		Interest:    fieldText(data, "interest"),
		Budget:      fieldText(data, "budget"),
		Timeline:    fieldText(data, "timeline"),
		LeadQuality: stringField(data, "leadQuality"),
		Notes:       notes,
		CallID:      call.ID,
		Source:      "ai-receptionist",
		Score:       CalculateLeadScore(data),
		Timestamp:   time.Now(),
	})
	if err != nil {
		p.logger.Error(ctx, "failed to save lead from call", err)
		return err
	}

	p.logger.Info(ctx, "saved call report and lead data")
	return nil
}

// HandleFunctionCall dispatches a tool invocation and returns the raw
// result object. The response shape is the voice platform's contract, so
// no envelope is applied here.
func (p WebhookProcessor) HandleFunctionCall(ctx context.Context, msg WebhookMessage) map[string]interface{} {
	name := msg.FunctionCall.Name
	params := msg.FunctionCall.Parameters
	if params == nil {
		params = map[string]interface{}{}
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "function_name", Value: name},
	)
	p.logger.Info(ctx, "dispatching function call")

	switch name {
	case "check_availability":
		return checkAvailability(params)
	case "book_appointment":
		return p.bookAppointment(ctx, params, msg.Call)
	case "generate_quote":
		return generateQuote(params)
	default:
		return map[string]interface{}{
			"error": fmt.Sprintf("Unknown function: %s", name),
		}
	}
}

// HandleTranscript merges a streaming partial transcript into the call's
// document. Chunks without a call id or text are ignored.
func (p WebhookProcessor) HandleTranscript(ctx context.Context, msg WebhookMessage) error {
	call := msg.Call
	if call.ID == "" || msg.Transcript.Text == "" {
		return nil
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "call_id", Value: call.ID},
	)

	if err := p.store.UpsertPartialTranscript(ctx, call.ID, call.ClientID(), msg.Transcript.Text); err != nil {
		p.logger.Error(ctx, "failed to upsert partial transcript", err)
		return err
	}
	return nil
}

func checkAvailability(params map[string]interface{}) map[string]interface{} {
	// The message is read aloud to the caller, so an unparsable date falls
	// back to neutral wording instead of echoing the raw input.
	day := "that day"
	if parsed, err := time.Parse("2006-01-02", stringField(params, "date")); err == nil {
		day = parsed.Weekday().String()
	}

	slot := func(t string, available bool) map[string]interface{} {
		return map[string]interface{}{"time": t, "available": available}
	}

	return map[string]interface{}{
		"available": true,
		"message":   fmt.Sprintf("We have availability on %s", day),
		"slots": []map[string]interface{}{
			slot("9:00 AM", true),
			slot("10:00 AM", true),
			slot("11:00 AM", false),
			slot("2:00 PM", true),
			slot("3:00 PM", true),
			slot("4:00 PM", true),
		},
	}
}

func (p WebhookProcessor) bookAppointment(ctx context.Context, params map[string]interface{}, call Call) map[string]interface{} {
	name := stringField(params, "name")
	date := stringField(params, "date")
	timeOfDay := stringField(params, "time")

	phone := stringField(params, "phone")
	if phone == "" {
		phone = call.Customer.Number
	}
	service := stringField(params, "service")
	if service == "" {
		service = "General Consultation"
	}

	appointment, err := p.store.CreateAppointment(ctx, store.CreateAppointmentParams{
		ClientID: call.ClientID(),
		Name:     name,
		Email:    stringField(params, "email"),
		Phone:    phone,
		Date:     date,
		Time:     timeOfDay,
		Service:  service,
		Status:   "scheduled",
		CallID:   call.ID,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to book appointment", err)
		return map[string]interface{}{
			"success": false,
			"message": "Sorry, there was an error booking your appointment. Let me transfer you to a team member.",
		}
	}

	return map[string]interface{}{
		"success":     true,
		"message":     fmt.Sprintf("Appointment booked for %s on %s at %s", name, date, timeOfDay),
		"appointment": appointment,
	}
}

var quoteBaseRates = map[string]float64{
	"standard":   500,
	"premium":    1000,
	"enterprise": 2500,
}

func generateQuote(params map[string]interface{}) map[string]interface{} {
	service := stringField(params, "service")
	rate, ok := quoteBaseRates[strings.ToLower(service)]
	if !ok {
		rate = quoteBaseRates["standard"]
	}

	quantity := 1.0
	if q, ok := params["quantity"].(float64); ok && q != 0 {
		quantity = q
	}
	total := rate * quantity

	return map[string]interface{}{
		"success": true,
		"quote": map[string]interface{}{
			"service":   service,
			"quantity":  quantity,
			"unitPrice": rate,
			"total":     total,
			"validFor":  "30 days",
		},
		"message": fmt.Sprintf("Based on your requirements, the quote is $%s. This quote is valid for 30 days.", formatAmount(total)),
	}
}

// CalculateLeadScore rates extracted caller data on a 0-100 scale. Contact
// channels and buying signals each add points on top of a base of 50.
func CalculateLeadScore(data map[string]interface{}) int {
	score := 50

	if fieldPresent(data, "email") {
		score += 10
	}
	if fieldPresent(data, "phone") {
		score += 10
	}
	if fieldPresent(data, "budget") {
		score += 15
	}
	if fieldPresent(data, "timeline") {
		score += 15
	}

	switch stringField(data, "leadQuality") {
	case "hot":
		score += 20
	case "warm":
		score += 10
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func (c Call) durationMS() int64 {
	if c.EndedAt == "" || c.StartedAt == "" {
		return 0
	}
	started, err := time.Parse(time.RFC3339, c.StartedAt)
	if err != nil {
		return 0
	}
	ended, err := time.Parse(time.RFC3339, c.EndedAt)
	if err != nil {
		return 0
	}
	return ended.Sub(started).Milliseconds()
}

func parseTimestamp(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Now()
}

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// fieldPresent reports whether the key holds a usable value. Extracted
// structured data is not reliably stringly typed, so non-zero numbers and
// true booleans count as present.
func fieldPresent(m map[string]interface{}, key string) bool {
	if m == nil {
		return false
	}
	switch v := m[key].(type) {
	case string:
		return v != ""
	case float64:
		return v != 0
	case bool:
		return v
	default:
		return false
	}
}

// fieldText renders the value under key as text, formatting numeric and
// boolean values instead of dropping them.
func fieldText(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	return scalarText(m[key])
}

func stringValues(m map[string]interface{}) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s := scalarText(v); s != "" {
			out[k] = s
		}
	}
	return out
}

func scalarText(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return formatAmount(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
