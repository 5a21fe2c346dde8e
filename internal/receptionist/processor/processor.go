package processor

import (
	"ari-server/internal/integrations/vapiapi"
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"errors"
	"time"
)

// ReceptionistStore defines the database operations required by
// ReceptionistProcessor
type ReceptionistStore interface {
	GetClientByID(ctx context.Context, clientID string) (store.Client, error)
	UpdateClient(ctx context.Context, clientID string, fields map[string]interface{}) error
	GetReceptionistConfig(ctx context.Context, clientID string) (map[string]interface{}, error)
	UpsertReceptionistConfig(ctx context.Context, clientID string, cfg map[string]interface{}) error
}

// VapiClient provisions assistants and phone numbers on the voice platform.
type VapiClient interface {
	CreateAssistant(ctx context.Context, params vapiapi.AssistantParams) (vapiapi.Assistant, error)
	ListAvailablePhoneNumbers(ctx context.Context, areaCode string) ([]vapiapi.PhoneNumber, error)
	PurchasePhoneNumber(ctx context.Context, assistantID, areaCode string) (vapiapi.PhoneNumber, error)
}

var (
	ErrClientNotFound = errors.New("client not found")
	ErrNotConfigured  = errors.New("receptionist not configured yet")
)

type ReceptionistProcessor struct {
	store         ReceptionistStore
	vapi          VapiClient
	webhookURL    string
	webhookSecret string
	logger        *observability.Logger
}

func New(store ReceptionistStore, vapi VapiClient, webhookURL, webhookSecret string, logger *observability.Logger) ReceptionistProcessor {
	return ReceptionistProcessor{
		store:         store,
		vapi:          vapi,
		webhookURL:    webhookURL,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// GetConfig returns the client's receptionist settings, materializing the
// default template on first access.
func (p ReceptionistProcessor) GetConfig(ctx context.Context, clientID string) (map[string]interface{}, error) {
	cfg, err := p.store.GetReceptionistConfig(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return defaultReceptionistConfig(clientID), nil
		}
		return nil, err
	}
	return cfg, nil
}

// SaveConfig replaces the client's receptionist settings.
func (p ReceptionistProcessor) SaveConfig(ctx context.Context, clientID string, cfg map[string]interface{}) (map[string]interface{}, error) {
	if err := p.store.UpsertReceptionistConfig(ctx, clientID, cfg); err != nil {
		p.logger.Error(ctx, "failed to save receptionist config", err)
		return nil, err
	}
	return p.store.GetReceptionistConfig(ctx, clientID)
}

// GetKnowledgeBase returns the client's receptionist knowledge base.
func (p ReceptionistProcessor) GetKnowledgeBase(ctx context.Context, clientID string) (map[string]interface{}, error) {
	client, err := p.store.GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	kb := client.Services.AIReceptionist.KnowledgeBase
	if kb == nil {
		kb = map[string]interface{}{
			"faqs":     []interface{}{},
			"services": []interface{}{},
			"staff":    []interface{}{},
		}
	}
	return kb, nil
}

// SaveKnowledgeBase stores the knowledge base on the client's
// receptionist service block.
func (p ReceptionistProcessor) SaveKnowledgeBase(ctx context.Context, clientID string, kb map[string]interface{}) error {
	err := p.store.UpdateClient(ctx, clientID, map[string]interface{}{
		"services.aiReceptionist.knowledgeBase": kb,
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrClientNotFound
	}
	return err
}

// ActivateParams configures assistant provisioning for a client.
type ActivateParams struct {
	ClientID      string
	Config        map[string]interface{}
	PurchasePhone bool
	AreaCode      string
}

// ActivationResult reports what was provisioned.
type ActivationResult struct {
	Assistant   vapiapi.Assistant
	PhoneNumber *vapiapi.PhoneNumber
}

// Activate provisions a voice assistant for the client, optionally buys a
// phone number for it, and records both on the client document.
func (p ReceptionistProcessor) Activate(ctx context.Context, params ActivateParams) (ActivationResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "client_id", Value: params.ClientID},
	)

	client, err := p.store.GetClientByID(ctx, params.ClientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ActivationResult{}, ErrClientNotFound
		}
		p.logger.Error(ctx, "failed to load client", err)
		return ActivationResult{}, err
	}

	cfg := params.Config
	assistant, err := p.vapi.CreateAssistant(ctx, vapiapi.AssistantParams{
		BusinessName:    client.BusinessName,
		SystemPrompt:    buildSystemPrompt(client, cfg),
		GreetingMessage: configString(cfg, "greetingMessage"),
		VoiceProvider:   configString(cfg, "voiceProvider"),
		VoiceID:         configString(cfg, "voiceId"),
		BookingEnabled:  configBool(cfg, "bookingEnabled"),
		QuoteEnabled:    configBool(cfg, "quoteEnabled"),
		ServerURL:       p.webhookURL,
		ServerSecret:    p.webhookSecret,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create assistant", err)
		return ActivationResult{}, err
	}

	result := ActivationResult{Assistant: assistant}
	if params.PurchasePhone {
		number, err := p.vapi.PurchasePhoneNumber(ctx, assistant.ID, params.AreaCode)
		if err != nil {
			p.logger.Error(ctx, "failed to purchase phone number", err)
			return ActivationResult{}, err
		}
		result.PhoneNumber = &number
	}

	fields := map[string]interface{}{
		"services.aiReceptionist.vapiAssistantId": assistant.ID,
		"services.aiReceptionist.setupComplete":   true,
		"services.aiReceptionist.config":          cfg,
		"services.aiReceptionist.configuredAt":    time.Now(),
	}
	if result.PhoneNumber != nil {
		fields["services.aiReceptionist.phoneNumber"] = result.PhoneNumber.Number
		fields["services.aiReceptionist.phoneNumberId"] = result.PhoneNumber.ID
	}
	if err := p.store.UpdateClient(ctx, params.ClientID, fields); err != nil {
		p.logger.Error(ctx, "failed to record activation on client", err)
		return ActivationResult{}, err
	}

	p.logger.Info(ctx, "receptionist activated")
	return result, nil
}

// ListPhoneNumbers returns purchasable numbers, optionally filtered by
// area code.
func (p ReceptionistProcessor) ListPhoneNumbers(ctx context.Context, areaCode string) ([]vapiapi.PhoneNumber, error) {
	numbers, err := p.vapi.ListAvailablePhoneNumbers(ctx, areaCode)
	if err != nil {
		p.logger.Error(ctx, "failed to list phone numbers", err)
		return nil, err
	}
	return numbers, nil
}

// PurchasePhoneNumber buys a number for the client's existing assistant
// and records it on the client document.
func (p ReceptionistProcessor) PurchasePhoneNumber(ctx context.Context, clientID, areaCode string) (vapiapi.PhoneNumber, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "client_id", Value: clientID},
	)

	client, err := p.store.GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return vapiapi.PhoneNumber{}, ErrClientNotFound
		}
		return vapiapi.PhoneNumber{}, err
	}

	assistantID := client.Services.AIReceptionist.VapiAssistantID
	if assistantID == "" {
		return vapiapi.PhoneNumber{}, ErrNotConfigured
	}

	number, err := p.vapi.PurchasePhoneNumber(ctx, assistantID, areaCode)
	if err != nil {
		p.logger.Error(ctx, "failed to purchase phone number", err)
		return vapiapi.PhoneNumber{}, err
	}

	err = p.store.UpdateClient(ctx, clientID, map[string]interface{}{
		"services.aiReceptionist.phoneNumber":   number.Number,
		"services.aiReceptionist.phoneNumberId": number.ID,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to record phone number on client", err)
		return vapiapi.PhoneNumber{}, err
	}

	return number, nil
}

func configString(cfg map[string]interface{}, key string) string {
	if cfg == nil {
		return ""
	}
	if v, ok := cfg[key].(string); ok {
		return v
	}
	return ""
}

func configBool(cfg map[string]interface{}, key string) bool {
	if cfg == nil {
		return false
	}
	v, _ := cfg[key].(bool)
	return v
}
