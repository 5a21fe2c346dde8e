package processor

import (
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"errors"
)

// AcceleratorStore defines the database operations required by
// AcceleratorProcessor
type AcceleratorStore interface {
	GetAcceleratorConfig(ctx context.Context, clientID string) (map[string]interface{}, error)
	UpsertAcceleratorConfig(ctx context.Context, clientID string, cfg map[string]interface{}) error
}

type AcceleratorProcessor struct {
	store     AcceleratorStore
	webAppURI string
	logger    *observability.Logger
}

func New(store AcceleratorStore, webAppURI string, logger *observability.Logger) AcceleratorProcessor {
	return AcceleratorProcessor{
		store:     store,
		webAppURI: webAppURI,
		logger:    logger,
	}
}

// GetConfig returns the client's booking accelerator settings,
// materializing the default template on first access.
func (p AcceleratorProcessor) GetConfig(ctx context.Context, clientID string) (map[string]interface{}, error) {
	cfg, err := p.store.GetAcceleratorConfig(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return defaultAcceleratorConfig(clientID, p.webAppURI), nil
		}
		return nil, err
	}
	return cfg, nil
}

// SaveConfig replaces the client's booking accelerator settings.
func (p AcceleratorProcessor) SaveConfig(ctx context.Context, clientID string, cfg map[string]interface{}) (map[string]interface{}, error) {
	if err := p.store.UpsertAcceleratorConfig(ctx, clientID, cfg); err != nil {
		p.logger.Error(ctx, "failed to save accelerator config", err)
		return nil, err
	}
	return p.store.GetAcceleratorConfig(ctx, clientID)
}
