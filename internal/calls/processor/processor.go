package processor

import (
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
)

// CallStore defines the database operations required by CallProcessor
type CallStore interface {
	ListTranscriptsByClient(ctx context.Context, clientID string) ([]store.CallTranscript, error)
	GetTranscriptByCallID(ctx context.Context, callID string) (store.CallTranscript, error)
}

type CallProcessor struct {
	store  CallStore
	logger *observability.Logger
}

func New(store CallStore, logger *observability.Logger) CallProcessor {
	return CallProcessor{
		store:  store,
		logger: logger,
	}
}

// ListCalls returns the client's call history, newest first. Partial
// transcripts of in-flight calls are included.
func (p CallProcessor) ListCalls(ctx context.Context, clientID string) ([]store.CallTranscript, error) {
	calls, err := p.store.ListTranscriptsByClient(ctx, clientID)
	if err != nil {
		p.logger.Error(ctx, "failed to list calls", err)
		return nil, err
	}
	return calls, nil
}
