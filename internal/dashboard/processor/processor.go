package processor

import (
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"errors"
	"fmt"
)

// DashboardStore defines the database operations required by
// DashboardProcessor
type DashboardStore interface {
	CountCompletedCallsByClient(ctx context.Context, clientID string) (int64, error)
	AverageCallDurationMS(ctx context.Context, clientID string) (float64, error)
	CountAppointmentsByClient(ctx context.Context, clientID string) (int64, error)
	CountLeadsByClient(ctx context.Context, clientID string) (int64, error)
	GetActiveBillingByClientID(ctx context.Context, clientID string) (store.BillingRecord, error)
}

type DashboardProcessor struct {
	store  DashboardStore
	logger *observability.Logger
}

func New(store DashboardStore, logger *observability.Logger) DashboardProcessor {
	return DashboardProcessor{
		store:  store,
		logger: logger,
	}
}

// Stats is the client dashboard summary block.
type Stats struct {
	CallsReceived      int64  `json:"callsReceived"`
	AppointmentsBooked int64  `json:"appointmentsBooked"`
	LeadsCaptured      int64  `json:"leadsCaptured"`
	ConversionRate     string `json:"conversionRate"`
	AvgCallDuration    string `json:"avgCallDuration"`
	Revenue            string `json:"revenue"`
}

// GetStats aggregates the client's activity across calls, appointments,
// leads and billing into the dashboard summary.
func (p DashboardProcessor) GetStats(ctx context.Context, clientID string) (Stats, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "client_id", Value: clientID},
	)

	calls, err := p.store.CountCompletedCallsByClient(ctx, clientID)
	if err != nil {
		p.logger.Error(ctx, "failed to count calls", err)
		return Stats{}, err
	}
	appointments, err := p.store.CountAppointmentsByClient(ctx, clientID)
	if err != nil {
		p.logger.Error(ctx, "failed to count appointments", err)
		return Stats{}, err
	}
	leads, err := p.store.CountLeadsByClient(ctx, clientID)
	if err != nil {
		p.logger.Error(ctx, "failed to count leads", err)
		return Stats{}, err
	}
	avgDurationMS, err := p.store.AverageCallDurationMS(ctx, clientID)
	if err != nil {
		p.logger.Error(ctx, "failed to compute average call duration", err)
		return Stats{}, err
	}

	revenue := 0.0
	billing, err := p.store.GetActiveBillingByClientID(ctx, clientID)
	switch {
	case err == nil:
		revenue = billing.TotalRevenue
	case errors.Is(err, store.ErrNotFound):
		// no billing configured yet
	default:
		p.logger.Error(ctx, "failed to load billing for dashboard", err)
		return Stats{}, err
	}

	return Stats{
		CallsReceived:      calls,
		AppointmentsBooked: appointments,
		LeadsCaptured:      leads,
		ConversionRate:     formatConversionRate(appointments, calls),
		AvgCallDuration:    formatDuration(avgDurationMS),
		Revenue:            fmt.Sprintf("$%.0f", revenue),
	}, nil
}

// formatConversionRate reports booked appointments as a share of calls
// received.
func formatConversionRate(appointments, calls int64) string {
	if calls == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(appointments)/float64(calls)*100)
}

func formatDuration(ms float64) string {
	totalSeconds := int64(ms / 1000)
	return fmt.Sprintf("%dm %ds", totalSeconds/60, totalSeconds%60)
}
