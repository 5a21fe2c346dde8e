package processor

import (
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"errors"
)

// BillingStore defines the database operations required by BillingProcessor
type BillingStore interface {
	CreateBillingRecord(ctx context.Context, params store.CreateBillingRecordParams) (store.BillingRecord, error)
	GetActiveBillingByClientID(ctx context.Context, clientID string) (store.BillingRecord, error)
	UpdateBillingRecord(ctx context.Context, recordID string, fields map[string]interface{}) error
}

var ErrBillingNotFound = errors.New("no billing record found")

type BillingProcessor struct {
	store  BillingStore
	logger *observability.Logger
}

func New(store BillingStore, logger *observability.Logger) BillingProcessor {
	return BillingProcessor{
		store:  store,
		logger: logger,
	}
}

// GetBilling returns the client's active billing record.
func (p BillingProcessor) GetBilling(ctx context.Context, clientID string) (store.BillingRecord, error) {
	record, err := p.store.GetActiveBillingByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.BillingRecord{}, ErrBillingNotFound
		}
		p.logger.Error(ctx, "failed to load billing record", err)
		return store.BillingRecord{}, err
	}
	return record, nil
}

// SaveBillingParams carries the admin-editable billing terms.
type SaveBillingParams struct {
	Type        string
	UpfrontFee  float64
	UpfrontPaid bool
	PerLeadRate float64
	Notes       string
}

// SaveBilling updates the client's active billing record in place, or
// creates one when none exists. This keeps at most one active record per
// client.
func (p BillingProcessor) SaveBilling(ctx context.Context, clientID string, params SaveBillingParams) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "client_id", Value: clientID},
	)

	existing, err := p.store.GetActiveBillingByClientID(ctx, clientID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to check existing billing record", err)
		return err
	}

	if err == nil {
		fields := map[string]interface{}{
			"type":        params.Type,
			"upfrontFee":  params.UpfrontFee,
			"upfrontPaid": params.UpfrontPaid,
			"perLeadRate": params.PerLeadRate,
			"notes":       params.Notes,
		}
		if err := p.store.UpdateBillingRecord(ctx, existing.ID, fields); err != nil {
			p.logger.Error(ctx, "failed to update billing record", err)
			return err
		}
		p.logger.Info(ctx, "billing record updated")
		return nil
	}

	if _, err := p.store.CreateBillingRecord(ctx, store.CreateBillingRecordParams{
		ClientID:    clientID,
		Type:        params.Type,
		UpfrontFee:  params.UpfrontFee,
		UpfrontPaid: params.UpfrontPaid,
		PerLeadRate: params.PerLeadRate,
		Notes:       params.Notes,
	}); err != nil {
		p.logger.Error(ctx, "failed to create billing record", err)
		return err
	}

	p.logger.Info(ctx, "billing record created")
	return nil
}

// Invoice is the unbilled balance of a client's active billing record.
type Invoice struct {
	UnbilledLeads int     `json:"unbilledLeads"`
	PerLeadRate   float64 `json:"perLeadRate"`
	Amount        float64 `json:"amount"`
	UpfrontFee    float64 `json:"upfrontFee"`
	UpfrontPaid   bool    `json:"upfrontPaid"`
}

// CalculateInvoice computes what the client currently owes for delivered
// but uninvoiced leads.
func (p BillingProcessor) CalculateInvoice(ctx context.Context, clientID string) (Invoice, error) {
	record, err := p.GetBilling(ctx, clientID)
	if err != nil {
		return Invoice{}, err
	}

	unbilled := record.LeadsDelivered - record.LeadsInvoiced
	return Invoice{
		UnbilledLeads: unbilled,
		PerLeadRate:   record.PerLeadRate,
		Amount:        float64(unbilled) * record.PerLeadRate,
		UpfrontFee:    record.UpfrontFee,
		UpfrontPaid:   record.UpfrontPaid,
	}, nil
}
