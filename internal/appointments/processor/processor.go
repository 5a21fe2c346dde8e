package processor

import (
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"errors"
)

// AppointmentStore defines the database operations required by
// AppointmentProcessor
type AppointmentStore interface {
	ListAppointmentsByClient(ctx context.Context, clientID string) ([]store.Appointment, error)
	UpdateAppointment(ctx context.Context, appointmentID string, fields map[string]interface{}) error
}

var ErrAppointmentNotFound = errors.New("appointment not found")

type AppointmentProcessor struct {
	store  AppointmentStore
	logger *observability.Logger
}

func New(store AppointmentStore, logger *observability.Logger) AppointmentProcessor {
	return AppointmentProcessor{
		store:  store,
		logger: logger,
	}
}

// ListAppointments returns the client's appointments, newest date first.
func (p AppointmentProcessor) ListAppointments(ctx context.Context, clientID string) ([]store.Appointment, error) {
	appointments, err := p.store.ListAppointmentsByClient(ctx, clientID)
	if err != nil {
		p.logger.Error(ctx, "failed to list appointments", err)
		return nil, err
	}
	return appointments, nil
}

// UpdateAppointment applies a partial update, typically a status change
// to completed or cancelled.
func (p AppointmentProcessor) UpdateAppointment(ctx context.Context, appointmentID string, fields map[string]interface{}) error {
	err := p.store.UpdateAppointment(ctx, appointmentID, fields)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAppointmentNotFound
	}
	return err
}
