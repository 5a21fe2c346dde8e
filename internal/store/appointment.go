package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CreateAppointmentParams represents parameters for creating an appointment
type CreateAppointmentParams struct {
	ClientID string
	Name     string
	Email    string
	Phone    string
	Date     string
	Time     string
	Service  string
	Notes    string
	Status   string
	CallID   string
}

// CreateAppointment inserts a new appointment document.
func (s *Store) CreateAppointment(ctx context.Context, params CreateAppointmentParams) (Appointment, error) {
	now := time.Now()
	appointment := Appointment{
		ID:        uuid.New().String(),
		ClientID:  params.ClientID,
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		Date:      params.Date,
		Time:      params.Time,
		Service:   params.Service,
		Notes:     params.Notes,
		Status:    params.Status,
		CallID:    params.CallID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if appointment.Status == "" {
		appointment.Status = "scheduled"
	}

	if _, err := s.collection(collectionAppointments).InsertOne(ctx, appointment); err != nil {
		s.logger.Error(ctx, "failed to create appointment", err)
		return Appointment{}, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appointment, nil
}

// ListAppointmentsByClient retrieves appointments for a client, most recent
// appointment date first.
func (s *Store) ListAppointmentsByClient(ctx context.Context, clientID string) ([]Appointment, error) {
	filter := bson.M{}
	if clientID != "" {
		filter["clientId"] = clientID
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.collection(collectionAppointments).Find(ctx, filter, opts)
	if err != nil {
		s.logger.Error(ctx, "failed to list appointments", err)
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appointments := []Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		s.logger.Error(ctx, "failed to decode appointments", err)
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appointments, nil
}

// CountAppointmentsByClient counts appointment documents for a client.
func (s *Store) CountAppointmentsByClient(ctx context.Context, clientID string) (int64, error) {
	count, err := s.collection(collectionAppointments).CountDocuments(ctx, bson.M{"clientId": clientID})
	if err != nil {
		s.logger.Error(ctx, "failed to count appointments", err)
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

// UpdateAppointment merges the provided fields into the appointment document.
func (s *Store) UpdateAppointment(ctx context.Context, appointmentID string, fields map[string]interface{}) error {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	result, err := s.collection(collectionAppointments).
		UpdateOne(ctx, bson.M{"id": appointmentID}, bson.M{"$set": set})
	if err != nil {
		s.logger.Error(ctx, "failed to update appointment", err)
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
