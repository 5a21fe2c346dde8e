package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// CreateAdminUserParams represents parameters for creating an admin user
type CreateAdminUserParams struct {
	Email        string
	PasswordHash string
	Name         string
	Role         string
}

// CreateAdminUser inserts a platform operator account.
func (s *Store) CreateAdminUser(ctx context.Context, params CreateAdminUserParams) (AdminUser, error) {
	user := AdminUser{
		ID:           uuid.New().String(),
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Name:         params.Name,
		Role:         params.Role,
		CreatedAt:    time.Now(),
	}
	if user.Role == "" {
		user.Role = "admin"
	}

	if _, err := s.collection(collectionAdminUsers).InsertOne(ctx, user); err != nil {
		s.logger.Error(ctx, "failed to create admin user", err)
		return AdminUser{}, fmt.Errorf("failed to create admin user: %w", err)
	}
	return user, nil
}

// GetAdminUserByEmail retrieves an admin user by email.
func (s *Store) GetAdminUserByEmail(ctx context.Context, email string) (AdminUser, error) {
	var user AdminUser
	err := s.collection(collectionAdminUsers).
		FindOne(ctx, bson.M{"email": email}).
		Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return AdminUser{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get admin user", err)
		return AdminUser{}, fmt.Errorf("failed to get admin user: %w", err)
	}
	return user, nil
}
