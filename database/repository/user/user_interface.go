package userRepo

import (
	"context"
	"errors"

	"nhap/models"
)

// ErrUserNotFound is returned when no Users document exists for the ID.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its document ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
