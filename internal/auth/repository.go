package auth

import (
	"context"

	"brewline/internal/apperr"
)

var (
	ErrUserNotFound = apperr.NotFound("user not found")
	ErrEmailTaken   = apperr.Validation("email already registered")
)

// UserRepository defines the data-access contract.
// Service depends ONLY on this interface.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindMaster(ctx context.Context) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id int64) error

	// AssignMaster clears the master flag on every row and sets it on id,
	// atomically.
	AssignMaster(ctx context.Context, id int64) error
}
