package order

import (
	"context"

	"brewline/internal/apperr"
)

var ErrOrderNotFound = apperr.NotFound("order not found")

type Repository interface {
	// Create stores the order and all of its lines atomically, filling in
	// ID and CreatedAt.
	Create(ctx context.Context, order *Order) error

	// newest first
	ListAll(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)

	MarkServed(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}
