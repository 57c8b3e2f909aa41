package menu

import (
	"context"

	"brewline/internal/apperr"
)

var ErrItemNotFound = apperr.NotFound("menu item not found")

// Repository defines all database operations for the catalog.
type Repository interface {
	// ordered by category, then name
	List(ctx context.Context) ([]MenuItem, error)
	Get(ctx context.Context, id int64) (*MenuItem, error)
	Count(ctx context.Context) (int, error)

	Create(ctx context.Context, item *MenuItem) error
	// Update replaces every field of the stored row with item's.
	Update(ctx context.Context, item *MenuItem) error
	SetImage(ctx context.Context, id int64, url string) error
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}
