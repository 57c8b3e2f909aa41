package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectItem = `
	SELECT id, name, description, price_cents, category, image_url, options
	FROM menu_items
`

func encodeOptions(groups []OptionGroup) ([]byte, error) {
	if groups == nil {
		groups = []OptionGroup{}
	}
	return json.Marshal(groups)
}

func scanItem(row pgx.Row) (*MenuItem, error) {
	var (
		item MenuItem
		raw  []byte
	)
	if err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.PriceCents,
		&item.Category,
		&item.ImageURL,
		&raw,
	); err != nil {
		return nil, err
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &item.Options); err != nil {
			return nil, fmt.Errorf("decode options for menu item %d: %w", item.ID, err)
		}
	}
	if len(item.Options) == 0 {
		item.Options = nil
	}
	return &item, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]MenuItem, error) {
	rows, err := r.db.Query(ctx, selectItem+` ORDER BY category, name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*MenuItem, error) {
	item, err := scanItem(r.db.QueryRow(ctx, selectItem+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&n)
	return n, err
}

func (r *PostgresRepository) Create(ctx context.Context, item *MenuItem) error {
	opts, err := encodeOptions(item.Options)
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO menu_items (name, description, price_cents, category, image_url, options)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		item.Name,
		item.Description,
		item.PriceCents,
		item.Category,
		item.ImageURL,
		opts,
	).Scan(&item.ID)
}

func (r *PostgresRepository) Update(ctx context.Context, item *MenuItem) error {
	opts, err := encodeOptions(item.Options)
	if err != nil {
		return err
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE menu_items
		SET name = $1,
		    description = $2,
		    price_cents = $3,
		    category = $4,
		    image_url = $5,
		    options = $6,
		    updated_at = now()
		WHERE id = $7
	`,
		item.Name,
		item.Description,
		item.PriceCents,
		item.Category,
		item.ImageURL,
		opts,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) SetImage(ctx context.Context, id int64, url string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE menu_items
		SET image_url = $1, updated_at = now()
		WHERE id = $2
	`, url, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) Clear(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM menu_items`)
	return err
}
