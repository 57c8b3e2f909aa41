package order

import (
	"context"
	"encoding/json"
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

func (r *PostgresRepository) Create(ctx context.Context, order *Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, order_name, total_cents, served)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, order.UserID, order.Name, order.TotalCents, order.Served).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for i, line := range order.Items {
		opts, err := json.Marshal(line.Options)
		if err != nil {
			return err
		}
		batch.Queue(`
			INSERT INTO order_lines
				(order_id, position, menu_item_id, name, quantity,
				 base_price_cents, options, notes, line_total_cents)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			order.ID,
			i,
			line.MenuItemID,
			line.Name,
			line.Quantity,
			line.BasePriceCents,
			opts,
			line.Notes,
			line.LineTotalCents,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert order lines: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `
		SELECT id, user_id, order_name, total_cents, served, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
	`)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	return r.list(ctx, `
		SELECT id, user_id, order_name, total_cents, served, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var (
		orders []Order
		ids    []int64
	)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Name, &o.TotalCents, &o.Served, &o.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = lines[orders[i].ID]
	}
	return orders, nil
}

func (r *PostgresRepository) linesFor(ctx context.Context, orderIDs []int64) (map[int64][]Line, error) {
	rows, err := r.db.Query(ctx, `
		SELECT order_id, menu_item_id, name, quantity, base_price_cents,
		       options, notes, line_total_cents
		FROM order_lines
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]Line, len(orderIDs))
	for rows.Next() {
		var (
			orderID int64
			line    Line
			raw     []byte
		)
		if err := rows.Scan(
			&orderID,
			&line.MenuItemID,
			&line.Name,
			&line.Quantity,
			&line.BasePriceCents,
			&raw,
			&line.Notes,
			&line.LineTotalCents,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal(raw, &line.Options); err != nil {
			return nil, fmt.Errorf("decode options for order %d: %w", orderID, err)
		}
		if line.Options == nil {
			line.Options = []SelectedOption{}
		}
		out[orderID] = append(out[orderID], line)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) MarkServed(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `UPDATE orders SET served = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *PostgresRepository) Clear(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM orders`)
	return err
}
