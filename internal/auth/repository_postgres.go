package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts the user. A user created as master takes the role from
// whoever held it, in the same transaction.
func (r *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if user.IsMaster {
		if _, err := tx.Exec(ctx, `UPDATE users SET is_master = FALSE WHERE is_master`); err != nil {
			return err
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, is_master)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, user.Email, user.PasswordHash, user.IsMaster).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrEmailTaken
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, `
		SELECT id, email, password_hash, is_master, created_at
		FROM users WHERE email = $1
	`, email)
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findOne(ctx, `
		SELECT id, email, password_hash, is_master, created_at
		FROM users WHERE id = $1
	`, id)
}

func (r *PostgresUserRepository) FindMaster(ctx context.Context) (*User, error) {
	return r.findOne(ctx, `
		SELECT id, email, password_hash, is_master, created_at
		FROM users WHERE is_master
		LIMIT 1
	`)
}

func (r *PostgresUserRepository) findOne(ctx context.Context, query string, args ...any) (*User, error) {
	user := &User{}
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.IsMaster, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]*User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, email, password_hash, is_master, created_at
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsMaster, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// Delete removes the user; their orders go with them (ON DELETE CASCADE).
func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) AssignMaster(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE users SET is_master = FALSE
		WHERE is_master AND id <> $1
	`, id); err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx, `UPDATE users SET is_master = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return tx.Commit(ctx)
}
