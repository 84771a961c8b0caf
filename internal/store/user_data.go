package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type userDataRepo struct {
	db *sql.DB
}

func (r *userDataRepo) Load(ctx context.Context) ([]byte, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM user_data WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user data: %w", err)
	}
	return []byte(payload), nil
}

func (r *userDataRepo) Save(ctx context.Context, payload []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_data (id, payload, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("save user data: %w", err)
	}
	return nil
}

func (r *userDataRepo) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_data WHERE id = 1`); err != nil {
		return fmt.Errorf("delete user data: %w", err)
	}
	return nil
}
