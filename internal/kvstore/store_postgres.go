package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	id "anamnesis/pkg/domain"
)

const userKVSchema = `
CREATE TABLE IF NOT EXISTS user_kv (
    user_id    UUID        NOT NULL,
    key        TEXT        NOT NULL,
    value      TEXT        NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, key)
)`

// PostgresStore persists values in the user_kv table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the user_kv table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, userKVSchema); err != nil {
		return fmt.Errorf("ensure user_kv schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, userID id.UserID, key Key) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM user_kv WHERE user_id = $1 AND key = $2`,
		uuid.UUID(userID), string(key),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, userID id.UserID, key Key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_kv (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		uuid.UUID(userID), string(key), value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, userID id.UserID, key Key) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM user_kv WHERE user_id = $1 AND key = $2`,
		uuid.UUID(userID), string(key),
	)
	if err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// GetMany reads several keys of one user in a single query. Absent keys are
// missing from the result.
func (s *PostgresStore) GetMany(ctx context.Context, userID id.UserID, keys []Key) (map[Key]string, error) {
	out := make(map[Key]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM user_kv WHERE user_id = $1 AND key = ANY($2)`,
		uuid.UUID(userID), pq.Array(names),
	)
	if err != nil {
		return nil, fmt.Errorf("get many: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan user_kv row: %w", err)
		}
		out[Key(k)] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user_kv rows: %w", err)
	}
	return out, nil
}
