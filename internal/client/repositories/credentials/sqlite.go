package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnpath/lmscli/internal/client/models"
	"github.com/learnpath/lmscli/internal/dbx"
)

// SQLiteStore implements Store over a credentials key/value table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore returns a store bound to the given database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func get(ctx context.Context, db dbx.DBTX, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, db dbx.DBTX, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Pair(ctx context.Context) (pair models.TokenPair, err error) {
	pair.AccessToken, err = get(ctx, s.db, KeyAccessToken)
	if err != nil {
		return pair, err
	}
	pair.RefreshToken, err = get(ctx, s.db, KeyRefreshToken)
	return pair, err
}

// Save writes both halves of the pair in a single transaction so a crash
// cannot leave a mismatched access/refresh combination behind.
func (s *SQLiteStore) Save(ctx context.Context, pair models.TokenPair) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, KeyAccessToken, pair.AccessToken); err != nil {
			return err
		}
		return set(ctx, tx, KeyRefreshToken, pair.RefreshToken)
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials`)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AccessToken(ctx context.Context) (string, error) {
	return get(ctx, s.db, KeyAccessToken)
}
