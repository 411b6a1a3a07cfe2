package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Store persists collections in the daily_records table, one row per
// (collection, date key) with the day's payload as JSONB.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Load(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	rows, err := s.pool.Query(ctx, `SELECT date_key, data FROM daily_records WHERE collection=$1`, collection)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}
	defer rows.Close()

	data := map[string]json.RawMessage{}
	for rows.Next() {
		var dateKey string
		var raw []byte
		if err := rows.Scan(&dateKey, &raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		data[dateKey] = raw
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}
	return data, nil
}

// Save replaces the collection's rows in a single transaction, matching the
// full-overwrite contract of the store.
func (s *Store) Save(ctx context.Context, collection string, data map[string]json.RawMessage) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save %s: %w", collection, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM daily_records WHERE collection=$1`, collection); err != nil {
		return fmt.Errorf("clear %s: %w", collection, err)
	}
	for dateKey, raw := range data {
		if _, err := tx.Exec(ctx,
			`INSERT INTO daily_records (collection, date_key, data) VALUES ($1, $2, $3)`,
			collection, dateKey, []byte(raw),
		); err != nil {
			return fmt.Errorf("insert %s/%s: %w", collection, dateKey, err)
		}
	}
	return tx.Commit(ctx)
}
