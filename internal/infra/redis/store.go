package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Store keeps each collection in a Redis hash keyed by date:
// HSET trivia:{collection} {dateKey} {rawJSON}. Entries carry no TTL; daily
// state is partitioned by date key and never expires.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Load(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	fields, err := s.client.HGetAll(ctx, s.key(collection)).Result()
	if err != nil {
		return nil, err
	}
	data := make(map[string]json.RawMessage, len(fields))
	for dateKey, raw := range fields {
		data[dateKey] = json.RawMessage(raw)
	}
	return data, nil
}

func (s *Store) Save(ctx context.Context, collection string, data map[string]json.RawMessage) error {
	key := s.key(collection)
	fields := make(map[string]interface{}, len(data))
	for dateKey, raw := range data {
		fields[dateKey] = []byte(raw)
	}

	// Delete-then-set in one pipeline so the hash mirrors the mapping exactly.
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(fields) > 0 {
		pipe.HSet(ctx, key, fields)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) key(collection string) string {
	return "trivia:" + collection
}
