package memory

import (
	"context"
	"encoding/json"
	"sync"
)

// Store is an in-memory implementation of app.DailyStore, useful for tests
// and local development without a data directory.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
}

func NewStore() *Store {
	return &Store{collections: make(map[string]map[string]json.RawMessage)}
}

func (s *Store) Load(_ context.Context, collection string) (map[string]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMapping(s.collections[collection]), nil
}

func (s *Store) Save(_ context.Context, collection string, data map[string]json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = copyMapping(data)
	return nil
}

// copyMapping keeps callers from aliasing the store's internal maps.
func copyMapping(in map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(in))
	for k, v := range in {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}
