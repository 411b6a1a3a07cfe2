package redis

import (
	"context"
	"encoding/json"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestLoadMissingCollectionIsEmpty(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	data, err := store.Load(context.Background(), "questions")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty mapping, got %d entries", len(data))
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, cleanup := newTestStore(t)
	defer cleanup()

	in := map[string]json.RawMessage{
		"2024-07-01": json.RawMessage(`[{"username":"alice","score":5}]`),
	}
	if err := store.Save(ctx, "submissions", in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := store.Load(ctx, "submissions")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(out["2024-07-01"]) != string(in["2024-07-01"]) {
		t.Fatalf("expected stored payload back, got %s", out["2024-07-01"])
	}
}

func TestSaveOverwritesStaleDateKeys(t *testing.T) {
	ctx := context.Background()
	store, cleanup := newTestStore(t)
	defer cleanup()

	if err := store.Save(ctx, "questions", map[string]json.RawMessage{"2024-07-01": json.RawMessage(`["old"]`)}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.Save(ctx, "questions", map[string]json.RawMessage{"2024-07-02": json.RawMessage(`["new"]`)}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	out, err := store.Load(ctx, "questions")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := out["2024-07-01"]; ok {
		t.Fatalf("expected stale date key removed by full overwrite")
	}
	if string(out["2024-07-02"]) != `["new"]` {
		t.Fatalf("unexpected payload: %s", out["2024-07-02"])
	}
}

func newTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client), mr.Close
}
