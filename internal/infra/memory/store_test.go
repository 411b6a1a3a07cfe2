package memory

import (
	"context"
	"encoding/json"
	"testing"
)

func TestLoadMissingCollectionIsEmpty(t *testing.T) {
	store := NewStore()

	data, err := store.Load(context.Background(), "questions")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty mapping, got %d entries", len(data))
	}
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	in := map[string]json.RawMessage{"2024-07-01": json.RawMessage(`[{"username":"alice","score":5}]`)}
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

func TestLoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if err := store.Save(ctx, "questions", map[string]json.RawMessage{"2024-07-01": json.RawMessage(`[]`)}); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, _ := store.Load(ctx, "questions")
	delete(out, "2024-07-01")

	again, _ := store.Load(ctx, "questions")
	if _, ok := again["2024-07-01"]; !ok {
		t.Fatalf("mutating a loaded mapping must not affect the store")
	}
}
