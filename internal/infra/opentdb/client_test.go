package opentdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"daily-trivia-service/internal/domain"
)

func TestFetchDailyPassesQuestionsThrough(t *testing.T) {
	body := `{"response_code":0,"results":[{"category":"Science","question":"What is H2O?","correct_answer":"Water","incorrect_answers":["Salt","Sand","Steam"],"difficulty":"easy","extra_field":"kept"}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	qs, err := client.FetchDaily(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	// The provider's schema is opaque; unknown fields must survive verbatim.
	want := `{"category":"Science","question":"What is H2O?","correct_answer":"Water","incorrect_answers":["Salt","Sand","Steam"],"difficulty":"easy","extra_field":"kept"}`
	if string(qs[0]) != want {
		t.Fatalf("question not passed through verbatim:\n got %s\nwant %s", qs[0], want)
	}
}

func TestFetchDailyMissingResultsIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response_code":1}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	qs, err := client.FetchDaily(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if qs == nil || len(qs) != 0 {
		t.Fatalf("expected empty non-nil sequence, got %v", qs)
	}
}

func TestFetchDailyNon200IsProviderUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	if _, err := client.FetchDaily(context.Background()); !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestFetchDailyTimeoutIsProviderUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 20*time.Millisecond)
	if _, err := client.FetchDaily(context.Background()); !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable on timeout, got %v", err)
	}
}

func TestFetchDailyGarbageBodyIsProviderUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	if _, err := client.FetchDaily(context.Background()); !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable on bad body, got %v", err)
	}
}
