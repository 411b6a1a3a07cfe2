package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"daily-trivia-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Store collection names. Each collection maps a date key to the raw JSON
// stored for that day (a question array or a submission array).
const (
	QuestionsCollection   = "questions"
	SubmissionsCollection = "submissions"
)

// DailyStore abstracts date-keyed persistence (JSON file, Redis, Postgres,
// in-memory for tests). Load on a collection that does not exist yet returns
// an empty mapping; Save overwrites the collection wholesale.
type DailyStore interface {
	Load(ctx context.Context, collection string) (map[string]json.RawMessage, error)
	Save(ctx context.Context, collection string, data map[string]json.RawMessage) error
}

// QuestionFetcher pulls a fresh question set from the external provider.
type QuestionFetcher interface {
	FetchDaily(ctx context.Context) ([]domain.Question, error)
}

// TriviaService contains the daily-trivia use cases: the per-day question
// cache and the one-submission-per-user-per-day ledger.
//
// Load-modify-save sequences against a collection are serialized behind a
// per-collection mutex so the ledger's uniqueness invariant and the
// fetch-once invariant hold under concurrent requests.
type TriviaService struct {
	store     DailyStore
	questions QuestionFetcher
	loc       *time.Location
	now       func() time.Time

	sf            singleflight.Group
	questionsMu   sync.Mutex
	submissionsMu sync.Mutex
}

func NewTriviaService(store DailyStore, questions QuestionFetcher, loc *time.Location) *TriviaService {
	return NewTriviaServiceWithClock(store, questions, loc, time.Now)
}

// NewTriviaServiceWithClock allows deterministic date keys in tests.
func NewTriviaServiceWithClock(store DailyStore, questions QuestionFetcher, loc *time.Location, now func() time.Time) *TriviaService {
	if loc == nil {
		loc = time.UTC
	}
	return &TriviaService{store: store, questions: questions, loc: loc, now: now}
}

// Today returns the current date key in the service's configured zone.
func (s *TriviaService) Today() string {
	return domain.DateKey(s.now(), s.loc)
}

// DailyQuestions returns the question set for the current date key, unless
// the user has already submitted a score today.
func (s *TriviaService) DailyQuestions(ctx context.Context, username string) (domain.DailySet, error) {
	today := s.Today()
	played, err := s.HasSubmitted(ctx, today, username)
	if err != nil {
		return domain.DailySet{}, err
	}
	if played {
		return domain.DailySet{}, domain.ErrAlreadyPlayed
	}
	qs, err := s.QuestionsFor(ctx, today)
	if err != nil {
		return domain.DailySet{}, err
	}
	return domain.DailySet{Date: today, Questions: qs}, nil
}

// SubmitScore records username's score for the current date key.
func (s *TriviaService) SubmitScore(ctx context.Context, username string, score int) error {
	return s.Record(ctx, s.Today(), username, score)
}

// TodayScore returns the user's recorded score for the current date key, or
// nil if none exists.
func (s *TriviaService) TodayScore(ctx context.Context, username string) (*int, error) {
	return s.ScoreFor(ctx, s.Today(), username)
}

// QuestionsFor returns the question set for dateKey, fetching from the
// provider and persisting it on the first call of the day. Concurrent
// first-of-day callers collapse into a single provider fetch.
func (s *TriviaService) QuestionsFor(ctx context.Context, dateKey string) ([]domain.Question, error) {
	if qs, ok, err := s.cachedQuestions(ctx, dateKey); err != nil {
		return nil, err
	} else if ok {
		return qs, nil
	}

	result, err, _ := s.sf.Do(dateKey, func() (interface{}, error) {
		// Re-check in case another request filled the cache.
		if qs, ok, err := s.cachedQuestions(ctx, dateKey); err != nil {
			return nil, err
		} else if ok {
			return qs, nil
		}

		qs, err := s.questions.FetchDaily(ctx)
		if err != nil {
			return nil, err
		}

		s.questionsMu.Lock()
		defer s.questionsMu.Unlock()
		data, err := s.store.Load(ctx, QuestionsCollection)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(qs)
		if err != nil {
			return nil, err
		}
		data[dateKey] = raw
		if err := s.store.Save(ctx, QuestionsCollection, data); err != nil {
			return nil, err
		}
		return qs, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (s *TriviaService) cachedQuestions(ctx context.Context, dateKey string) ([]domain.Question, bool, error) {
	s.questionsMu.Lock()
	defer s.questionsMu.Unlock()
	data, err := s.store.Load(ctx, QuestionsCollection)
	if err != nil {
		return nil, false, err
	}
	raw, ok := data[dateKey]
	if !ok {
		return nil, false, nil
	}
	var qs []domain.Question
	if err := json.Unmarshal(raw, &qs); err != nil {
		return nil, false, fmt.Errorf("decode cached questions for %s: %w", dateKey, err)
	}
	if qs == nil {
		qs = []domain.Question{}
	}
	return qs, true, nil
}

// HasSubmitted reports whether username already has a submission for dateKey.
func (s *TriviaService) HasSubmitted(ctx context.Context, dateKey, username string) (bool, error) {
	data, err := s.store.Load(ctx, SubmissionsCollection)
	if err != nil {
		return false, err
	}
	_, ok := findSubmission(data[dateKey], username)
	return ok, nil
}

// Record appends a submission for (dateKey, username), rejecting duplicates.
// The first submission wins; the score is never mutated afterward.
func (s *TriviaService) Record(ctx context.Context, dateKey, username string, score int) error {
	if username == "" {
		return domain.ErrInvalidSubmission
	}

	s.submissionsMu.Lock()
	defer s.submissionsMu.Unlock()

	data, err := s.store.Load(ctx, SubmissionsCollection)
	if err != nil {
		return err
	}
	if _, ok := findSubmission(data[dateKey], username); ok {
		return domain.ErrAlreadySubmitted
	}

	entries := decodeEntries(data[dateKey])
	entry, err := json.Marshal(domain.Submission{Username: username, Score: score})
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	data[dateKey] = raw
	return s.store.Save(ctx, SubmissionsCollection, data)
}

// ScoreFor returns the first matching submission's score for (dateKey,
// username), or nil if the user never submitted that day.
func (s *TriviaService) ScoreFor(ctx context.Context, dateKey, username string) (*int, error) {
	data, err := s.store.Load(ctx, SubmissionsCollection)
	if err != nil {
		return nil, err
	}
	if sub, ok := findSubmission(data[dateKey], username); ok {
		score := sub.Score
		return &score, nil
	}
	return nil, nil
}

// findSubmission scans a stored submission array in arrival order for an
// exact, case-sensitive username match. Entries that are not a
// username/score object are skipped, not errors.
func findSubmission(raw json.RawMessage, username string) (domain.Submission, bool) {
	for _, entry := range decodeEntries(raw) {
		var sub domain.Submission
		if err := json.Unmarshal(entry, &sub); err != nil {
			continue
		}
		if sub.Username == username {
			return sub, true
		}
	}
	return domain.Submission{}, false
}

func decodeEntries(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	return entries
}
