package domain

import (
	"encoding/json"
	"time"
)

// DefaultTimezone is the zone all date keys are computed in unless
// configured otherwise.
const DefaultTimezone = "America/Chicago"

// DateKeyLayout is the calendar-date form used as the partition key for
// daily state.
const DateKeyLayout = "2006-01-02"

// DateKey returns the calendar date of t in loc, e.g. "2024-07-01".
// Every stored record is indexed by exactly one such key.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateKeyLayout)
}

// Question is a single trivia question as returned by the external
// provider. The schema (category, question text, answers, difficulty)
// belongs to the provider and is passed through to clients verbatim.
type Question = json.RawMessage

// Submission records one user's score for one date key.
type Submission struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// DailySet pairs a date key with that day's question set, as served to
// clients.
type DailySet struct {
	Date      string     `json:"date"`
	Questions []Question `json:"questions"`
}
