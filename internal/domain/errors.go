package domain

import "errors"

var (
	// ErrAlreadyPlayed is returned when a user requests questions after
	// submitting a score for the current date key.
	ErrAlreadyPlayed = errors.New("already played today")
	// ErrAlreadySubmitted is returned on a duplicate score submission for
	// the same user and date key.
	ErrAlreadySubmitted = errors.New("already submitted today")
	// ErrInvalidSubmission indicates a missing username or non-integer score.
	ErrInvalidSubmission = errors.New("username and numeric score are required")
	// ErrProviderUnavailable indicates the external trivia provider could not
	// be reached and no cached question set exists for the date key.
	ErrProviderUnavailable = errors.New("trivia provider unavailable")
)
