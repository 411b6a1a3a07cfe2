package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"daily-trivia-service/internal/domain"
)

// DefaultURL requests 10 easy/medium multiple-choice questions, the shape of
// one daily round.
const DefaultURL = "https://opentdb.com/api.php?amount=10&type=multiple&difficulty=easy,medium"

const defaultTimeout = 10 * time.Second

// Client fetches question sets from the Open Trivia Database. Question
// objects are kept as raw JSON and passed through to clients unchanged.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchDaily requests one round of questions. Transport errors, timeouts,
// non-200 statuses, and undecodable bodies all surface as
// domain.ErrProviderUnavailable so callers can tell clients to retry.
func (c *Client) FetchDaily(ctx context.Context) ([]domain.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload struct {
		Results []domain.Question `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrProviderUnavailable, err)
	}
	if payload.Results == nil {
		payload.Results = []domain.Question{}
	}
	return payload.Results, nil
}
