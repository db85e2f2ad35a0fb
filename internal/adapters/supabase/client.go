package supabase

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Client reads hackathons, gigs and developers from a Supabase (PostgREST)
// project. It implements HackathonRepository, GigRepository and
// DeveloperRepository.
//
// Requests are rate limited and transient failures are retried with backoff.
// The client is safe for concurrent use.
type Client struct {
	session *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
}

func NewClient(baseURL, apiKey string, rps int) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("supabase url is empty")
	}
	if apiKey == "" {
		return nil, errors.New("supabase anon key is empty")
	}
	if rps <= 0 {
		rps = 5
	}

	return &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}
