package jokeservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/hasi/internal/domain"
	"github.com/Adda-Baaj/hasi/pkg/httpclient"
)

// DefaultJokeURL is the public endpoint used when none is configured.
const DefaultJokeURL = "https://official-joke-api.appspot.com/random_joke/"

// HTTPService issues a single GET per call against a fixed URL. It keeps no
// per-call state, so concurrent calls are safe.
type HTTPService struct {
	url    string
	client HTTPClient
}

// NewHTTPService builds a service for url using client (or a default resty client).
func NewHTTPService(url string, client HTTPClient) *HTTPService {
	if strings.TrimSpace(url) == "" {
		url = DefaultJokeURL
	}
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &HTTPService{url: url, client: client}
}

// DefaultHTTPClient returns a resty-backed client with a conservative timeout.
func DefaultHTTPClient() HTTPClient { return httpclient.NewRestyClient(15 * time.Second) }

// URL returns the endpoint the service fetches from.
func (s *HTTPService) URL() string { return s.url }

// GetJoke fetches the raw payload.
func (s *HTTPService) GetJoke(ctx context.Context) (string, error) {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return "", wrapFetchError(fmt.Errorf("get %s: %w", s.url, err))
	}

	body := resp.Body()
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return "", &FetchError{
			Type: domain.ErrorOther,
			Err:  fmt.Errorf("joke endpoint returned status %d body: %s", code, responseSnippet(body)),
		}
	}
	if strings.TrimSpace(string(body)) == "" {
		return "", &FetchError{Type: domain.ErrorOther, Err: fmt.Errorf("joke endpoint returned an empty body")}
	}

	return string(body), nil
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
