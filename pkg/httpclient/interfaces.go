package httpclient

import "context"

// Response is a fully read HTTP response. The underlying connection has been
// released by the time a Response is returned.
type Response interface {
	Body() []byte
	StatusCode() int
	ContentType() string
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Get(ctx context.Context, url string) (Response, error)
}
