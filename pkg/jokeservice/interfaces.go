package jokeservice

import (
	"context"

	"github.com/Adda-Baaj/hasi/internal/domain"
	"github.com/Adda-Baaj/hasi/pkg/httpclient"
)

// Service fetches one raw joke payload per call. Failed calls return a
// *FetchError carrying the transport classification.
type Service interface {
	GetJoke(ctx context.Context) (string, error)
}

// Decoder turns a raw payload into a Joke.
type Decoder interface {
	Decode(body string) (domain.Joke, error)
}

// DecoderFunc adapts a plain function to Decoder.
type DecoderFunc func(body string) (domain.Joke, error)

func (f DecoderFunc) Decode(body string) (domain.Joke, error) { return f(body) }

// HTTPClient aliases the shared httpclient.Client interface for clarity within the service.
type HTTPClient = httpclient.Client
