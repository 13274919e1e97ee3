package jokeservice

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/Adda-Baaj/hasi/internal/domain"
)

// DemoJokeBody is the payload the cycling service yields on its success turn.
const DemoJokeBody = `{"setup":"testText","punchline":"testPunchline"}`

// CyclingService is an offline Service that rotates through a no-connection
// failure, an unavailable service and a successful joke, sleeping delay
// before each outcome.
type CyclingService struct {
	delay time.Duration
	turn  atomic.Uint64
}

// NewCyclingService builds a demo service.
func NewCyclingService(delay time.Duration) *CyclingService {
	return &CyclingService{delay: delay}
}

func (c *CyclingService) GetJoke(ctx context.Context) (string, error) {
	turn := c.turn.Add(1) - 1

	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", wrapFetchError(ctx.Err())
		case <-timer.C:
		}
	}

	switch turn % 3 {
	case 0:
		return "", &FetchError{
			Type: domain.ErrorNoConnection,
			Err:  &net.DNSError{Err: "no such host", Name: "demo.invalid", IsNotFound: true},
		}
	case 1:
		return "", &FetchError{Type: domain.ErrorOther, Err: errors.New("demo service unavailable")}
	default:
		return DemoJokeBody, nil
	}
}
