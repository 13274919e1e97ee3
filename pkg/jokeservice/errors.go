package jokeservice

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/Adda-Baaj/hasi/internal/domain"
)

// FetchError is returned by Service implementations for every failed call.
type FetchError struct {
	Type domain.ErrorType
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("joke fetch failed (%s)", e.Type)
	}
	return fmt.Sprintf("joke fetch failed (%s): %v", e.Type, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Classify maps an arbitrary transport error to an ErrorType. Host resolution
// and connection establishment failures are NoConnection; everything else,
// including cancellation and timeouts, is Other.
func Classify(err error) domain.ErrorType {
	if err == nil {
		return domain.ErrorOther
	}

	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Type
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrorOther
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return domain.ErrorNoConnection
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return domain.ErrorNoConnection
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" && !opErr.Timeout() {
		return domain.ErrorNoConnection
	}

	return domain.ErrorOther
}

func wrapFetchError(err error) *FetchError {
	return &FetchError{Type: Classify(err), Err: err}
}
