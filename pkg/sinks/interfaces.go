package sinks

import (
	"context"

	"github.com/Adda-Baaj/hasi/internal/logger"
)

// Sink renders delivered joke text somewhere (terminal, webhook, queue, topic).
type Sink interface {
	ID() string
	Type() string
	Deliver(ctx context.Context, evt Event) error
}

// Logger is the logging surface sinks rely on.
type Logger = logger.Logger
