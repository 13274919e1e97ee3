package sinks

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// consoleSink writes each text followed by a blank line to a terminal stream.
type consoleSink struct {
	id string
	mu sync.Mutex
	w  io.Writer
}

func newConsoleSink(_ context.Context, cfg SinkConfig, _ Logger) (Sink, error) {
	var w io.Writer = os.Stdout
	if cfg.Console != nil && cfg.Console.Stream == consoleStderr {
		w = os.Stderr
	}
	return &consoleSink{id: cfg.ID, w: w}, nil
}

// NewConsoleSink writes to w; used by callers that own the terminal.
func NewConsoleSink(id string, w io.Writer) Sink {
	return &consoleSink{id: id, w: w}
}

func (c *consoleSink) ID() string   { return c.id }
func (c *consoleSink) Type() string { return TypeConsole }

func (c *consoleSink) Deliver(_ context.Context, evt Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintf(c.w, "%s\n\n", evt.Text); err != nil {
		return fmt.Errorf("write console: %w", err)
	}
	return nil
}
