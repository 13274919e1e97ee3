package app

import (
	"bufio"
	"context"
	"strings"
	"time"
)

// triggers returns the channel of "button presses". It is closed when the
// input is exhausted.
func (a *App) triggers(ctx context.Context) <-chan struct{} {
	switch {
	case a.cfg.Once:
		ch := make(chan struct{}, 1)
		ch <- struct{}{}
		close(ch)
		return ch
	case a.cfg.TriggerInterval > 0:
		return a.tickerTriggers(ctx, a.cfg.TriggerInterval)
	default:
		return a.lineTriggers(ctx)
	}
}

// lineTriggers emits one trigger per input line until EOF or a "q"/"quit" line.
func (a *App) lineTriggers(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(a.in)
		for scanner.Scan() {
			switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
			case "q", "quit", "exit":
				return
			}
			select {
			case ch <- struct{}{}:
			case <-ctx.Done():
				return
			case <-a.done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			a.log.ErrorObj("trigger input failed", "error", err)
		}
	}()
	return ch
}

// tickerTriggers fires immediately and then on every interval.
func (a *App) tickerTriggers(ctx context.Context, interval time.Duration) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case ch <- struct{}{}:
			case <-ctx.Done():
				return
			case <-a.done:
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			case <-a.done:
				return
			}
		}
	}()
	return ch
}
