package sinks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/hasi/internal/logger"
	"github.com/Adda-Baaj/hasi/pkg/httpclient"
	"github.com/go-resty/resty/v2"
)

// Headers set on every webhook delivery so receivers can dedupe and attribute jokes.
const (
	HeaderEventID = "X-Joke-Event-Id"
	HeaderSource  = "X-Joke-Source"
)

// webhookSink posts each joke to an HTTP endpoint, either as the JSON event
// or as the rendered text alone.
type webhookSink struct {
	id      string
	method  string
	url     string
	body    string
	headers map[string]string
	client  *resty.Client
	log     Logger
}

func newHTTPSink(_ context.Context, cfg SinkConfig, log Logger) (Sink, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("sink %q missing http configuration", cfg.ID)
	}
	body := cfg.HTTP.Body
	if body == "" {
		body = HTTPBodyJSON
	}

	return &webhookSink{
		id:      cfg.ID,
		method:  cfg.HTTP.Method,
		url:     cfg.HTTP.URL,
		body:    body,
		headers: cfg.HTTP.Headers,
		client:  httpclient.NewRestyHTTPClient(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second),
		log:     logger.Ensure(log),
	}, nil
}

func (w *webhookSink) ID() string   { return w.id }
func (w *webhookSink) Type() string { return TypeHTTP }

func (w *webhookSink) Deliver(ctx context.Context, evt Event) error {
	req := w.client.R().
		SetContext(ctx).
		SetHeaders(w.headers).
		SetHeader(HeaderEventID, evt.ID).
		SetHeader(HeaderSource, evt.Source)

	if w.body == HTTPBodyText {
		req.SetHeader("Content-Type", "text/plain; charset=utf-8").SetBody(evt.Text)
	} else {
		req.SetHeader("Content-Type", "application/json").SetBody(evt)
	}

	resp, err := req.Execute(w.method, w.url)
	if err != nil {
		return fmt.Errorf("deliver joke %s to %s: %w", evt.ID, w.id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook %s answered %d: %s", w.id, resp.StatusCode(), bodySnippet(resp.Body()))
	}

	w.log.DebugObj("joke delivered to webhook", "sink_http_delivery", map[string]any{
		"sink_id":  w.id,
		"event_id": evt.ID,
		"body":     w.body,
		"status":   resp.StatusCode(),
	})
	return nil
}

func bodySnippet(body []byte) string {
	if len(body) > 256 {
		body = body[:256]
	}
	return strings.TrimSpace(string(body))
}
