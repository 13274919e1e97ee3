package sinks

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

type stubSink struct {
	id     string
	typ    string
	err    error
	calls  int
	closed bool
}

func (s *stubSink) ID() string   { return s.id }
func (s *stubSink) Type() string { return s.typ }
func (s *stubSink) Deliver(context.Context, Event) error {
	s.calls++
	return s.err
}
func (s *stubSink) Close() error {
	s.closed = true
	return nil
}

func TestFanoutDeliverAggregatesErrors(t *testing.T) {
	ok := &stubSink{id: "ok", typ: "http"}
	bad := &stubSink{id: "bad", typ: "http", err: errors.New("failed")}
	fanout := NewFanout([]Sink{ok, nil, bad})

	if fanout.Size() != 2 {
		t.Fatalf("nil sinks should be skipped, size=%d", fanout.Size())
	}
	count, err := fanout.Deliver(context.Background(), Event{})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	if ok.calls != 1 || bad.calls != 1 {
		t.Fatalf("every sink should be tried once")
	}

	if err := fanout.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !ok.closed || !bad.closed {
		t.Fatalf("closers not called")
	}
}

func TestConsoleSinkWritesText(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink("term", &buf)
	if err := sink.Deliver(context.Background(), Event{Text: "Why did...\nBecause."}); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if buf.String() != "Why did...\nBecause.\n\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	built, err := BuildAll(context.Background(), reg, append(DefaultConfigs(), SinkConfig{
		ID: "http", Type: TypeHTTP, HTTP: &HTTPSinkConfig{URL: "https://example.com"},
	}), nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(built) != 2 {
		t.Fatalf("expected 2 sinks, got %d", len(built))
	}
	if built[0].Type() != TypeConsole {
		t.Fatalf("expected console sink first, got %s", built[0].Type())
	}

	if _, err := BuildAll(context.Background(), reg, []SinkConfig{{ID: "x", Type: "carrier-pigeon"}}, nil); err == nil {
		t.Fatalf("expected error for unknown sink type")
	}
}
