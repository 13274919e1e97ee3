package sinks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPSinkSuccess(t *testing.T) {
	var received Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("X-Test"); got != "1" {
			t.Errorf("missing header, got %s", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected json content type, got %s", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink, err := newHTTPSink(context.Background(), sanitizeSinkConfig(SinkConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPSinkConfig{
			URL:            srv.URL,
			Headers:        map[string]string{"X-Test": "1"},
			TimeoutSeconds: 2,
		},
	}), nil)
	if err != nil {
		t.Fatalf("newHTTPSink: %v", err)
	}

	evt := NewEvent("hasi", "Why did...\nBecause.")
	if err := sink.Deliver(context.Background(), evt); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if received.Text != evt.Text || received.ID != evt.ID {
		t.Fatalf("server received %#v", received)
	}
}

func TestHTTPSinkErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	sink, err := newHTTPSink(context.Background(), SinkConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPSinkConfig{
			URL:            srv.URL,
			Method:         http.MethodPost,
			TimeoutSeconds: 1,
		},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPSink: %v", err)
	}

	if err := sink.Deliver(context.Background(), Event{}); err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
}

func TestHTTPSinkTextBody(t *testing.T) {
	type delivery struct {
		body, contentType, eventID, source string
	}
	got := make(chan delivery, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		got <- delivery{
			body:        string(raw),
			contentType: r.Header.Get("Content-Type"),
			eventID:     r.Header.Get(HeaderEventID),
			source:      r.Header.Get(HeaderSource),
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cfg := sanitizeSinkConfig(SinkConfig{
		ID:   "chat",
		Type: TypeHTTP,
		HTTP: &HTTPSinkConfig{URL: srv.URL, Body: " TEXT "},
	})
	if err := validateSinkConfig(cfg); err != nil {
		t.Fatalf("validateSinkConfig: %v", err)
	}
	sink, err := newHTTPSink(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("newHTTPSink: %v", err)
	}

	evt := NewEvent("hasi", "Why did...\nBecause.")
	if err := sink.Deliver(context.Background(), evt); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	d := <-got
	if d.body != evt.Text {
		t.Fatalf("expected rendered text as body, got %q", d.body)
	}
	if d.contentType != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %q", d.contentType)
	}
	if d.eventID != evt.ID || d.source != "hasi" {
		t.Fatalf("event headers missing: id=%q source=%q", d.eventID, d.source)
	}
}

func TestHTTPSinkRejectsUnknownBody(t *testing.T) {
	cfg := sanitizeSinkConfig(SinkConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPSinkConfig{URL: "http://localhost/hook", Body: "xml"},
	})
	if err := validateSinkConfig(cfg); err == nil {
		t.Fatalf("expected error for unsupported body encoding")
	}
}
