package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("User-Agent"); got != "hasi-test" {
			t.Errorf("unexpected user agent %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"setup":"a","punchline":"b"}`))
	}))
	defer srv.Close()

	client := NewRestyClient(2*time.Second, WithUserAgent("hasi-test"))
	resp, err := client.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode())
	}
	if resp.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %q", resp.ContentType())
	}
	if string(resp.Body()) != `{"setup":"a","punchline":"b"}` {
		t.Fatalf("unexpected body %q", resp.Body())
	}
}

func TestRestyClientGetHonoursCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewRestyClient(time.Second).Get(ctx, srv.URL); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
