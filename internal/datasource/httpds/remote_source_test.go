package httpds

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestRemote(url string, retries int) *Remote {
	r := NewRemote(Config{URL: url, MaxRetries: retries})
	r.sleep = func(time.Duration) {}
	return r
}

func TestOpenSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "order_id,order_timestamp\n")
	}))
	defer srv.Close()

	rc, err := newTestRemote(srv.URL, 0).Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	b, _ := io.ReadAll(rc)
	if !strings.HasPrefix(string(b), "order_id") {
		t.Fatalf("body = %q", b)
	}
}

func TestOpenRetriesServerErrors(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		if hits < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		io.WriteString(w, "ok")
	}))
	defer srv.Close()

	rc, err := newTestRemote(srv.URL, 3).Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rc.Close()
	if hits != 3 {
		t.Fatalf("hits = %d, want 3", hits)
	}
}

func TestOpenDoesNotRetryClientErrors(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := newTestRemote(srv.URL, 3).Open(context.Background()); err == nil {
		t.Fatal("expected error for 404")
	}
	if hits != 1 {
		t.Fatalf("hits = %d, want 1 (no retries)", hits)
	}
}

func TestOpenExhaustsRetries(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestRemote(srv.URL, 2).Open(context.Background())
	if err == nil {
		t.Fatal("expected retries-exhausted error")
	}
	if hits != 3 {
		t.Fatalf("hits = %d, want 3 (initial + 2 retries)", hits)
	}
}

func TestOpenCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	r := newTestRemote(srv.URL, 5)
	r.sleep = func(time.Duration) { cancel() }

	if _, err := r.Open(ctx); err == nil {
		t.Fatal("expected error after cancellation")
	}
}
