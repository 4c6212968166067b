package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"discern/internal/identity"
)

func newTestClient(t *testing.T, maxRetries int) (*Client, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	client := NewClient(Options{
		Interval:   1100 * time.Millisecond,
		UserAgent:  "discern-test/1.0",
		MaxRetries: maxRetries,
		Component:  "test",
	}).WithClock(clock.Now, clock.Sleep)
	return client, clock
}

func TestGetReturnsBody(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if got := r.Header.Get("User-Agent"); got != "discern-test/1.0" {
			t.Errorf("user agent = %q", got)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, 3)
	body, err := client.Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Fatalf("body = %q", body)
	}
	if requests != 1 {
		t.Fatalf("requests = %d, want 1", requests)
	}
}

func TestGetRetriesServiceUnavailable(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	client, clock := newTestClient(t, 3)
	body, err := client.Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(body) != "recovered" {
		t.Fatalf("body = %q", body)
	}
	if requests != 3 {
		t.Fatalf("requests = %d, want 3", requests)
	}
	// Backoff after attempts 1 and 2: 2s + 4s, on top of pacing sleeps.
	if clock.slept < 6*time.Second {
		t.Fatalf("slept %v, want at least 6s of backoff", clock.slept)
	}
}

func TestGetExhaustsRetryBudget(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, _ := newTestClient(t, 3)
	_, err := client.Get(context.Background(), srv.URL, nil)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if !errors.Is(err, identity.ErrExhausted) {
		t.Fatalf("error = %v, want ErrExhausted", err)
	}
	if identity.Retryable(err) {
		t.Fatal("exhausted error must not be retryable")
	}
	if requests != 3 {
		t.Fatalf("requests = %d, want exactly maxRetries", requests)
	}
}

func TestGetDoesNotRetryOtherStatuses(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, _ := newTestClient(t, 3)
	_, err := client.Get(context.Background(), srv.URL, nil)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !errors.Is(err, identity.ErrPermanent) {
		t.Fatalf("error = %v, want ErrPermanent", err)
	}
	if requests != 1 {
		t.Fatalf("requests = %d, want 1 (no retries)", requests)
	}
}

func TestGetEncodesQueryParameters(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, 1)
	params := url.Values{}
	params.Set("query", `release:"Dark Side"`)
	params.Set("fmt", "json")
	if _, err := client.Get(context.Background(), srv.URL, params); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotQuery.Get("query") != `release:"Dark Side"` {
		t.Fatalf("query = %q", gotQuery.Get("query"))
	}
	if gotQuery.Get("fmt") != "json" {
		t.Fatalf("fmt = %q", gotQuery.Get("fmt"))
	}
}
