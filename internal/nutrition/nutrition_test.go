package nutrition

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL, AppID: "id", AppKey: "key", Timeout: time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestEstimateAveragesHits(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_hits": 3, "hits": [
			{"fields": {"nf_calories": 100}},
			{"fields": {"nf_calories": 200}},
			{"fields": {"nf_calories": 300}}
		]}`))
	})

	got := c.EstimateCalories(context.Background(), "fried rice")
	if got == nil {
		t.Fatal("expected an estimate")
	}
	if *got != 200 {
		t.Errorf("expected 200, got %v", *got)
	}
	if gotPath != "/v1_1/search/fried rice" {
		t.Errorf("unexpected path %q", gotPath)
	}
	for _, want := range []string{"results=0%3A5", "fields=nf_calories", "appId=id", "appKey=key"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %s", gotQuery, want)
		}
	}
}

func TestEstimateNoHits(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits": []}`))
	})
	if got := c.EstimateCalories(context.Background(), "air"); got != nil {
		t.Fatalf("expected no estimate, got %v", *got)
	}
}

func TestEstimateFailuresReturnNil(t *testing.T) {
	handlers := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusInternalServerError)
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"hits": [`))
		},
	}
	for name, h := range handlers {
		c := newTestClient(t, h)
		if got := c.EstimateCalories(context.Background(), "eggs"); got != nil {
			t.Errorf("%s: expected nil, got %v", name, *got)
		}
	}
}

func TestEstimateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.EstimateCalories(context.Background(), "eggs"); got != nil {
		t.Fatalf("expected nil on timeout, got %v", *got)
	}
}

func TestRateLimitSpacesRequests(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"hits": [{"fields": {"nf_calories": 1}}]}`))
	}))
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL, RPS: 20, Timeout: time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	start := time.Now()
	for i := 0; i < 3; i++ {
		if c.EstimateCalories(context.Background(), "x") == nil {
			t.Fatalf("call %d: expected estimate", i)
		}
	}
	// burst of one, then 50ms per request
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Errorf("expected limiter to space requests, took %v", elapsed)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 calls, got %d", calls.Load())
	}
}
