package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"construction-cost/internal/errors"
)

func TestHTTPSourceFetch(t *testing.T) {
	var gotCacheControl string
	var gotBuster bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCacheControl = r.Header.Get("Cache-Control")
		gotBuster = r.URL.Query().Get("t") != ""
		w.Write([]byte(`{"generic": {"title": "New Zealand"}}`))
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL, 5*time.Second)
	data, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected payload bytes")
	}

	if gotCacheControl != "no-cache" {
		t.Errorf("expected no-cache header, got %q", gotCacheControl)
	}
	if !gotBuster {
		t.Error("expected cache-buster query parameter")
	}
}

func TestHTTPSourceNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL, 5*time.Second)
	_, err := src.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected an error for status 404")
	}
	if !errors.IsType(err, errors.TypeNetwork) {
		t.Errorf("expected TypeNetwork, got %v", err)
	}
}

func TestHTTPSourceContextCancel(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	src := NewHTTPSource(server.URL, 5*time.Second)
	_, err := src.Fetch(ctx)
	if err == nil {
		t.Fatal("expected an error after cancellation")
	}
}

func TestLoadComposesFetchAndParse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"auckland": {"title": "Auckland", "p_commercial_low": 1, "p_commercial_high": 2, "p_residential_low": 1, "p_residential_high": 2}}`))
	}))
	defer server.Close()

	table, err := Load(context.Background(), NewHTTPSource(server.URL, 5*time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !table.Has("auckland") {
		t.Error("expected auckland in loaded table")
	}
}
