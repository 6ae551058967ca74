package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestProbe_Head(t *testing.T) {
	var methods atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods.Add(1)
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		if got := r.Header.Get("User-Agent"); got != userAgent {
			t.Errorf("unexpected user agent %q", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	res, err := NewProber().Probe(context.Background(), server.URL+"/docs/intro")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if methods.Load() != 1 {
		t.Fatalf("expected a single request, got %d", methods.Load())
	}
}

func TestProbe_FallsBackToGetOn405(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method)
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	res, err := NewProber().Probe(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected GET status 404, got %d", res.StatusCode)
	}
	if len(seen) != 2 || seen[0] != http.MethodHead || seen[1] != http.MethodGet {
		t.Fatalf("expected HEAD then GET, got %v", seen)
	}
}

func TestProbe_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	res, err := NewProber().Probe(context.Background(), server.URL+"/old")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 after redirect, got %d", res.StatusCode)
	}
}

func TestProbe_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	res, err := NewProber(WithTimeout(20*time.Millisecond)).Probe(context.Background(), server.URL)
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if res.Duration <= 0 {
		t.Fatalf("expected duration to be set")
	}
}

func TestProbe_BadURL(t *testing.T) {
	_, err := NewProber().Probe(context.Background(), "://nope")
	if err == nil {
		t.Fatalf("expected error for malformed url")
	}
}
