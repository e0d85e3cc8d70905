package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestHTTPTransportInvoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/routing-tripgo-southfinland" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("from") != "60.17,24.94" {
			t.Errorf("query not forwarded: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"groups": []}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL, 2*time.Second)
	q := url.Values{}
	q.Set("from", "60.17,24.94")
	raw, err := tr.Invoke(context.Background(), "routing-tripgo-southfinland", q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"groups": []}` {
		t.Errorf("raw payload altered: %s", raw)
	}
}

func TestHTTPTransportNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL, 2*time.Second)
	if _, err := tr.Invoke(context.Background(), "routing-matka", nil); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestHTTPTransportTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL, 20*time.Millisecond)
	if _, err := tr.Invoke(context.Background(), "routing-here", nil); err == nil {
		t.Error("expected timeout error")
	}
}
