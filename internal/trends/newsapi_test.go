package trends

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewsAPIFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/top-headlines" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Errorf("missing api key header")
		}
		w.Write([]byte(`{"status":"ok","articles":[{"title":"Breaking story"},{"title":"Second story"}]}`))
	}))
	defer srv.Close()

	f := NewNewsAPIFetcher("test-key")
	f.baseURL = srv.URL

	topics, err := f.Fetch(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(topics) != 2 {
		t.Fatalf("got %d topics, want 2", len(topics))
	}
	if topics[0].Text != "Breaking story" || topics[0].Rank != 1 {
		t.Errorf("first topic = %+v", topics[0])
	}
	if topics[1].Rank != 2 {
		t.Errorf("second topic rank = %d, want 2", topics[1].Rank)
	}
}

func TestNewsAPIFetchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"api error payload", 401, `{"status":"error","message":"invalid key"}`},
		{"server error", 500, `oops`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			f := NewNewsAPIFetcher("test-key")
			f.baseURL = srv.URL

			if _, err := f.Fetch(context.Background(), 5); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewsAPIFetchWithoutKey(t *testing.T) {
	f := NewNewsAPIFetcher("")
	if _, err := f.Fetch(context.Background(), 5); err == nil {
		t.Fatal("expected error when key is not configured")
	}
}
