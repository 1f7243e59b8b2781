package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"
)

const resultsPage = `<html><head><title>Bandera de Orio</title><script>var x = 1;</script></head>
<body><h1>Resultados</h1>
<a href="/regata/2">Siguiente</a>
<a href="/regata/3#top">Otra</a>
<a href="#arriba">Arriba</a>
<a href="/regata/2">Repetida</a>
</body></html>`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/regata/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(resultsPage))
	})
	mux.HandleFunc("/headers", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(r.Header.Get("User-Agent") + "|" + r.Header.Get("X-League")))
	})
	mux.HandleFunc("/results.xlsx", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write([]byte("PK\x03\x04"))
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// --- Fetch Tests ---

func TestStaticFetcher_HTML(t *testing.T) {
	srv := newServer(t)
	f := NewStatic(StaticConfig{})

	got, err := f.Fetch(context.Background(), srv.URL+"/regata/1", Options{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if got.Title != "Bandera de Orio" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Text != "Resultados Siguiente Otra Arriba Repetida" {
		t.Errorf("Text = %q", got.Text)
	}
	wantLinks := []string{srv.URL + "/regata/2", srv.URL + "/regata/3"}
	if !slices.Equal(got.Links, wantLinks) {
		t.Errorf("Links = %v, want %v", got.Links, wantLinks)
	}
	if got.StatusCode != http.StatusOK || got.FetchedAt.IsZero() {
		t.Errorf("StatusCode = %d, FetchedAt = %v", got.StatusCode, got.FetchedAt)
	}
}

func TestStaticFetcher_Binary(t *testing.T) {
	srv := newServer(t)
	f := NewStatic(StaticConfig{})

	got, err := f.Fetch(context.Background(), srv.URL+"/results.xlsx", Options{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(got.Body) != "PK\x03\x04" {
		t.Errorf("Body = %q", got.Body)
	}
	if got.HTML != "" || got.Links != nil {
		t.Error("binary content should not be parsed as HTML")
	}
}

func TestStaticFetcher_Headers(t *testing.T) {
	srv := newServer(t)
	f := NewStatic(StaticConfig{UserAgent: "default-agent"})

	got, err := f.Fetch(context.Background(), srv.URL+"/headers", Options{
		UserAgent: "override-agent",
		Headers:   map[string]string{"X-League": "ACT"},
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(got.Body) != "override-agent|ACT" {
		t.Errorf("Body = %q", got.Body)
	}
}

func TestStaticFetcher_Errors(t *testing.T) {
	srv := newServer(t)
	f := NewStatic(StaticConfig{})

	tests := []struct {
		name string
		path string
		want error
	}{
		{"not_found", "/missing", ErrStatus},
		{"empty_body", "/empty", ErrEmptyBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), srv.URL+tt.path, Options{})
			if !errors.Is(err, tt.want) {
				t.Errorf("Fetch() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestStaticFetcher_RateLimitHonoursContext(t *testing.T) {
	srv := newServer(t)
	f := NewStatic(StaticConfig{RateLimit: time.Hour})

	if _, err := f.Fetch(context.Background(), srv.URL+"/regata/1", Options{}); err != nil {
		t.Fatalf("first Fetch() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := f.Fetch(ctx, srv.URL+"/regata/1", Options{}); err == nil {
		t.Error("expected the second request to be held back by the limiter")
	}
}

// --- Interface Tests ---

func TestStaticFetcher_Type(t *testing.T) {
	var f Fetcher = NewStatic(DefaultStaticConfig())
	if f.Type() != "static" {
		t.Errorf("Type() = %q", f.Type())
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
