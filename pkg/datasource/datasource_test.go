package datasource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jmylchreest/rowdata/pkg/penalty"
	"github.com/jmylchreest/rowdata/pkg/race"
)

func htmlConfig() Config {
	return Config{
		Name: "act",
		Tag:  TagHTML,
		HTML: HTMLConfig{Rows: "table#results tr", Columns: Columns{Club: 3}},
	}
}

// --- Config Tests ---

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid_html", mutate: func(*Config) {}},
		{name: "valid_xlsx", mutate: func(c *Config) { *c = Config{Tag: TagXLSX, Gender: race.Female} }},
		{name: "missing_tag", mutate: func(c *Config) { c.Tag = "" }, wantErr: "Tag is required"},
		{name: "unknown_tag", mutate: func(c *Config) { c.Tag = "csv" }, wantErr: "Tag must be one of"},
		{name: "bad_gender", mutate: func(c *Config) { c.Gender = "men" }, wantErr: "Gender"},
		{name: "concurrency_too_high", mutate: func(c *Config) { c.Concurrency = 17 }, wantErr: "must be at most 16"},
		{name: "html_without_rows", mutate: func(c *Config) { c.HTML.Rows = "" }, wantErr: "Rows is required"},
		{name: "html_without_club", mutate: func(c *Config) { c.HTML.Columns.Club = 0 }, wantErr: "Club is required"},
		{name: "lap_column_zero", mutate: func(c *Config) { c.HTML.Columns.Laps = []int{2, 0} }, wantErr: "Laps[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := htmlConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

// --- New Tests ---

func TestNew(t *testing.T) {
	for _, tag := range Tags {
		t.Run(string(tag), func(t *testing.T) {
			cfg := htmlConfig()
			cfg.Tag = tag
			ds, err := New(cfg, nil)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if ds.Tag() != tag {
				t.Errorf("Tag() = %q, want %q", ds.Tag(), tag)
			}
		})
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(Config{Tag: "csv"}, nil); !errors.Is(err, ErrUnknownTag) {
		t.Errorf("New(csv) error = %v, want ErrUnknownTag", err)
	}
	if _, err := New(Config{Tag: TagHTML}, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New(html without selectors) error = %v, want ErrInvalidConfig", err)
	}
}

func TestNew_DefaultName(t *testing.T) {
	ds, err := New(Config{Tag: TagPDF}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := ds.(*PDFSource).cfg.Name; got != "pdf" {
		t.Errorf("Name = %q, want pdf", got)
	}
}

// --- load Tests ---

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.txt")
	if err := os.WriteFile(path, []byte("BANDERA"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, source := range []string{path, "file://" + path} {
		data, err := load(context.Background(), nil, source)
		if err != nil {
			t.Fatalf("load(%q) error = %v", source, err)
		}
		if string(data) != "BANDERA" {
			t.Errorf("load(%q) = %q", source, data)
		}
	}

	if _, err := load(context.Background(), nil, filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
	if _, err := load(context.Background(), nil, "https://act.example/regata/1"); err == nil {
		t.Error("expected error for URL without fetcher")
	}
}

// --- finish Tests ---

func TestFinish_ConsistencyError(t *testing.T) {
	r := race.Race{
		Name:         "Bandera de Orio",
		Notes:        "El tiempo de Orio fue de 20:05. El tiempo de Orio fue de 20:10.",
		Participants: []race.Participant{{Club: "ORIO"}},
	}

	err := finish(&r)
	var ce *penalty.ConsistencyError
	if !errors.As(err, &ce) {
		t.Fatalf("finish() error = %v, want *penalty.ConsistencyError", err)
	}
	if ce.Club != "ORIO" {
		t.Errorf("ConsistencyError = %+v", ce)
	}
}

// --- Helper Tests ---

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		layout string
		want   time.Time
		ok     bool
	}{
		{"embedded", "Bandera de Orio (14/07/2024)", "", time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC), true},
		{"dashes", "3-8-2023", "", time.Date(2023, 8, 3, 0, 0, 0, 0, time.UTC), true},
		{"layout", "2024-07-14", "2006-01-02", time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC), true},
		{"bad_month", "14/13/2024", "", time.Time{}, false},
		{"none", "Bandera de Orio", "", time.Time{}, false},
		{"layout_mismatch", "14/07/2024", "2006-01-02", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDate(tt.text, tt.layout)
			if ok != tt.ok || !got.Equal(tt.want) {
				t.Errorf("parseDate(%q) = %v, %v, want %v, %v", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestAtoi(t *testing.T) {
	tests := map[string]int{"3": 3, "Calle 4": 4, "2ª": 2, "": 0, "-": 0}
	for in, want := range tests {
		if got := atoi(in); got != want {
			t.Errorf("atoi(%q) = %d, want %d", in, got, want)
		}
	}
}
