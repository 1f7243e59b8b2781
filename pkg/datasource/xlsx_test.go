package datasource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmylchreest/rowdata/pkg/laptime"
	"github.com/jmylchreest/rowdata/pkg/penalty"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves a workbook with one sheet per entry of sheets, in
// order, and returns its path.
func writeWorkbook(t *testing.T, names []string, sheets map[string][][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range names {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatal(err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatal(err)
		}
		for r, row := range sheets[name] {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "results.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

// --- XLSXSource Tests ---

func TestXLSXSource_Races(t *testing.T) {
	path := writeWorkbook(t, []string{"Orio", "Portada", "Zarautz"}, map[string][][]any{
		"Orio": {
			{"Bandera de Orio"},
			{"", "14/07/2024"},
			{},
			{"Tanda", "Calle", "Club", "Tiempo ciaboga", "Tiempo"},
			{"1", "2", "Orio Arraun Elkartea", "05:01,00", "20:05,30"},
			{"1", "3", "Zarautz Arraun Elkartea", "05:10,00", ""},
			{},
			{"NOTA: Orio fue descalificado por cruzarse de calle."},
		},
		"Portada": {
			{"Campeonato de Clubes"},
			{"Temporada 2024"},
		},
		"Zarautz": {
			{"Equipo", "Largo 1", "Largo 2", "Tiempo final", "Observaciones"},
			{"Kaiku Bizkaiko Foru Aldundia", "05:00", "10:02", "19:58,00", ""},
			{"Hondarribiko Arraun Elkartea", "05:02", "10:05", "20:01,00", "Hondarribia fue descalificado."},
		},
	})

	ds, err := New(Config{Name: "arc", Tag: TagXLSX}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	races, err := ds.Races(context.Background(), path)
	if err != nil {
		t.Fatalf("Races() error = %v", err)
	}
	if len(races) != 2 {
		t.Fatalf("len(races) = %d, want 2 (cover sheet skipped)", len(races))
	}

	orio := races[0]
	if orio.Name != "Bandera de Orio" || orio.Datasource != "arc" || orio.URL != path {
		t.Errorf("race = %q from %q at %q", orio.Name, orio.Datasource, orio.URL)
	}
	if !orio.Date.Equal(time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", orio.Date)
	}
	if orio.Notes != "Orio fue descalificado por cruzarse de calle." {
		t.Errorf("Notes = %q", orio.Notes)
	}
	if len(orio.Participants) != 2 {
		t.Fatalf("participants = %+v", orio.Participants)
	}
	p := orio.Participants[0]
	if p.Club != "ORIO" || p.Series != 1 || p.Lane != 2 {
		t.Errorf("ORIO = %+v", p)
	}
	if len(p.Laps) != 1 || p.Laps[0] != laptime.New(5, 1, 0) {
		t.Errorf("ORIO laps = %v", p.Laps)
	}
	if p.Time == nil || *p.Time != laptime.New(20, 5, 300000) {
		t.Errorf("ORIO time = %v", p.Time)
	}
	if p.Penalty == nil || p.Penalty.Reason != penalty.WrongRoute || !p.Penalty.Disqualification {
		t.Errorf("ORIO penalty = %v", p.Penalty)
	}
	if z := orio.Participants[1]; z.Club != "ZARAUTZ" || z.Time != nil {
		t.Errorf("ZARAUTZ = %+v", z)
	}

	zarautz := races[1]
	if zarautz.Name != "Zarautz" {
		t.Errorf("Name = %q, want sheet name", zarautz.Name)
	}
	if got := zarautz.ClubNames(); fmt.Sprint(got) != "[KAIKU HONDARRIBIA]" {
		t.Errorf("ClubNames() = %v", got)
	}
	if laps := zarautz.Participants[0].Laps; len(laps) != 2 || laps[1] != laptime.New(10, 2, 0) {
		t.Errorf("KAIKU laps = %v", laps)
	}
	h := zarautz.Participants[1]
	if h.Penalty == nil || !h.Penalty.Disqualification {
		t.Errorf("HONDARRIBIA penalty from notes column = %v", h.Penalty)
	}
}

func TestXLSXSource_NoRaces(t *testing.T) {
	path := writeWorkbook(t, []string{"Portada"}, map[string][][]any{
		"Portada": {{"Campeonato de Clubes"}},
	})
	ds, _ := New(Config{Tag: TagXLSX}, nil)

	if _, err := ds.Races(context.Background(), path); !errors.Is(err, ErrNoRaces) {
		t.Errorf("Races() error = %v, want ErrNoRaces", err)
	}
}

func TestXLSXSource_NotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, _ := New(Config{Tag: TagXLSX}, nil)

	if _, err := ds.Races(context.Background(), path); err == nil {
		t.Error("expected error for invalid workbook")
	}
}

func TestFindSheetColumns(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		ok   bool
	}{
		{"full", []string{"Tanda", "Calle", "Club", "Tiempo"}, true},
		{"laps_only", []string{"Equipo", "Ciaboga 1"}, true},
		{"title", []string{"Campeonato de Clubes"}, false},
		{"no_club", []string{"Calle", "Tiempo"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := findSheetColumns(tt.row); ok != tt.ok {
				t.Errorf("findSheetColumns(%v) ok = %v, want %v", tt.row, ok, tt.ok)
			}
		})
	}
}
