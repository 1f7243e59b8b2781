package race

import (
	"slices"
	"testing"

	"github.com/jmylchreest/rowdata/pkg/laptime"
	"github.com/jmylchreest/rowdata/pkg/penalty"
)

// --- ClubNames Tests ---

func TestRace_ClubNames(t *testing.T) {
	r := Race{Participants: []Participant{
		{Club: "ORIO"}, {Club: ""}, {Club: "ZARAUTZ"}, {Club: "ORIO"},
	}}

	if got, want := r.ClubNames(), []string{"ORIO", "ZARAUTZ"}; !slices.Equal(got, want) {
		t.Errorf("ClubNames() = %v, want %v", got, want)
	}
}

// --- ApplyNote Tests ---

func TestRace_ApplyNote_Penalty(t *testing.T) {
	r := Race{
		Name:  "Bandera de Orio",
		Notes: "Orio fue descalificado por cruzarse de calle.",
		Participants: []Participant{
			{Club: "ORIO"},
			{Club: "ZARAUTZ"},
		},
	}
	r.ApplyNote()

	got := r.Participants[0].Penalty
	if got == nil || *got != (penalty.Penalty{Reason: penalty.WrongRoute, Disqualification: true}) {
		t.Errorf("ORIO penalty = %v", got)
	}
	if r.Participants[1].Penalty != nil {
		t.Errorf("ZARAUTZ penalty = %v, want none", r.Participants[1].Penalty)
	}
	if r.Cancelled {
		t.Error("Cancelled = true")
	}
}

func TestRace_ApplyNote_TimeFillsOnlyMissing(t *testing.T) {
	tabular := laptime.New(19, 40, 0)
	r := Race{
		Notes: "Perillo B y Mecos B formaban parte de una tanda de promoción, sus tiempos fueron de 19:52 y 19:58, respectivamente.",
		Participants: []Participant{
			{Club: "PERILLO B", Time: &tabular},
			{Club: "MECOS B"},
		},
	}
	r.ApplyNote()

	if got := *r.Participants[0].Time; got != tabular {
		t.Errorf("PERILLO B time = %v, want table time %v", got, tabular)
	}
	if got := r.Participants[1].Time; got == nil || *got != laptime.New(19, 58, 0) {
		t.Errorf("MECOS B time = %v, want 19:58", got)
	}
}

func TestRace_ApplyNote_Flags(t *testing.T) {
	tests := []struct {
		name      string
		note      string
		cancelled bool
		retired   bool
		guest     bool
		absent    bool
	}{
		{"cancelled", "La regata se anuló por el temporal.", true, false, false, false},
		{"retired", "Raspas se retiró por entrar agua en su embarcación.", false, true, false, false},
		{"guest", "Raspas participó como invitado.", false, false, true, false},
		{"absent", "Raspas no se presentó.", false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Race{Notes: tt.note, Participants: []Participant{{Club: "RASPAS"}}}
			r.ApplyNote()

			p := r.Participants[0]
			if r.Cancelled != tt.cancelled || p.Retired != tt.retired || p.Guest != tt.guest || p.Absent != tt.absent {
				t.Errorf("cancelled=%v retired=%v guest=%v absent=%v", r.Cancelled, p.Retired, p.Guest, p.Absent)
			}
		})
	}
}

func TestRace_ApplyNote_NoNote(t *testing.T) {
	r := Race{Participants: []Participant{{Club: "ORIO"}}}
	r.ApplyNote()

	if r.Participants[0].Penalty != nil || r.Cancelled {
		t.Errorf("unexpected changes: %+v", r)
	}
}
