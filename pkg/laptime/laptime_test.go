package laptime

import (
	"encoding/json"
	"testing"
)

// --- Normalize Tests ---

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"leading_colon", ":18,62", "00:18.620000"},
		{"fused_minutes_seconds", "2102:48", "21:02.480000"},
		{"missing_leading_zero", "952:48", "09:52.480000"},
		{"stray_fraction_digit", "19:522", "19:52.000000"},
		{"fused_seconds_fraction", "21:0248", "21:02.480000"},
		{"plain", "19:52", "19:52.000000"},
		{"three_runs", "26:16.00", "26:16.000000"},
		{"comma_separator", "20:05,3", "20:05.300000"},
		{"dot_separator", "20.05.35", "20:05.350000"},
		{"microsecond_fraction", "20:05.123456", "20:05.123456"},
		{"surrounding_noise", " 21:02.48 ", "21:02.480000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.input)
			if !ok {
				t.Fatalf("Normalize(%q) returned no time", tt.input)
			}
			if got.LapString() != tt.want {
				t.Errorf("Normalize(%q) = %s, want %s", tt.input, got.LapString(), tt.want)
			}
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no_digits", "DNF"},
		{"single_run", "1952"},
		{"four_runs", "1:19:52:00"},
		{"all_zero", "00:00,00"},
		{"zero_colon", ":00"},
		{"minutes_out_of_range", "75:10"},
		{"seconds_out_of_range", "19:75"},
		{"long_fraction", "20:05.1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := Normalize(tt.input); ok {
				t.Errorf("Normalize(%q) = %s, want no time", tt.input, got)
			}
		})
	}
}

// --- Time Tests ---

func TestTime_Components(t *testing.T) {
	tm := New(21, 2, 480000)

	if tm.Minutes() != 21 || tm.Seconds() != 2 || tm.Microseconds() != 480000 || tm.Hours() != 0 {
		t.Errorf("unexpected components: %d:%d:%d.%d", tm.Hours(), tm.Minutes(), tm.Seconds(), tm.Microseconds())
	}
	if got := tm.String(); got != "00:21:02.480000" {
		t.Errorf("String() = %q", got)
	}
	if tm.IsZero() {
		t.Error("IsZero() = true for non-zero time")
	}
}

func TestTime_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]Time{"VILAXOAN": New(26, 16, 0)})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"VILAXOAN":"00:26:16.000000"}` {
		t.Errorf("Marshal() = %s", data)
	}

	var back map[string]Time
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back["VILAXOAN"] != New(26, 16, 0) {
		t.Errorf("Unmarshal() = %v", back["VILAXOAN"])
	}
}

func TestTime_UnmarshalText_Invalid(t *testing.T) {
	var tm Time
	if err := tm.UnmarshalText([]byte("later")); err == nil {
		t.Error("expected error for invalid time")
	}
}
