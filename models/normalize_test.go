package models

import "testing"

func TestNormalizeTeam(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"already normalized", "TEAM NORD", "TEAM NORD"},
		{"lowercase", "team nord", "TEAM NORD"},
		{"mixed case", "Team Nord", "TEAM NORD"},
		{"leading and trailing space", "  team nord  ", "TEAM NORD"},
		{"inner whitespace collapsed", "team \t nord", "TEAM NORD"},
		{"single word", "süd", "SÜD"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTeam(tt.raw); got != tt.expected {
				t.Errorf("NormalizeTeam(%q) = %q, expected %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestNormalizeTeam_Idempotent(t *testing.T) {
	inputs := []string{"Team Nord", "  mt   süd 3 ", "A", "", "ALREADY DONE"}
	for _, raw := range inputs {
		once := NormalizeTeam(raw)
		twice := NormalizeTeam(once)
		if once != twice {
			t.Errorf("NormalizeTeam not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}
