package models

import "testing"

func TestValidatePhotos(t *testing.T) {
	tests := []struct {
		name        string
		counts      map[string]int
		hasRadiator bool
		complete    bool
		violations  int
	}{
		{
			name:        "all categories at minimum, no radiator",
			counts:      map[string]int{"vorher": 1, "nachher": 1, "zaehler": 1},
			hasRadiator: false,
			complete:    true,
		},
		{
			name:        "all categories at maximum, no radiator",
			counts:      map[string]int{"vorher": 5, "nachher": 5, "zaehler": 2},
			hasRadiator: false,
			complete:    true,
		},
		{
			name:        "radiator set with radiator photos",
			counts:      map[string]int{"vorher": 2, "nachher": 2, "zaehler": 1, "heizkoerper": 1},
			hasRadiator: true,
			complete:    true,
		},
		{
			name:        "no photos at all lists every required category",
			counts:      map[string]int{},
			hasRadiator: false,
			complete:    false,
			violations:  3,
		},
		{
			name:        "one category missing",
			counts:      map[string]int{"vorher": 1, "zaehler": 1},
			hasRadiator: false,
			complete:    false,
			violations:  1,
		},
		{
			name:        "category above maximum",
			counts:      map[string]int{"vorher": 6, "nachher": 1, "zaehler": 1},
			hasRadiator: false,
			complete:    false,
			violations:  1,
		},
		{
			name:        "radiator photos without radiator flag",
			counts:      map[string]int{"vorher": 1, "nachher": 1, "zaehler": 1, "heizkoerper": 2},
			hasRadiator: false,
			complete:    false,
			violations:  1,
		},
		{
			name:        "radiator flag without radiator photos",
			counts:      map[string]int{"vorher": 1, "nachher": 1, "zaehler": 1},
			hasRadiator: true,
			complete:    false,
			violations:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			complete, violations := ValidatePhotos(tt.counts, tt.hasRadiator)
			if complete != tt.complete {
				t.Errorf("complete = %v, expected %v (violations: %v)", complete, tt.complete, violations)
			}
			if !tt.complete && len(violations) != tt.violations {
				t.Errorf("got %d violations, expected %d: %v", len(violations), tt.violations, violations)
			}
		})
	}
}

func TestValidatePhotos_ViolationDetail(t *testing.T) {
	_, violations := ValidatePhotos(map[string]int{"nachher": 1, "zaehler": 1}, false)
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(violations))
	}
	v := violations[0]
	if v.Category != "vorher" || v.Min != 1 || v.Max != 5 || v.Actual != 0 {
		t.Errorf("unexpected violation detail: %+v", v)
	}
}

func TestValidPhotoCategory(t *testing.T) {
	for _, cat := range PhotoCategories {
		if !ValidPhotoCategory(cat.Key) {
			t.Errorf("configured category %q not recognized", cat.Key)
		}
	}
	if ValidPhotoCategory("keller") {
		t.Error("unknown category accepted")
	}
}
