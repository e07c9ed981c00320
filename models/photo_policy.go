package models

import "fmt"

// PhotoCategory is one entry of the photo evidence policy. Conditional
// categories only apply when the submission reports a radiator.
type PhotoCategory struct {
	Key         string
	Label       string
	Min         int
	Max         int
	Conditional bool
}

// PhotoCategories is the single source of the photo policy, in form order.
var PhotoCategories = []PhotoCategory{
	{Key: "vorher", Label: "Vorher", Min: 1, Max: 5},
	{Key: "nachher", Label: "Nachher", Min: 1, Max: 5},
	{Key: "zaehler", Label: "Wasserzähler", Min: 1, Max: 2},
	{Key: "heizkoerper", Label: "Heizkörper", Min: 1, Max: 5, Conditional: true},
}

// ValidPhotoCategory reports whether key names a configured category.
func ValidPhotoCategory(key string) bool {
	for _, c := range PhotoCategories {
		if c.Key == key {
			return true
		}
	}
	return false
}

// PhotoCategoryError describes one category whose photo count is outside its
// allowed range.
type PhotoCategoryError struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Actual   int    `json:"actual"`
}

func (e PhotoCategoryError) Error() string {
	return fmt.Sprintf("Kategorie %s: %d Fotos, erlaubt sind %d bis %d", e.Label, e.Actual, e.Min, e.Max)
}

// ValidatePhotos checks per-category photo counts against the policy table.
// Non-conditional categories always apply; the conditional category applies
// only with hasRadiator=true, and with hasRadiator=false any photos in it are
// an error (expected range collapses to [0,0]). Returns every violated
// category, or completeness=true when all effective categories are in range.
func ValidatePhotos(countsByCategory map[string]int, hasRadiator bool) (bool, []PhotoCategoryError) {
	var violations []PhotoCategoryError

	for _, cat := range PhotoCategories {
		actual := countsByCategory[cat.Key]
		min, max := cat.Min, cat.Max
		if cat.Conditional && !hasRadiator {
			min, max = 0, 0
		}
		if actual < min || actual > max {
			violations = append(violations, PhotoCategoryError{
				Category: cat.Key,
				Label:    cat.Label,
				Min:      min,
				Max:      max,
				Actual:   actual,
			})
		}
	}

	return len(violations) == 0, violations
}
