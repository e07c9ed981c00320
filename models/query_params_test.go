package models

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseListParams(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/api/v1/admin/submissions?page=3&from=2025-08-01&to=2025-08-15&mtTeam=nord&dehp=D-100&lastName=muster", nil)

	params := ParseListParams(r)

	if params.Page != 3 {
		t.Errorf("page = %d, expected 3", params.Page)
	}
	if params.Offset() != 50 {
		t.Errorf("offset = %d, expected 50", params.Offset())
	}
	if params.From == nil || !params.From.Equal(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v", params.From)
	}
	// "to" is inclusive: widened to the end of the day.
	if params.To == nil || params.To.Before(time.Date(2025, 8, 15, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("to = %v, expected end of Aug 15", params.To)
	}
	if params.MtTeam != "nord" || params.Dehp != "D-100" || params.LastName != "muster" {
		t.Errorf("filters = %q / %q / %q", params.MtTeam, params.Dehp, params.LastName)
	}
}

func TestParseListParams_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/admin/submissions", nil)
	params := ParseListParams(r)

	if params.Page != 1 || params.Offset() != 0 {
		t.Errorf("page = %d, offset = %d, expected first page", params.Page, params.Offset())
	}
	if params.From != nil || params.To != nil {
		t.Error("expected no date bounds")
	}
}

func TestParseListParams_BadValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?page=-2&from=not-a-date&to=2025-13-40", nil)
	params := ParseListParams(r)

	if params.Page != 1 {
		t.Errorf("page = %d, expected fallback to 1", params.Page)
	}
	if params.From != nil || params.To != nil {
		t.Error("unparseable dates should be ignored")
	}
}
