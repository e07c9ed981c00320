package models

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ItemsPerPage is the fixed page size for all listing endpoints.
const ItemsPerPage = 25

// ListParams carries the common list/aggregate/export filters parsed from the
// query string.
type ListParams struct {
	Page     int
	From     *time.Time
	To       *time.Time
	MtTeam   string
	Dehp     string
	LastName string
	Status   string
	Priority string
	Search   string
}

// ParseListParams reads filter query parameters. Unknown values are ignored;
// date filters accept YYYY-MM-DD, and "to" is widened to end of day.
func ParseListParams(r *http.Request) ListParams {
	q := r.URL.Query()

	params := ListParams{
		Page:     1,
		MtTeam:   strings.TrimSpace(q.Get("mtTeam")),
		Dehp:     strings.TrimSpace(q.Get("dehp")),
		LastName: strings.TrimSpace(q.Get("lastName")),
		Status:   strings.TrimSpace(q.Get("status")),
		Priority: strings.TrimSpace(q.Get("priority")),
		Search:   strings.TrimSpace(q.Get("search")),
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 1 {
		params.Page = page
	}
	if from, err := time.Parse("2006-01-02", q.Get("from")); err == nil {
		params.From = &from
	}
	if to, err := time.Parse("2006-01-02", q.Get("to")); err == nil {
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		params.To = &endOfDay
	}

	return params
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * ItemsPerPage
}

// ApplyDateRange narrows a query to the created-at window.
func (p ListParams) ApplyDateRange(db *gorm.DB) *gorm.DB {
	if p.From != nil {
		db = db.Where("created_at >= ?", *p.From)
	}
	if p.To != nil {
		db = db.Where("created_at <= ?", *p.To)
	}
	return db
}

// ApplySubmissionFilters narrows a submission query. Text filters are
// contains-matches, case-insensitive; grouping itself stays exact.
func (p ListParams) ApplySubmissionFilters(db *gorm.DB) *gorm.DB {
	db = p.ApplyDateRange(db)
	if p.MtTeam != "" {
		db = db.Where("mt_team_norm ILIKE ?", "%"+strings.ToUpper(p.MtTeam)+"%")
	}
	if p.Dehp != "" {
		db = db.Where("dehp_number ILIKE ?", "%"+p.Dehp+"%")
	}
	if p.LastName != "" {
		db = db.Where("last_name ILIKE ?", "%"+p.LastName+"%")
	}
	return db
}

// ApplyOrderFilters narrows a purchase-order query.
func (p ListParams) ApplyOrderFilters(db *gorm.DB) *gorm.DB {
	db = p.ApplyDateRange(db)
	if p.MtTeam != "" {
		db = db.Where("mt_team_norm ILIKE ?", "%"+strings.ToUpper(p.MtTeam)+"%")
	}
	if p.Status != "" {
		db = db.Where("status = ?", p.Status)
	}
	if p.Priority != "" {
		db = db.Where("priority = ?", p.Priority)
	}
	return db
}
