package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// The aggregation engine builds pivot views over an already-filtered record
// set. Everything here is a pure function over its arguments; the maps are
// per-call scratch space. Costs always use qty × unit-price-at-line-item so
// later catalogue edits never change historical sums.

// MaterialTotal is one row of a material pivot.
type MaterialTotal struct {
	Name string          `json:"name"`
	Qty  int             `json:"qty"`
	Cost decimal.Decimal `json:"cost"`
}

// ObjectPivot groups submissions by DEHP number.
type ObjectPivot struct {
	DehpNumber      string          `json:"dehpNumber"`
	Materials       []MaterialTotal `json:"materials"`
	TotalQty        int             `json:"totalQty"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	SubmissionCount int             `json:"submissionCount"`
	MtTeams         []string        `json:"mtTeams"`
	LastDate        time.Time       `json:"lastDate"`
	Submissions     []Submission    `json:"submissions,omitempty"`
}

// TeamObject is the per-object rollup nested inside a team pivot.
type TeamObject struct {
	DehpNumber  string          `json:"dehpNumber"`
	TotalQty    int             `json:"totalQty"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	Submissions []Submission    `json:"submissions,omitempty"`
}

// TeamPivot groups submissions by normalized team.
type TeamPivot struct {
	MtTeamNorm      string          `json:"mtTeamNorm"`
	Materials       []MaterialTotal `json:"materials"`
	Objects         []TeamObject    `json:"objects"`
	ObjectCount     int             `json:"objectCount"`
	SubmissionCount int             `json:"submissionCount"`
	TotalQty        int             `json:"totalQty"`
	TotalCost       decimal.Decimal `json:"totalCost"`
}

// newCollator returns a German collator. Collators carry internal buffers, so
// each aggregation call gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.German)
}

// MaterialTotals flattens the filtered set into per-material qty and cost
// sums, ascending by material name (German collation).
func MaterialTotals(subs []Submission) []MaterialTotal {
	totals := make(map[string]*MaterialTotal)
	for _, sub := range subs {
		for _, item := range sub.Items {
			name := item.Material.Name
			row, ok := totals[name]
			if !ok {
				row = &MaterialTotal{Name: name, Cost: decimal.Zero}
				totals[name] = row
			}
			row.Qty += item.Qty
			row.Cost = row.Cost.Add(item.Cost())
		}
	}

	rows := make([]MaterialTotal, 0, len(totals))
	for _, row := range totals {
		rows = append(rows, *row)
	}
	sortMaterialTotals(rows)
	return rows
}

func sortMaterialTotals(rows []MaterialTotal) {
	c := newCollator()
	sort.Slice(rows, func(i, j int) bool {
		return c.CompareString(rows[i].Name, rows[j].Name) < 0
	})
}

// BuildObjectPivots groups the filtered set by exact DEHP number
// (case-sensitive) and rolls up quantities and costs per material. Result is
// ordered by last activity, newest first.
func BuildObjectPivots(subs []Submission) []ObjectPivot {
	groups := make(map[string][]Submission)
	order := make([]string, 0)
	for _, sub := range subs {
		if _, seen := groups[sub.DehpNumber]; !seen {
			order = append(order, sub.DehpNumber)
		}
		groups[sub.DehpNumber] = append(groups[sub.DehpNumber], sub)
	}

	pivots := make([]ObjectPivot, 0, len(order))
	for _, dehp := range order {
		pivots = append(pivots, buildObjectPivot(dehp, groups[dehp]))
	}
	sort.SliceStable(pivots, func(i, j int) bool {
		return pivots[i].LastDate.After(pivots[j].LastDate)
	})
	return pivots
}

// BuildObjectPivot rolls up the given submissions, which must all share one
// DEHP number, into a single pivot.
func BuildObjectPivot(dehpNumber string, subs []Submission) ObjectPivot {
	return buildObjectPivot(dehpNumber, subs)
}

func buildObjectPivot(dehpNumber string, subs []Submission) ObjectPivot {
	pivot := ObjectPivot{
		DehpNumber:      dehpNumber,
		Materials:       MaterialTotals(subs),
		SubmissionCount: len(subs),
		TotalCost:       decimal.Zero,
		Submissions:     subs,
	}

	teams := make(map[string]bool)
	for _, sub := range subs {
		teams[sub.MtTeamNorm] = true
		if sub.CreatedAt.After(pivot.LastDate) {
			pivot.LastDate = sub.CreatedAt
		}
	}
	for _, row := range pivot.Materials {
		pivot.TotalQty += row.Qty
		pivot.TotalCost = pivot.TotalCost.Add(row.Cost)
	}

	pivot.MtTeams = make([]string, 0, len(teams))
	for team := range teams {
		pivot.MtTeams = append(pivot.MtTeams, team)
	}
	sort.Strings(pivot.MtTeams)
	return pivot
}

// BuildTeamPivots groups the filtered set by normalized team with a nested
// per-object rollup, ordered ascending by team name.
func BuildTeamPivots(subs []Submission) []TeamPivot {
	groups := make(map[string][]Submission)
	for _, sub := range subs {
		groups[sub.MtTeamNorm] = append(groups[sub.MtTeamNorm], sub)
	}

	pivots := make([]TeamPivot, 0, len(groups))
	for team, teamSubs := range groups {
		pivots = append(pivots, BuildTeamPivot(team, teamSubs))
	}
	c := newCollator()
	sort.Slice(pivots, func(i, j int) bool {
		return c.CompareString(pivots[i].MtTeamNorm, pivots[j].MtTeamNorm) < 0
	})
	return pivots
}

// BuildTeamPivot rolls up the given submissions, which must all share one
// normalized team, into a single pivot.
func BuildTeamPivot(mtTeamNorm string, subs []Submission) TeamPivot {
	pivot := TeamPivot{
		MtTeamNorm:      mtTeamNorm,
		Materials:       MaterialTotals(subs),
		SubmissionCount: len(subs),
		TotalCost:       decimal.Zero,
	}

	objects := make(map[string]*TeamObject)
	objectOrder := make([]string, 0)
	for _, sub := range subs {
		obj, ok := objects[sub.DehpNumber]
		if !ok {
			obj = &TeamObject{DehpNumber: sub.DehpNumber, TotalCost: decimal.Zero}
			objects[sub.DehpNumber] = obj
			objectOrder = append(objectOrder, sub.DehpNumber)
		}
		for _, item := range sub.Items {
			obj.TotalQty += item.Qty
			obj.TotalCost = obj.TotalCost.Add(item.Cost())
		}
		obj.Submissions = append(obj.Submissions, sub)
	}

	pivot.Objects = make([]TeamObject, 0, len(objectOrder))
	for _, dehp := range objectOrder {
		pivot.Objects = append(pivot.Objects, *objects[dehp])
	}
	pivot.ObjectCount = len(pivot.Objects)

	for _, row := range pivot.Materials {
		pivot.TotalQty += row.Qty
		pivot.TotalCost = pivot.TotalCost.Add(row.Cost)
	}
	return pivot
}
