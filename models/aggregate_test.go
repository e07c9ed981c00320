package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func item(name string, qty int, price string) SubmissionItem {
	return SubmissionItem{
		Material:  Material{Name: name},
		Qty:       qty,
		UnitPrice: decimal.RequireFromString(price),
	}
}

func testSubmissions() []Submission {
	base := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	return []Submission{
		{
			DehpNumber: "A", MtTeamNorm: "TEAM NORD", CreatedAt: base,
			Items: []SubmissionItem{item("Material X", 3, "2.00")},
		},
		{
			DehpNumber: "A", MtTeamNorm: "TEAM NORD", CreatedAt: base.Add(time.Hour),
			Items: []SubmissionItem{item("Material X", 2, "2.00")},
		},
		{
			DehpNumber: "B", MtTeamNorm: "TEAM SÜD", CreatedAt: base.Add(2 * time.Hour),
			Items: []SubmissionItem{item("Material Y", 1, "5.00")},
		},
	}
}

func TestBuildObjectPivots(t *testing.T) {
	pivots := BuildObjectPivots(testSubmissions())
	if len(pivots) != 2 {
		t.Fatalf("expected 2 object pivots, got %d", len(pivots))
	}

	// Newest activity first: B before A.
	if pivots[0].DehpNumber != "B" || pivots[1].DehpNumber != "A" {
		t.Fatalf("unexpected order: %s, %s", pivots[0].DehpNumber, pivots[1].DehpNumber)
	}

	a := pivots[1]
	if len(a.Materials) != 1 || a.Materials[0].Name != "Material X" {
		t.Fatalf("unexpected materials for A: %+v", a.Materials)
	}
	if a.Materials[0].Qty != 5 {
		t.Errorf("A material qty = %d, expected 5", a.Materials[0].Qty)
	}
	if !a.Materials[0].Cost.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("A material cost = %s, expected 10.00", a.Materials[0].Cost)
	}
	if a.TotalQty != 5 || !a.TotalCost.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("A totals = %d / %s, expected 5 / 10.00", a.TotalQty, a.TotalCost)
	}
	if a.SubmissionCount != 2 {
		t.Errorf("A submission count = %d, expected 2", a.SubmissionCount)
	}
	if len(a.MtTeams) != 1 || a.MtTeams[0] != "TEAM NORD" {
		t.Errorf("A teams = %v", a.MtTeams)
	}
}

func TestBuildTeamPivots(t *testing.T) {
	pivots := BuildTeamPivots(testSubmissions())
	if len(pivots) != 2 {
		t.Fatalf("expected 2 team pivots, got %d", len(pivots))
	}

	// Ascending by team name.
	if pivots[0].MtTeamNorm != "TEAM NORD" || pivots[1].MtTeamNorm != "TEAM SÜD" {
		t.Fatalf("unexpected order: %s, %s", pivots[0].MtTeamNorm, pivots[1].MtTeamNorm)
	}

	nord, sued := pivots[0], pivots[1]
	if nord.TotalQty != 5 || !nord.TotalCost.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("nord totals = %d / %s, expected 5 / 10.00", nord.TotalQty, nord.TotalCost)
	}
	if nord.ObjectCount != 1 || nord.SubmissionCount != 2 {
		t.Errorf("nord counts = %d objects / %d submissions", nord.ObjectCount, nord.SubmissionCount)
	}
	if sued.TotalQty != 1 || !sued.TotalCost.Equal(decimal.RequireFromString("5.00")) {
		t.Errorf("süd totals = %d / %s, expected 1 / 5.00", sued.TotalQty, sued.TotalCost)
	}
	if len(nord.Objects) != 1 || nord.Objects[0].DehpNumber != "A" {
		t.Errorf("nord objects = %+v", nord.Objects)
	}
	if nord.Objects[0].TotalQty != 5 {
		t.Errorf("nord object qty = %d, expected 5", nord.Objects[0].TotalQty)
	}
}

func TestMaterialTotals(t *testing.T) {
	totals := MaterialTotals(testSubmissions())
	if len(totals) != 2 {
		t.Fatalf("expected 2 material rows, got %d", len(totals))
	}
	if totals[0].Name != "Material X" || totals[1].Name != "Material Y" {
		t.Fatalf("unexpected sort order: %s, %s", totals[0].Name, totals[1].Name)
	}
	if totals[0].Qty != 5 || !totals[0].Cost.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("Material X = %d / %s", totals[0].Qty, totals[0].Cost)
	}
	if totals[1].Qty != 1 || !totals[1].Cost.Equal(decimal.RequireFromString("5.00")) {
		t.Errorf("Material Y = %d / %s", totals[1].Qty, totals[1].Cost)
	}
}

func TestMaterialTotals_GermanCollation(t *testing.T) {
	subs := []Submission{{
		DehpNumber: "A",
		Items: []SubmissionItem{
			item("Übergang 18-22", 1, "0"),
			item("T-Stück 18", 1, "0"),
			item("Alpex Rohr 16x2 (m)", 1, "0"),
		},
	}}

	totals := MaterialTotals(subs)
	// German collation sorts Ü with U, so Übergang lands between T and the
	// end, not after Z as byte order would put it.
	expected := []string{"Alpex Rohr 16x2 (m)", "T-Stück 18", "Übergang 18-22"}
	for i, name := range expected {
		if totals[i].Name != name {
			t.Fatalf("position %d = %q, expected %q (full order: %+v)", i, totals[i].Name, name, totals)
		}
	}
}
