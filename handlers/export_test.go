package handlers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"p9e.in/mtmaterial/models"
)

func exportItem(name string, qty int, price string) models.SubmissionItem {
	return models.SubmissionItem{
		Material:  models.Material{Name: name},
		Qty:       qty,
		UnitPrice: decimal.RequireFromString(price),
	}
}

func exportSubmissions() []models.Submission {
	base := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	return []models.Submission{
		{
			DehpNumber: "A", MtTeamNorm: "TEAM NORD", FirstName: "Max", LastName: "Muster", CreatedAt: base,
			Items: []models.SubmissionItem{
				exportItem("Rohrschelle 18", 3, "2.00"),
				exportItem("Isolierschale 22", 1, "1.50"),
			},
		},
		{
			DehpNumber: "B", MtTeamNorm: "TEAM SÜD", FirstName: "Erika", LastName: "Muster", CreatedAt: base.Add(time.Hour),
			Items: []models.SubmissionItem{
				exportItem("Rohrschelle 18", 2, "2.00"),
			},
		},
	}
}

func TestBuildSubmissionRows(t *testing.T) {
	header, rows := buildSubmissionRows(exportSubmissions())

	// One row per line item.
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != len(header) {
			t.Errorf("row %d has %d columns, header has %d", i, len(row), len(header))
		}
	}
	if header[0] != "Datum" || header[5] != "Material" {
		t.Errorf("unexpected header: %v", header)
	}
	// qty 3 @ 2,00 → Kosten 6,00
	if rows[0][7] != "2,00" || rows[0][8] != "6,00" {
		t.Errorf("price columns = %q / %q, expected 2,00 / 6,00", rows[0][7], rows[0][8])
	}
}

func TestBuildReportRows(t *testing.T) {
	_, rows := buildReportRows(exportSubmissions())

	// One row per distinct material across the filtered set.
	if len(rows) != 2 {
		t.Fatalf("expected 2 report rows, got %d", len(rows))
	}
	// Ascending by material name.
	if rows[0][0] != "Isolierschale 22" || rows[1][0] != "Rohrschelle 18" {
		t.Fatalf("unexpected order: %q, %q", rows[0][0], rows[1][0])
	}
	// Rohrschelle 18: 3 + 2 = 5 pieces, 10,00 total.
	if rows[1][1] != "5" {
		t.Errorf("Rohrschelle qty = %q, expected 5", rows[1][1])
	}
	if rows[1][2] != "10,00" {
		t.Errorf("Rohrschelle cost = %q, expected 10,00", rows[1][2])
	}
}

func TestBuildObjectRows(t *testing.T) {
	header, rows := buildObjectRows(exportSubmissions())

	// DEHP + one column per material + Gesamt + Gesamtkosten
	if len(header) != 1+2+2 {
		t.Fatalf("unexpected header: %v", header)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 object rows, got %d", len(rows))
	}

	byDehp := map[string][]string{}
	for _, row := range rows {
		byDehp[row[0]] = row
	}
	a := byDehp["A"]
	// Columns follow header order: Isolierschale 22, Rohrschelle 18.
	if a[1] != "1" || a[2] != "3" {
		t.Errorf("object A material counts = %q/%q, expected 1/3", a[1], a[2])
	}
	if a[3] != "4" {
		t.Errorf("object A total = %q, expected 4", a[3])
	}
	b := byDehp["B"]
	if b[1] != "0" || b[2] != "2" {
		t.Errorf("object B material counts = %q/%q, expected 0/2", b[1], b[2])
	}
}

func TestBuildOrderRows(t *testing.T) {
	supplier := "Großhandel GmbH"
	orders := []models.PurchaseOrder{
		{
			OrderNumber: 7, MtTeamNorm: "TEAM NORD", WorkerName: "Max Muster",
			Status: models.OrderStatusOrdered, Priority: models.OrderPriorityUrgent, Supplier: &supplier,
			CreatedAt: time.Date(2025, 8, 1, 9, 30, 0, 0, time.UTC),
			Items: []models.OrderItem{
				{Material: models.Material{Name: "T-Stück 18"}, Qty: 4, UnitPrice: decimal.RequireFromString("0.80")},
			},
		},
	}

	header, rows := buildOrderRows(orders)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if len(row) != len(header) {
		t.Fatalf("row has %d columns, header has %d", len(row), len(header))
	}
	if row[1] != "7" || row[8] != "ORDERED" || row[9] != "URGENT" || row[10] != supplier {
		t.Errorf("unexpected row: %v", row)
	}
	if row[7] != "3,20" {
		t.Errorf("cost = %q, expected 3,20", row[7])
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"10.00", "10,00"},
		{"0.00", "0,00"},
		{"1234.56", "1234,56"},
	}
	for _, tt := range tests {
		if got := formatAmount(tt.in); got != tt.expected {
			t.Errorf("formatAmount(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
