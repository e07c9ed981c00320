package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestSnapshotPrice(t *testing.T) {
	known := uuid.New()
	unknown := uuid.New()

	prices := LoadPrices([]Material{
		{ID: known, Name: "Rohrschelle 18", UnitPrice: decimal.RequireFromString("2.50")},
	})

	if got := prices.SnapshotPrice(known); !got.Equal(decimal.RequireFromString("2.50")) {
		t.Errorf("SnapshotPrice(known) = %s, expected 2.50", got)
	}
	// Missing materials snapshot as zero instead of failing the record.
	if got := prices.SnapshotPrice(unknown); !got.IsZero() {
		t.Errorf("SnapshotPrice(unknown) = %s, expected 0", got)
	}
}

func TestSnapshotPrice_UnaffectedByLaterEdits(t *testing.T) {
	id := uuid.New()
	material := Material{ID: id, Name: "Bogen 90° 18", UnitPrice: decimal.RequireFromString("1.20")}

	prices := LoadPrices([]Material{material})
	item := SubmissionItem{MaterialID: id, Qty: 3, UnitPrice: prices.SnapshotPrice(id)}

	// Price edit after the snapshot. The captured line item must not move.
	material.UnitPrice = decimal.RequireFromString("9.99")

	if !item.UnitPrice.Equal(decimal.RequireFromString("1.20")) {
		t.Errorf("item price = %s, expected snapshot 1.20", item.UnitPrice)
	}
	if !item.Cost().Equal(decimal.RequireFromString("3.60")) {
		t.Errorf("item cost = %s, expected 3.60", item.Cost())
	}
}
