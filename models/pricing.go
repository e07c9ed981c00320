package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceMap holds the current unit prices of the referenced materials, read
// once per create request.
type PriceMap map[uuid.UUID]decimal.Decimal

// LoadPrices builds a PriceMap for the given material ids from the catalogue.
func LoadPrices(materials []Material) PriceMap {
	prices := make(PriceMap, len(materials))
	for _, m := range materials {
		prices[m.ID] = m.UnitPrice
	}
	return prices
}

// SnapshotPrice resolves the unit price captured on a line item. A material
// missing from the map snapshots as zero; deactivating or deleting a material
// later must not corrupt records priced while it existed.
func (p PriceMap) SnapshotPrice(materialID uuid.UUID) decimal.Decimal {
	if price, ok := p[materialID]; ok {
		return price
	}
	return decimal.Zero
}
