// Package reconcile merges the two source outputs into canonical per-currency
// records and computes day-over-day change indicators against the previous
// run's snapshot.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/omidrezab/parsfx/pkg/models"
)

// Assemble builds one record per tracked code from the market quotes and the
// extracted rate-table values. A code absent from either source keeps the
// affected fields missing; partial records are valid output, and every
// tracked code appears in the result regardless of what the sources returned.
func Assemble(codes []models.Code, quotes map[models.Code]models.Quote, table map[models.Code]map[models.Label]int64) models.Snapshot {
	snap := make(models.Snapshot, len(codes))

	for _, code := range codes {
		rec := &models.Record{}

		if q, ok := quotes[code]; ok && q.HasPrice {
			rec.SetField(models.FreeMarket, models.Int(roundPrice(q.Price)))
		}

		for label, rials := range table[code] {
			rec.SetField(label, models.Int(rials))
		}

		snap[code] = rec
	}

	return snap
}

// Diff annotates every record in current with one indicator per tracked
// label, comparing against the same code and label in previous. Any side
// that is missing — the value, the record, or the whole previous snapshot —
// makes that field Indeterminate. Change indicators carried inside previous
// never participate; only numeric fields are baselines.
func Diff(current, previous models.Snapshot) {
	for code, rec := range current {
		var prev *models.Record
		if previous != nil {
			prev = previous[code]
		}

		for _, label := range models.Labels() {
			rec.SetChange(label, compare(prevField(prev, label), rec.Field(label)))
		}
	}
}

// compare derives the indicator for one field.
func compare(prev, curr models.Value) models.Indicator {
	if !prev.Valid || !curr.Valid {
		return models.Indeterminate
	}
	switch {
	case curr.Rial > prev.Rial:
		return models.Up
	case curr.Rial < prev.Rial:
		return models.Down
	default:
		return models.Same
	}
}

// prevField reads a label off a possibly-nil previous record.
func prevField(prev *models.Record, label models.Label) models.Value {
	if prev == nil {
		return models.Value{}
	}
	return prev.Field(label)
}

// roundPrice rounds a fractional market price to whole rials, half up —
// the same rounding rule the extractor applies to table values.
func roundPrice(price float64) int64 {
	return decimal.NewFromFloat(price).Round(0).IntPart()
}
