package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omidrezab/parsfx/pkg/models"
)

func TestAssembleEveryCodePresent(t *testing.T) {
	// Both sources empty: every tracked code still gets a record with all
	// fields missing.
	snap := Assemble(models.DefaultCodes(), nil, nil)

	require.Len(t, snap, 4)
	for _, code := range models.DefaultCodes() {
		rec := snap[code]
		require.NotNil(t, rec, "record for %s", code)
		for _, label := range models.Labels() {
			assert.False(t, rec.Field(label).Valid, "%s %s should be missing", code, label)
		}
	}
}

func TestAssembleMergesSources(t *testing.T) {
	quotes := map[models.Code]models.Quote{
		models.USD: {Symbol: models.USD, Price: 1050123.6, HasPrice: true, Name: "US Dollar"},
	}
	table := map[models.Code]map[models.Label]int64{
		models.USD: {models.CashBuy: 920000, models.CashSell: 930000},
		models.EUR: {models.RemitSell: 1150000},
	}

	snap := Assemble(models.DefaultCodes(), quotes, table)

	usd := snap[models.USD]
	assert.Equal(t, models.Int(1050124), usd.FreeMarket, "price rounds half up to whole rials")
	assert.Equal(t, models.Int(920000), usd.CashBuy)
	assert.Equal(t, models.Int(930000), usd.CashSell)
	assert.False(t, usd.RemitBuy.Valid)

	eur := snap[models.EUR]
	assert.False(t, eur.FreeMarket.Valid, "no quote means missing, not zero")
	assert.Equal(t, models.Int(1150000), eur.RemitSell)

	// Codes absent from both sources still appear.
	require.NotNil(t, snap[models.AED])
	require.NotNil(t, snap[models.CNY])
}

func TestAssembleQuoteWithoutPrice(t *testing.T) {
	quotes := map[models.Code]models.Quote{
		models.USD: {Symbol: models.USD, Name: "US Dollar"}, // HasPrice false
	}
	snap := Assemble(models.DefaultCodes(), quotes, nil)
	assert.False(t, snap[models.USD].FreeMarket.Valid)
}

func TestDiffIndicators(t *testing.T) {
	cases := []struct {
		name string
		prev models.Value
		curr models.Value
		want models.Indicator
	}{
		{"increased", models.Int(1000), models.Int(1050), models.Up},
		{"decreased", models.Int(1050), models.Int(1000), models.Down},
		{"unchanged", models.Int(1000), models.Int(1000), models.Same},
		{"prev missing", models.Value{}, models.Int(1000), models.Indeterminate},
		{"curr missing", models.Int(1000), models.Value{}, models.Indeterminate},
		{"both missing", models.Value{}, models.Value{}, models.Indeterminate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prev := models.Snapshot{models.USD: &models.Record{}}
			prev[models.USD].SetField(models.CashBuy, tc.prev)

			curr := models.Snapshot{models.USD: &models.Record{}}
			curr[models.USD].SetField(models.CashBuy, tc.curr)

			Diff(curr, prev)
			assert.Equal(t, tc.want, curr[models.USD].Change(models.CashBuy))
		})
	}
}

func TestDiffNilPrevious(t *testing.T) {
	// First run: no prior snapshot at all.
	curr := Assemble(models.DefaultCodes(), nil, map[models.Code]map[models.Label]int64{
		models.USD: {models.CashBuy: 920000},
	})

	Diff(curr, nil)

	for _, code := range models.DefaultCodes() {
		for _, label := range models.Labels() {
			assert.Equal(t, models.Indeterminate, curr[code].Change(label),
				"%s %s on first run", code, label)
		}
	}
}

func TestDiffCodeAbsentFromPrevious(t *testing.T) {
	prev := models.Snapshot{models.USD: &models.Record{CashBuy: models.Int(900000)}}

	curr := models.Snapshot{
		models.USD: &models.Record{CashBuy: models.Int(920000)},
		models.EUR: &models.Record{CashBuy: models.Int(1100000)},
	}
	Diff(curr, prev)

	assert.Equal(t, models.Up, curr[models.USD].Change(models.CashBuy))
	assert.Equal(t, models.Indeterminate, curr[models.EUR].Change(models.CashBuy))
}

func TestDiffIgnoresPriorChangeFields(t *testing.T) {
	// Indicators stored in the previous snapshot are not baselines.
	prev := models.Snapshot{models.USD: &models.Record{
		CashBuyChange: models.Up,
	}}
	curr := models.Snapshot{models.USD: &models.Record{CashBuy: models.Int(1000)}}

	Diff(curr, prev)
	assert.Equal(t, models.Indeterminate, curr[models.USD].Change(models.CashBuy))
}

func TestDiffEveryLabelGetsIndicator(t *testing.T) {
	curr := Assemble(models.DefaultCodes(), nil, nil)
	Diff(curr, models.Snapshot{})

	for _, code := range models.DefaultCodes() {
		for _, label := range models.Labels() {
			assert.NotEmpty(t, curr[code].Change(label), "%s %s has no indicator", code, label)
		}
	}
}
