// Package models defines the data types shared across parsfx: tracked
// currency codes, optional integer rate values, per-currency records, and
// the persisted snapshot document.
package models

import (
	"bytes"
	"strconv"
	"strings"
)

// Code identifies a tracked currency.
type Code string

// Tracked currency codes.
const (
	USD Code = "USD"
	EUR Code = "EUR"
	AED Code = "AED"
	CNY Code = "CNY"
)

// DefaultCodes returns the default tracked currency set.
func DefaultCodes() []Code {
	return []Code{USD, EUR, AED, CNY}
}

// Slug returns the lowercase token used to attribute rate-table rows to this
// code. Matching is by containment: a row slug "usdx" still maps to USD.
func (c Code) Slug() string {
	return strings.ToLower(string(c))
}

// Label names one tracked rate field of a record.
type Label string

// Tracked field labels.
const (
	FreeMarket Label = "Free Market"
	CashBuy    Label = "Cash Buy"
	CashSell   Label = "Cash Sell"
	RemitBuy   Label = "Remit Buy"
	RemitSell  Label = "Remit Sell"
)

// Labels returns all tracked field labels in display order.
func Labels() []Label {
	return []Label{FreeMarket, CashBuy, CashSell, RemitBuy, RemitSell}
}

// Indicator is the day-over-day change marker for one field.
type Indicator string

// Change indicators.
const (
	Up            Indicator = "↑"
	Down          Indicator = "↓"
	Same          Indicator = "="
	Indeterminate Indicator = "?"
)

// Value is an optional integer rate in rials. The zero value is "missing".
// Missing values serialize as JSON null, never as zero.
type Value struct {
	Rial  int64
	Valid bool
}

// Int returns a present Value.
func Int(n int64) Value {
	return Value{Rial: n, Valid: true}
}

var jsonNull = []byte("null")

// MarshalJSON writes the integer, or null when the value is missing.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return jsonNull, nil
	}
	return []byte(strconv.FormatInt(v.Rial, 10)), nil
}

// UnmarshalJSON reads an integer or null. Anything that does not parse as an
// integer (strings, fractions, malformed tokens) is treated as missing rather
// than as an error, so a hand-edited or corrupted prior snapshot degrades to
// Indeterminate comparisons instead of failing the run.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, jsonNull) {
		*v = Value{}
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		*v = Value{}
		return nil
	}
	*v = Value{Rial: n, Valid: true}
	return nil
}

// Quote is the market data source's raw output for one currency: a possibly
// fractional free-market price and a display name. Absent or non-numeric
// prices keep HasPrice false; they are never coerced to zero.
type Quote struct {
	Symbol   Code
	Price    float64
	HasPrice bool
	Name     string
}

// Record is the canonical per-currency record: five named optional rate
// fields and, after diffing, five companion change indicators keyed by the
// field label plus a "Change" suffix.
type Record struct {
	FreeMarket Value `json:"Free Market"`
	CashBuy    Value `json:"Cash Buy"`
	CashSell   Value `json:"Cash Sell"`
	RemitBuy   Value `json:"Remit Buy"`
	RemitSell  Value `json:"Remit Sell"`

	FreeMarketChange Indicator `json:"Free Market Change"`
	CashBuyChange    Indicator `json:"Cash Buy Change"`
	CashSellChange   Indicator `json:"Cash Sell Change"`
	RemitBuyChange   Indicator `json:"Remit Buy Change"`
	RemitSellChange  Indicator `json:"Remit Sell Change"`
}

// Field returns the rate value stored under the given label.
func (r *Record) Field(l Label) Value {
	switch l {
	case FreeMarket:
		return r.FreeMarket
	case CashBuy:
		return r.CashBuy
	case CashSell:
		return r.CashSell
	case RemitBuy:
		return r.RemitBuy
	case RemitSell:
		return r.RemitSell
	}
	return Value{}
}

// SetField stores a rate value under the given label.
func (r *Record) SetField(l Label, v Value) {
	switch l {
	case FreeMarket:
		r.FreeMarket = v
	case CashBuy:
		r.CashBuy = v
	case CashSell:
		r.CashSell = v
	case RemitBuy:
		r.RemitBuy = v
	case RemitSell:
		r.RemitSell = v
	}
}

// Change returns the indicator stored for the given label.
func (r *Record) Change(l Label) Indicator {
	switch l {
	case FreeMarket:
		return r.FreeMarketChange
	case CashBuy:
		return r.CashBuyChange
	case CashSell:
		return r.CashSellChange
	case RemitBuy:
		return r.RemitBuyChange
	case RemitSell:
		return r.RemitSellChange
	}
	return ""
}

// SetChange stores the indicator for the given label.
func (r *Record) SetChange(l Label, in Indicator) {
	switch l {
	case FreeMarket:
		r.FreeMarketChange = in
	case CashBuy:
		r.CashBuyChange = in
	case CashSell:
		r.CashSellChange = in
	case RemitBuy:
		r.RemitBuyChange = in
	case RemitSell:
		r.RemitSellChange = in
	}
}

// Snapshot maps each tracked code to its record. It is both the run's output
// document and, once persisted, the next run's comparison baseline. Change
// indicators loaded from a prior snapshot are ignored as baselines; only the
// numeric fields are compared.
type Snapshot map[Code]*Record
