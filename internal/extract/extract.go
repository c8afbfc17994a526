// Package extract parses the central-bank HTML document into per-currency
// rate-category values. Tables are recognized by their Persian heading; rows
// are attributed to currencies by slug containment; raw values are in tenths
// of a rial and are normalized to whole rials, rounding half up.
package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/omidrezab/parsfx/pkg/models"
)

// categoryHeadings maps recognized table headings to canonical labels.
// Tables with any other heading are ignored entirely.
var categoryHeadings = map[string]models.Label{
	"نرخ خرید":       models.CashBuy,
	"نرخ فروش":       models.CashSell,
	"نرخ خرید حواله": models.RemitBuy,
	"نرخ فروش حواله": models.RemitSell,
}

// unitDivisor converts the site's raw values (tenths of a rial) to rials.
var unitDivisor = decimal.NewFromInt(10)

// Extractor turns raw rate-table HTML into per-currency category values.
type Extractor struct {
	codes []models.Code
}

// New creates an extractor for the given tracked currency codes.
func New(codes []models.Code) *Extractor {
	return &Extractor{codes: codes}
}

// Parse extracts category values for tracked currencies from the document.
// Unrecognized tables, unattributable rows, and malformed numeric cells are
// all skipped silently: a page with nothing usable yields an empty map, not
// an error. Duplicate (currency, label) pairs are last-write-wins.
func (e *Extractor) Parse(html string) (map[models.Code]map[models.Label]int64, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse rate table HTML: %w", err)
	}

	out := make(map[models.Code]map[models.Label]int64)

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		label, ok := tableLabel(table)
		if !ok {
			return
		}

		table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			code, ok := e.matchCode(row)
			if !ok {
				return
			}
			raw, ok := rowValue(row)
			if !ok {
				return
			}
			rials, ok := Normalize(raw)
			if !ok {
				return
			}
			if out[code] == nil {
				out[code] = make(map[models.Label]int64)
			}
			out[code][label] = rials
		})
	})

	return out, nil
}

// tableLabel resolves a table to its canonical label via the heading cell.
// The heading is the first <th>, falling back to the <caption>.
func tableLabel(table *goquery.Selection) (models.Label, bool) {
	heading := strings.TrimSpace(table.Find("th").First().Text())
	if heading == "" {
		heading = strings.TrimSpace(table.Find("caption").Text())
	}
	label, ok := categoryHeadings[heading]
	return label, ok
}

// matchCode attributes a row to a tracked currency via its identifier
// attribute. Matching is case-insensitive containment: a slug "usdx"
// still maps to USD.
func (e *Extractor) matchCode(row *goquery.Selection) (models.Code, bool) {
	slug, ok := row.Attr("data-symbol")
	if !ok {
		slug, ok = row.Attr("id")
	}
	if !ok || slug == "" {
		return "", false
	}

	slug = strings.ToLower(slug)
	for _, c := range e.codes {
		if strings.Contains(slug, c.Slug()) {
			return c, true
		}
	}
	return "", false
}

// rowValue reads the row's raw numeric text: the data-price attribute when
// present, otherwise the text of the last cell.
func rowValue(row *goquery.Selection) (string, bool) {
	if v, ok := row.Attr("data-price"); ok {
		return v, true
	}
	cell := row.Find("td").Last()
	if cell.Length() == 0 {
		return "", false
	}
	return cell.Text(), true
}

// Normalize converts the site's raw numeric text to whole rials: thousands
// separators stripped, parsed as an integer, divided by ten, rounded half up.
// Raw "12345" → 1235. Malformed text reports false instead of an error.
func Normalize(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.ReplaceAll(raw, "٬", "") // Persian thousands separator
	if raw == "" {
		return 0, false
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}

	return decimal.NewFromInt(n).Div(unitDivisor).Round(0).IntPart(), true
}
