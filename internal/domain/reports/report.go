// Package reports reduces ledger entries into per-product summaries over a
// date range.
package reports

import (
	"sort"

	"stockbook/internal/core/daterange"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/ledger"
)

// Line is one product's aggregated movement within a report.
type Line struct {
	ProductID string      `json:"productId"`
	Title     string      `json:"title"`
	SKU       string      `json:"sku"`
	Category  string      `json:"category"`
	CtnSize   int64       `json:"ctnSize"`
	Quantity  int64       `json:"quantity"`

	DealerPrice   types.Money `json:"dealerPrice"`
	TradePrice    types.Money `json:"tradePrice"`
	RetailerPrice types.Money `json:"retailerPrice"`

	// UnitPrice is the price the report values this line at, picked by the
	// report's PriceSelector from the prices above.
	UnitPrice types.Money `json:"unitPrice"`
	Amount    types.Money `json:"amount"`
	// Stock is the product's stock level captured by the earliest entry in
	// the range, kept for the export's current-stock column.
	Stock int64 `json:"stock"`
}

// Report is an aggregated view over a date range.
type Report struct {
	Range         daterange.Range `json:"range"`
	Lines         []Line          `json:"lines"`
	TotalQuantity int64           `json:"totalQuantity"`
	TotalAmount   types.Money     `json:"totalAmount"`
}

// PriceSelector picks the unit price a report values entries at.
type PriceSelector func(ledger.Snapshot) types.Money

// TradePrice values lines at the trade price, the default for sales and
// product reports.
func TradePrice(s ledger.Snapshot) types.Money { return s.TradePrice }

// DealerPrice values lines at the dealer price, used for damage reports
// where the loss is the procurement cost.
func DealerPrice(s ledger.Snapshot) types.Money { return s.DealerPrice }

// Aggregate reduces entries into one line per product. Descriptive fields
// come from the first entry seen for each product, so a mid-range price edit
// does not split a product across lines. Lines are sorted by title.
func Aggregate(rng daterange.Range, entries []ledger.Entry, price PriceSelector) Report {
	report := Report{Range: rng, TotalAmount: types.Zero()}

	byProduct := make(map[string]*Line)
	order := make([]string, 0, len(entries))

	for _, e := range entries {
		line, ok := byProduct[e.ProductID]
		if !ok {
			line = &Line{
				ProductID:     e.ProductID,
				Title:         e.Snapshot.Title,
				SKU:           e.Snapshot.SKU,
				Category:      e.Snapshot.Category,
				CtnSize:       e.Snapshot.CtnSize,
				DealerPrice:   e.Snapshot.DealerPrice,
				TradePrice:    e.Snapshot.TradePrice,
				RetailerPrice: e.Snapshot.RetailerPrice,
				UnitPrice:     price(e.Snapshot),
				Stock:         e.Snapshot.Stock,
				Amount:        types.Zero(),
			}
			byProduct[e.ProductID] = line
			order = append(order, e.ProductID)
		}
		line.Quantity += e.Quantity
		line.Amount = line.Amount.Add(e.Amount(line.UnitPrice))
	}

	report.Lines = make([]Line, 0, len(order))
	for _, id := range order {
		line := byProduct[id]
		report.Lines = append(report.Lines, *line)
		report.TotalQuantity += line.Quantity
		report.TotalAmount = report.TotalAmount.Add(line.Amount)
	}

	sort.Slice(report.Lines, func(i, j int) bool {
		return report.Lines[i].Title < report.Lines[j].Title
	})
	return report
}

// Dedupe drops entries whose ID was already seen, keeping the first
// occurrence. Entries without an ID are kept as-is.
func Dedupe(entries []ledger.Entry) []ledger.Entry {
	seen := make(map[string]bool, len(entries))
	out := entries[:0:0]
	for _, e := range entries {
		if e.ID != "" {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
		}
		out = append(out, e)
	}
	return out
}
