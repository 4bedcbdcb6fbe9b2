package dto

import (
	"time"

	"stockbook/internal/domain/ledger"
	"stockbook/internal/domain/reports"
)

// ReportLineResponse is one aggregated product row.
type ReportLineResponse struct {
	ProductID     string  `json:"productId"`
	Title         string  `json:"title"`
	SKU           string  `json:"sku"`
	Category      string  `json:"category"`
	CtnSize       int64   `json:"ctnSize"`
	Quantity      int64   `json:"quantity"`
	DealerPrice   float64 `json:"dealerPrice"`
	TradePrice    float64 `json:"tradePrice"`
	RetailerPrice float64 `json:"retailerPrice"`
	UnitPrice     float64 `json:"unitPrice"`
	Amount        float64 `json:"amount"`
	Stock         int64   `json:"stock"`
}

// ReportResponse is the wire form of an aggregated report.
type ReportResponse struct {
	From          string               `json:"from"`
	To            string               `json:"to"`
	Lines         []ReportLineResponse `json:"lines"`
	TotalQuantity int64                `json:"totalQuantity"`
	TotalAmount   float64              `json:"totalAmount"`
}

// FromReport converts a report to wire form.
func FromReport(r reports.Report) ReportResponse {
	out := ReportResponse{
		From:          r.Range.Start.Format(DateLayout),
		To:            r.Range.End.Format(DateLayout),
		Lines:         make([]ReportLineResponse, 0, len(r.Lines)),
		TotalQuantity: r.TotalQuantity,
	}
	out.TotalAmount, _ = r.TotalAmount.Float64()
	for _, line := range r.Lines {
		lr := ReportLineResponse{
			ProductID: line.ProductID,
			Title:     line.Title,
			SKU:       line.SKU,
			Category:  line.Category,
			CtnSize:   line.CtnSize,
			Quantity:  line.Quantity,
			Stock:     line.Stock,
		}
		lr.DealerPrice, _ = line.DealerPrice.Float64()
		lr.TradePrice, _ = line.TradePrice.Float64()
		lr.RetailerPrice, _ = line.RetailerPrice.Float64()
		lr.UnitPrice, _ = line.UnitPrice.Float64()
		lr.Amount, _ = line.Amount.Float64()
		out.Lines = append(out.Lines, lr)
	}
	return out
}

// EntryResponse is the wire form of a raw ledger entry.
type EntryResponse struct {
	ID        string    `json:"docId"`
	ProductID string    `json:"id"`
	Kind      string    `json:"kind"`
	Quantity  int64     `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
	SRName    string    `json:"srName,omitempty"`
	Title     string    `json:"title"`
	SKU       string    `json:"sku"`
}

// FromEntries converts ledger entries to wire form.
func FromEntries(entries []ledger.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryResponse{
			ID:        e.ID,
			ProductID: e.ProductID,
			Kind:      string(e.Kind),
			Quantity:  e.Quantity,
			Timestamp: e.Timestamp,
			SRName:    e.SRName,
			Title:     e.Snapshot.Title,
			SKU:       e.Snapshot.SKU,
		})
	}
	return out
}
