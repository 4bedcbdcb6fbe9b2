// Package export renders reports as spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"stockbook/internal/core/types"
	"stockbook/internal/domain/reports"
)

// ContentType is the MIME type of the generated files.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// QuantityHeader names the quantity column per report flavor.
type QuantityHeader string

const (
	QuantitySold    QuantityHeader = "Sales Quantity"
	QuantityDamaged QuantityHeader = "Damage Quantity"
)

const sheetName = "Sheet1"

// WriteReport renders the report as an xlsx workbook to w. One row per
// product line plus a totals row.
func WriteReport(w io.Writer, report reports.Report, quantity QuantityHeader) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headers := []string{
		"Product Title",
		"SKU",
		"CTN Size",
		"Dealer Price",
		"Trade Price",
		"Retailer Price",
		string(quantity),
		"Current Stock",
		"Total Amount",
	}
	if err := setRow(f, 1, toAny(headers)); err != nil {
		return err
	}

	for i, line := range report.Lines {
		values := []any{
			line.Title,
			line.SKU,
			line.CtnSize,
			floatOf(line.DealerPrice),
			floatOf(line.TradePrice),
			floatOf(line.RetailerPrice),
			line.Quantity,
			line.Stock,
			floatOf(line.Amount),
		}
		if err := setRow(f, i+2, values); err != nil {
			return err
		}
	}

	totals := []any{
		"Total", nil, nil, nil, nil, nil,
		report.TotalQuantity,
		nil,
		floatOf(report.TotalAmount),
	}
	if err := setRow(f, len(report.Lines)+2, totals); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	for col, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func toAny(strs []string) []any {
	out := make([]any, len(strs))
	for i, s := range strs {
		out[i] = s
	}
	return out
}

func floatOf(m types.Money) float64 {
	f, _ := m.Float64()
	return f
}
