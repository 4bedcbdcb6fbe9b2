package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"stockbook/internal/core/types"
	"stockbook/internal/domain/reports"
)

func TestWriteReport(t *testing.T) {
	report := reports.Report{
		Lines: []reports.Line{
			{
				ProductID:     "p1",
				Title:         "Biscuit 200g",
				SKU:           "BIS-200",
				CtnSize:       24,
				DealerPrice:   types.MustMoney("8.25"),
				TradePrice:    types.MustMoney("9.00"),
				RetailerPrice: types.MustMoney("10.50"),
				UnitPrice:     types.MustMoney("9.00"),
				Quantity:      8,
				Stock:         42,
				Amount:        types.MustMoney("72.00"),
			},
			{
				ProductID: "p2",
				Title:     "Juice 1L",
				SKU:       "JUI-1L",
				Quantity:  3,
				Amount:    types.MustMoney("75.00"),
			},
		},
		TotalQuantity: 11,
		TotalAmount:   types.MustMoney("147.00"),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, report, QuantitySold))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	// Header, two lines, totals.
	require.Len(t, rows, 4)

	assert.Equal(t, "Product Title", rows[0][0])
	assert.Equal(t, "Sales Quantity", rows[0][6])

	assert.Equal(t, "Biscuit 200g", rows[1][0])
	assert.Equal(t, "BIS-200", rows[1][1])
	assert.Equal(t, "8", rows[1][6])

	assert.Equal(t, "Total", rows[3][0])
	assert.Equal(t, "11", rows[3][6])
	assert.Equal(t, "147", rows[3][8])
}

func TestWriteReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, reports.Report{TotalAmount: types.Zero()}, QuantityDamaged))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Damage Quantity", rows[0][6])
	assert.Equal(t, "Total", rows[1][0])
}
