package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sainvoice/invoicecore/models"
)

func items(rows ...[2]float64) []models.LineItem {
	out := make([]models.LineItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.LineItem{Quantity: int(r[0]), UnitPrice: r[1]})
	}
	return out
}

func TestCompute_Scenario(t *testing.T) {
	// 2 x 100 + 1 x 50 with VAT on
	got := Compute(items([2]float64{2, 100}, [2]float64{1, 50}), true)

	assert.InDelta(t, 250.0, got.Subtotal, 1e-9)
	assert.InDelta(t, 37.5, got.VAT, 1e-9)
	assert.InDelta(t, 287.5, got.Total, 1e-9)
}

func TestCompute_NoVAT(t *testing.T) {
	got := Compute(items([2]float64{3, 199.99}, [2]float64{2, 0.01}), false)

	assert.InDelta(t, 599.99, got.Subtotal, 1e-9)
	assert.Equal(t, 0.0, got.VAT)
	assert.InDelta(t, got.Subtotal, got.Total, 1e-9)
}

func TestCompute_VATIsFifteenPercent(t *testing.T) {
	for _, sub := range []float64{0.01, 1, 123.45, 99999.99} {
		got := Compute(items([2]float64{1, sub}), true)
		assert.InDelta(t, sub*1.15, got.Total, 1e-9, "subtotal %v", sub)
	}
}

func TestCompute_Empty(t *testing.T) {
	got := Compute(nil, true)
	assert.Equal(t, Totals{}, got)
}

func TestCompute_ZeroQuantityRows(t *testing.T) {
	got := Compute(items([2]float64{0, 500}, [2]float64{2, 10}), false)
	assert.InDelta(t, 20.0, got.Subtotal, 1e-9)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "R 1,234.56", FormatCurrency(1234.56))
	assert.Equal(t, "R 0.00", FormatCurrency(0))
	assert.Equal(t, "R 287.50", FormatCurrency(287.5))
	assert.Equal(t, "R 1,000,000.00", FormatCurrency(1e6))
}
