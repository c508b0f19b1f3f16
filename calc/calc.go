// Package calc computes document totals and formats currency amounts.
// Totals are derived values: they are recomputed from the line items on
// every use and never stored, so they cannot go stale.
package calc

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/sainvoice/invoicecore/models"
)

// VATRate is the flat South African VAT rate applied when a document
// opts in. It is not configurable per call.
const VATRate = 0.15

// Totals holds the derived monetary summary of a document.
type Totals struct {
	Subtotal float64
	VAT      float64
	Total    float64
}

// Compute derives subtotal, VAT and total from the line items. Quantities
// and prices are taken as-is; input coercion happens at the field level.
func Compute(items []models.LineItem, includeVAT bool) Totals {
	var t Totals
	for _, item := range items {
		t.Subtotal += float64(item.Quantity) * item.UnitPrice
	}
	if includeVAT {
		t.VAT = t.Subtotal * VATRate
	}
	t.Total = t.Subtotal + t.VAT
	return t
}

var printer = message.NewPrinter(language.English)

// FormatCurrency renders an amount as South African Rand, grouped with two
// decimal places, e.g. "R 1,234.56". Rounding happens here only; stored
// values keep full precision.
func FormatCurrency(amount float64) string {
	return printer.Sprintf("R %v", number.Decimal(amount, number.Scale(2)))
}
