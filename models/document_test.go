package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument_Defaults(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	doc := NewDocument(now)

	assert.Equal(t, DocumentTypeInvoice, doc.DocumentType)
	assert.Equal(t, TemplateModern, doc.Template)
	assert.Equal(t, PaymentMethodEFT, doc.PaymentMethod)
	assert.Equal(t, "INV-001", doc.InvoiceNumber)
	assert.Equal(t, "2025-01-15", doc.InvoiceDate)
	assert.Equal(t, "2025-02-14", doc.DueDate)
	assert.False(t, doc.IncludeVAT)

	require.Len(t, doc.LineItems, 1)
	assert.NotEmpty(t, doc.LineItems[0].ID)
	assert.Equal(t, 1, doc.LineItems[0].Quantity)
	assert.Equal(t, 0.0, doc.LineItems[0].UnitPrice)
}

func TestAddRemoveLineItem(t *testing.T) {
	doc := NewDocument(time.Now())
	first := doc.LineItems[0]

	added := doc.AddLineItem()
	require.Len(t, doc.LineItems, 2)
	assert.NotEqual(t, first.ID, added.ID)

	doc.RemoveLineItem(added.ID)
	require.Len(t, doc.LineItems, 1)
	assert.Equal(t, first.ID, doc.LineItems[0].ID)
}

func TestRemoveLineItem_LastItemIsNoop(t *testing.T) {
	doc := NewDocument(time.Now())
	require.Len(t, doc.LineItems, 1)

	doc.RemoveLineItem(doc.LineItems[0].ID)
	assert.Len(t, doc.LineItems, 1, "last item must never be removed")

	// a long removal sequence can never empty the document
	for i := 0; i < 5; i++ {
		doc.AddLineItem()
	}
	for i := 0; i < 20; i++ {
		doc.RemoveLineItem(doc.LineItems[0].ID)
	}
	assert.Len(t, doc.LineItems, 1)
}

func TestRemoveLineItem_UnknownIDIgnored(t *testing.T) {
	doc := NewDocument(time.Now())
	doc.AddLineItem()
	doc.RemoveLineItem("no-such-id")
	assert.Len(t, doc.LineItems, 2)
}

func TestUpdateLineItem(t *testing.T) {
	doc := NewDocument(time.Now())
	id := doc.LineItems[0].ID

	doc.UpdateLineItem(id, func(li *LineItem) {
		li.Description = "Design work"
		li.Quantity = 3
		li.UnitPrice = 450
	})

	assert.Equal(t, "Design work", doc.LineItems[0].Description)
	assert.Equal(t, 3, doc.LineItems[0].Quantity)
	assert.Equal(t, 450.0, doc.LineItems[0].UnitPrice)
}

func TestCoerceQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"5", 5},
		{" 2 ", 2},
		{"0", 0},
		{"", 1},
		{"abc", 1},
		{"-3", 1},
		{"2.5", 1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, CoerceQuantity(tc.in), "input %q", tc.in)
	}
}

func TestCoercePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"100", 100},
		{"99.99", 99.99},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"-10", 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, CoercePrice(tc.in), "input %q", tc.in)
	}
}

func TestDueDateLabel(t *testing.T) {
	doc := NewDocument(time.Now())
	assert.Equal(t, "Due Date", doc.DueDateLabel())
	assert.Equal(t, "Invoice", doc.Label())

	doc.DocumentType = DocumentTypeQuotation
	assert.Equal(t, "Valid Until", doc.DueDateLabel())
	assert.Equal(t, "Quotation", doc.Label())
}

func TestClone_DetachesLineItems(t *testing.T) {
	doc := NewDocument(time.Now())
	doc.LineItems[0].Description = "original"
	doc.LineItems[0].Quantity = 1

	snap := doc.Clone()
	doc.LineItems[0].Description = "mutated"
	doc.LineItems[0].Quantity = 99
	doc.AddLineItem()

	require.Len(t, snap.LineItems, 1)
	assert.Equal(t, "original", snap.LineItems[0].Description)
	assert.Equal(t, 1, snap.LineItems[0].Quantity)

	// and the other direction
	snap.LineItems[0].UnitPrice = 500
	assert.Equal(t, 0.0, doc.LineItems[0].UnitPrice)
}

func TestGeneratePaymentReference(t *testing.T) {
	doc := NewDocument(time.Now())
	doc.InvoiceNumber = "INV-001"
	doc.ClientName = "Acme Trading (Pty) Ltd"
	assert.Equal(t, "INV001-ACME", doc.GeneratePaymentReference())

	// the name is cut to four characters before stripping
	doc.ClientName = "A B C D"
	assert.Equal(t, "INV001-AB", doc.GeneratePaymentReference())

	doc.ClientName = ""
	assert.Equal(t, "INV001-REF", doc.GeneratePaymentReference())

	doc.ClientName = "  ()"
	assert.Equal(t, "INV001-REF", doc.GeneratePaymentReference())
}
