package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sainvoice/invoicecore/calc"
	"github.com/sainvoice/invoicecore/models"
)

func TestShareMessage_Invoice(t *testing.T) {
	doc := sampleDocument()
	totals := calc.Compute(doc.LineItems, doc.IncludeVAT)

	msg := ShareMessage(doc, totals)
	assert.Contains(t, msg, "*Invoice #INV-001*")
	assert.Contains(t, msg, "From: Thandi Nkosi")
	assert.Contains(t, msg, "To: Acme Trading")
	assert.Contains(t, msg, "*Total: R 287.50*")
	assert.Contains(t, msg, "(Incl. VAT: R 37.50)")
	assert.Contains(t, msg, "Due Date: "+doc.DueDate)
}

func TestShareMessage_QuotationWithoutVAT(t *testing.T) {
	doc := sampleDocument()
	doc.DocumentType = models.DocumentTypeQuotation
	doc.IncludeVAT = false
	totals := calc.Compute(doc.LineItems, doc.IncludeVAT)

	msg := ShareMessage(doc, totals)
	assert.Contains(t, msg, "*Quotation #INV-001*")
	assert.Contains(t, msg, "Valid Until: "+doc.DueDate)
	assert.NotContains(t, msg, "Incl. VAT")
}

func TestShareMessage_EmptyFieldsFallBack(t *testing.T) {
	var doc models.InvoiceDocument
	msg := ShareMessage(doc, calc.Totals{})
	assert.Contains(t, msg, "#N/A")
	assert.Contains(t, msg, "From: Your Business")
	assert.Contains(t, msg, "To: Client")
}

func TestEmailSubjectAndBody(t *testing.T) {
	doc := sampleDocument()
	totals := calc.Compute(doc.LineItems, doc.IncludeVAT)

	assert.Equal(t, "Invoice #INV-001 from Thandi Nkosi", EmailSubject(doc))

	body := EmailBody(doc, totals)
	assert.True(t, strings.HasPrefix(body, "Dear Acme Trading,"))
	assert.Contains(t, body, "attached invoice #INV-001")
	assert.Contains(t, body, "Total Amount: R 287.50")
	assert.Contains(t, body, "Kind regards,\nThandi Nkosi")
	assert.Contains(t, body, "thandi@example.co.za")
}

func TestMailtoURL(t *testing.T) {
	doc := sampleDocument()
	totals := calc.Compute(doc.LineItems, doc.IncludeVAT)

	u := MailtoURL(doc, totals)
	assert.True(t, strings.HasPrefix(u, "mailto:accounts@acme.co.za?subject="))
	assert.NotContains(t, u, "+", "spaces must encode as %20 for mail clients")
	assert.Contains(t, u, "&body=")
}

func TestWhatsAppURL(t *testing.T) {
	doc := sampleDocument()
	u := WhatsAppURL(doc, calc.Totals{})
	assert.True(t, strings.HasPrefix(u, "https://wa.me/?text="))
}
