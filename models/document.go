// Package models defines the invoice document types and their lifecycle
// helpers: the working document, line items, saved clients, drafts, the
// autosave snapshot, and the unlock entitlement record.
package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sainvoice/invoicecore/timex"
)

// DocumentType selects between an invoice and a quotation. The two share
// every field; only labels differ (a quotation's due date reads "Valid Until").
type DocumentType string

const (
	DocumentTypeInvoice   DocumentType = "invoice"
	DocumentTypeQuotation DocumentType = "quotation"
)

// TemplateType picks the visual template used by the renderer.
type TemplateType string

const (
	TemplateModern  TemplateType = "modern"
	TemplateClassic TemplateType = "classic"
	TemplateMinimal TemplateType = "minimal"
)

// PaymentMethod is how the client is expected to pay.
type PaymentMethod string

const (
	PaymentMethodEFT  PaymentMethod = "eft"
	PaymentMethodCash PaymentMethod = "cash"
)

// AccountType is the South African bank account classification.
// Empty means not specified.
type AccountType string

const (
	AccountTypeCheque  AccountType = "cheque"
	AccountTypeSavings AccountType = "savings"
)

// LineItem is one billable row. Items are owned by the document that
// contains them; the id only has to be unique within that document.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// NewLineItem returns an empty item with the UI defaults (quantity 1).
func NewLineItem() LineItem {
	return LineItem{ID: uuid.NewString(), Quantity: 1}
}

// InvoiceDocument is the full mutable record the user edits. The whole
// record is the unit of snapshotting; totals are never stored on it.
type InvoiceDocument struct {
	DocumentType DocumentType `json:"documentType"`
	Template     TemplateType `json:"template"`

	FreelancerName      string `json:"freelancerName"`
	FreelancerEmail     string `json:"freelancerEmail"`
	FreelancerPhone     string `json:"freelancerPhone"`
	FreelancerAddress   string `json:"freelancerAddress"`
	CompanyRegistration string `json:"companyRegistration"`

	PaymentMethod PaymentMethod `json:"paymentMethod"`
	BankName      string        `json:"bankName"`
	AccountNumber string        `json:"accountNumber"`
	BranchCode    string        `json:"branchCode"`
	AccountType   AccountType   `json:"accountType"`

	ClientName    string `json:"clientName"`
	ClientEmail   string `json:"clientEmail"`
	ClientAddress string `json:"clientAddress"`

	InvoiceNumber    string `json:"invoiceNumber"`
	InvoiceDate      string `json:"invoiceDate"`
	DueDate          string `json:"dueDate"`
	PaymentReference string `json:"paymentReference"`

	IncludeVAT bool   `json:"includeVAT"`
	VATNumber  string `json:"vatNumber"`

	LineItems []LineItem `json:"lineItems"`

	Notes string `json:"notes"`
}

// DefaultDueDays is the payment term applied to new documents.
const DefaultDueDays = 30

// NewDocument returns the blank default document: an invoice on the modern
// template, dated now with a 30-day term, and a single empty line item.
func NewDocument(now time.Time) InvoiceDocument {
	invoiceDate := timex.ISODate(now)
	dueDate, _ := timex.PlusDays(invoiceDate, DefaultDueDays)
	return InvoiceDocument{
		DocumentType:  DocumentTypeInvoice,
		Template:      TemplateModern,
		PaymentMethod: PaymentMethodEFT,
		InvoiceNumber: "INV-001",
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		LineItems:     []LineItem{NewLineItem()},
		Notes:         "Payment is due within 30 days. Thank you for your business!",
	}
}

// Clone returns a deep copy of the document. The line items get their
// own backing array, so a snapshot never aliases the record it was taken
// from. Use it at every snapshot boundary (drafts, autosave, loads).
func (d *InvoiceDocument) Clone() InvoiceDocument {
	out := *d
	out.LineItems = make([]LineItem, len(d.LineItems))
	copy(out.LineItems, d.LineItems)
	return out
}

// IsQuotation reports whether the document is a quotation.
func (d *InvoiceDocument) IsQuotation() bool {
	return d.DocumentType == DocumentTypeQuotation
}

// Label returns the human document label: "Invoice" or "Quotation".
func (d *InvoiceDocument) Label() string {
	if d.IsQuotation() {
		return "Quotation"
	}
	return "Invoice"
}

// DueDateLabel returns the label under which DueDate is shown. The field is
// the same either way; only its meaning shifts with the document type.
func (d *InvoiceDocument) DueDateLabel() string {
	if d.IsQuotation() {
		return "Valid Until"
	}
	return "Due Date"
}

// AddLineItem appends a fresh empty item and returns it.
func (d *InvoiceDocument) AddLineItem() LineItem {
	item := NewLineItem()
	d.LineItems = append(d.LineItems, item)
	return item
}

// RemoveLineItem deletes the item with the given id. Removing the last
// remaining item is a no-op: a document always keeps at least one row.
// Unknown ids are ignored.
func (d *InvoiceDocument) RemoveLineItem(id string) {
	if len(d.LineItems) <= 1 {
		return
	}
	for i, item := range d.LineItems {
		if item.ID == id {
			d.LineItems = append(d.LineItems[:i], d.LineItems[i+1:]...)
			return
		}
	}
}

// UpdateLineItem applies fn to the item with the given id, if present.
func (d *InvoiceDocument) UpdateLineItem(id string, fn func(*LineItem)) {
	for i := range d.LineItems {
		if d.LineItems[i].ID == id {
			fn(&d.LineItems[i])
			return
		}
	}
}

// CoerceQuantity parses raw quantity input, falling back to 1 on anything
// that is not a non-negative integer.
func CoerceQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 1
	}
	return n
}

// CoercePrice parses raw unit-price input, falling back to 0 on anything
// that is not a non-negative number.
func CoercePrice(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// GeneratePaymentReference derives an EFT reference from the invoice number
// and the first characters of the client name, e.g. "INV001-ACME".
// The client part takes the first four characters of the name and then
// drops non-alphanumerics, so "A B C D" contributes "AB".
func (d *InvoiceDocument) GeneratePaymentReference() string {
	num := alnumUpper(d.InvoiceNumber)
	client := []rune(d.ClientName)
	if len(client) > 4 {
		client = client[:4]
	}
	suffix := alnumUpper(string(client))
	if suffix == "" {
		suffix = "REF"
	}
	return num + "-" + suffix
}

func alnumUpper(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
