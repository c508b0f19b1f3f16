package render

import (
	"strings"
	"time"

	"github.com/sainvoice/invoicecore/models"
	"github.com/sainvoice/invoicecore/timex"
)

// FileName builds the download name for a generated PDF:
// "<sanitized invoice number>_<ISO date>.pdf". The invoice number keeps
// only [A-Za-z0-9-_]; "Invoice" stands in when nothing survives, and the
// document date falls back to today.
func FileName(doc models.InvoiceDocument, now time.Time) string {
	num := sanitize(doc.InvoiceNumber)
	if num == "" {
		num = "Invoice"
	}
	date := doc.InvoiceDate
	if _, err := time.Parse(timex.ISODateLayout, date); err != nil {
		date = timex.ISODate(now)
	}
	return num + "_" + date + ".pdf"
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
