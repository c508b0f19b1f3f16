package render

import (
	"net/url"
	"strings"

	"github.com/sainvoice/invoicecore/calc"
	"github.com/sainvoice/invoicecore/models"
)

// ShareMessage builds the plain-text summary used for the external share
// action. No machine-readable structure is guaranteed.
func ShareMessage(doc models.InvoiceDocument, totals calc.Totals) string {
	lines := []string{
		"\U0001F4C4 *" + doc.Label() + " #" + orDefault(doc.InvoiceNumber, "N/A") + "*",
		"",
		"From: " + orDefault(doc.FreelancerName, "Your Business"),
		"To: " + orDefault(doc.ClientName, "Client"),
		"",
		"*Total: " + calc.FormatCurrency(totals.Total) + "*",
	}
	if doc.IncludeVAT {
		lines = append(lines, "(Incl. VAT: "+calc.FormatCurrency(totals.VAT)+")")
	}
	lines = append(lines,
		"",
		doc.DueDateLabel()+": "+doc.DueDate,
		"",
		"---",
		"I'll send the PDF shortly.",
	)
	return strings.Join(lines, "\n")
}

// WhatsAppURL wraps the share message in a wa.me link.
func WhatsAppURL(doc models.InvoiceDocument, totals calc.Totals) string {
	return "https://wa.me/?text=" + escape(ShareMessage(doc, totals))
}

// EmailSubject builds the subject line for the pre-filled compose action.
func EmailSubject(doc models.InvoiceDocument) string {
	return doc.Label() + " #" + orDefault(doc.InvoiceNumber, "N/A") +
		" from " + orDefault(doc.FreelancerName, "Your Business")
}

// EmailBody builds the body for the pre-filled compose action.
func EmailBody(doc models.InvoiceDocument, totals calc.Totals) string {
	lines := []string{
		"Dear " + orDefault(doc.ClientName, "Client") + ",",
		"",
		"Please find attached " + strings.ToLower(doc.Label()) + " #" + orDefault(doc.InvoiceNumber, "N/A") + ".",
		"",
		"Total Amount: " + calc.FormatCurrency(totals.Total),
		doc.DueDateLabel() + ": " + doc.DueDate,
		"",
		"Please let me know if you have any questions.",
		"",
		"Kind regards,",
		orDefault(doc.FreelancerName, "Your Name"),
	}
	if doc.FreelancerEmail != "" {
		lines = append(lines, "", doc.FreelancerEmail)
	}
	if doc.FreelancerPhone != "" {
		lines = append(lines, "Tel: "+doc.FreelancerPhone)
	}
	return strings.Join(lines, "\n")
}

// MailtoURL builds a mailto compose link addressed to the client.
func MailtoURL(doc models.InvoiceDocument, totals calc.Totals) string {
	return "mailto:" + doc.ClientEmail +
		"?subject=" + escape(EmailSubject(doc)) +
		"&body=" + escape(EmailBody(doc, totals))
}

// escape percent-encodes for URL query components. Spaces become %20
// rather than +, which mail and messaging clients expect.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
