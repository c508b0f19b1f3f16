package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/sainvoice/invoicecore/calc"
	"github.com/sainvoice/invoicecore/entitlement"
	"github.com/sainvoice/invoicecore/models"
	"github.com/sainvoice/invoicecore/timex"
)

// WatermarkText is printed on documents generated while locked.
const WatermarkText = "Generated with SA Invoice Generator"

type rgb struct{ r, g, b int }

// template accent colors
var templateAccents = map[models.TemplateType]rgb{
	models.TemplateModern:  {16, 185, 129},
	models.TemplateClassic: {30, 64, 175},
	models.TemplateMinimal: {55, 65, 81},
}

// PDFRenderer renders an A4 portrait PDF with gofpdf.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

// Render lays the document out and returns the PDF bytes. A failure
// leaves no partial output behind.
func (r *PDFRenderer) Render(ctx context.Context, in Input) ([]byte, error) {
	doc := in.Document
	accent, ok := templateAccents[doc.Template]
	if !ok {
		accent = templateAccents[models.TemplateModern]
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// header: logo (when allowed), document label and number
	if in.LogoDataURL != "" {
		r.drawLogo(pdf, in.LogoDataURL)
	}

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(accent.r, accent.g, accent.b)
	pdf.CellFormat(0, 10, doc.Label(), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(0, 6, "#"+doc.InvoiceNumber, "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// issuer and client blocks
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(95, 5, "From", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 5, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	fromLines := nonEmpty(doc.FreelancerName, doc.FreelancerEmail, doc.FreelancerPhone, doc.FreelancerAddress, doc.CompanyRegistration)
	toLines := nonEmpty(doc.ClientName, doc.ClientEmail, doc.ClientAddress)
	for i := 0; i < max(len(fromLines), len(toLines)); i++ {
		pdf.CellFormat(95, 5, lineAt(fromLines, i), "", 0, "L", false, 0, "")
		pdf.CellFormat(95, 5, lineAt(toLines, i), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// dates
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(95, 5, "Date: "+timex.FormatLong(doc.InvoiceDate), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 5, doc.DueDateLabel()+": "+timex.FormatLong(doc.DueDate), "", 1, "L", false, 0, "")
	if doc.IncludeVAT && doc.VATNumber != "" {
		pdf.CellFormat(0, 5, "VAT No: "+doc.VATNumber, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// line item table
	pdf.SetFillColor(accent.r, accent.g, accent.b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(95, 8, "Description", "", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Amount", "", 1, "R", true, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range doc.LineItems {
		amount := float64(item.Quantity) * item.UnitPrice
		pdf.CellFormat(95, 7, item.Description, "B", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "B", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, calc.FormatCurrency(item.UnitPrice), "B", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, calc.FormatCurrency(amount), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	// totals
	pdf.CellFormat(115, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(35, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, calc.FormatCurrency(in.Totals.Subtotal), "", 1, "R", false, 0, "")
	if doc.IncludeVAT {
		pdf.CellFormat(115, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, "VAT (15%)", "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, calc.FormatCurrency(in.Totals.VAT), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(accent.r, accent.g, accent.b)
	pdf.CellFormat(115, 8, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, calc.FormatCurrency(in.Totals.Total), "T", 1, "R", false, 0, "")
	pdf.Ln(6)

	// payment details
	pdf.SetTextColor(0, 0, 0)
	if doc.PaymentMethod == models.PaymentMethodEFT {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 5, "Payment Details", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range nonEmpty(
			joined("Bank: ", doc.BankName),
			joined("Account: ", doc.AccountNumber),
			joined("Branch Code: ", doc.BranchCode),
			joined("Account Type: ", string(doc.AccountType)),
			joined("Reference: ", doc.PaymentReference),
		) {
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
	} else {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 5, "Payment method: Cash", "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	if doc.Notes != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, doc.Notes, "", "L", false)
	}

	if in.Watermark {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(160, 160, 160)
		pdf.CellFormat(0, 5, WatermarkText, "", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLogo places the uploaded logo in the top-left corner. Assets the
// PDF engine cannot embed are skipped rather than failing the render.
func (r *PDFRenderer) drawLogo(pdf *gofpdf.Fpdf, dataURL string) {
	mediaType, data, err := entitlement.DecodeDataURL(dataURL)
	if err != nil {
		return
	}
	var imageType string
	switch mediaType {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg", "image/jpg":
		imageType = "JPG"
	case "image/gif":
		imageType = "GIF"
	default:
		return
	}

	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(data))
	if pdf.Err() {
		// bad image data must not poison the rest of the document
		pdf.ClearError()
		return
	}
	pdf.ImageOptions("logo", 10, 10, 50, 0, false, opts, 0, "")
}

func nonEmpty(lines ...string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func joined(label, value string) string {
	if value == "" {
		return ""
	}
	return label + value
}
