// Package render turns a finalized document plus computed totals into the
// outward artifacts: the PDF, its filename, and the share/email text
// payloads. The core hands a renderer its input and never inspects the
// output.
package render

import (
	"context"

	"github.com/sainvoice/invoicecore/calc"
	"github.com/sainvoice/invoicecore/models"
)

// Input is everything a renderer needs. LogoDataURL is only populated
// when the caller decided the logo may be shown; Watermark marks output
// produced while locked.
type Input struct {
	Document    models.InvoiceDocument
	Totals      calc.Totals
	LogoDataURL string
	Watermark   bool
}

// Renderer produces a binary artifact from a document. Implementations
// own all layout and template concerns.
type Renderer interface {
	Render(ctx context.Context, in Input) ([]byte, error)
}
