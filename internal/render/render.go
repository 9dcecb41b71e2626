// Package render turns a generated invoice into downloadable documents.
package render

import (
	"context"
	"strings"

	"github.com/gosimple/slug"

	"folio/internal/core"
)

// Format identifies a download format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// Renderer produces a document for an invoice.
type Renderer interface {
	Format() Format
	Render(ctx context.Context, inv core.Invoice) ([]byte, error)
}

// Filename builds a download name such as
// aurora-grand-hotel-inv-2025-03-001.pdf.
func Filename(inv core.Invoice, f Format) string {
	parts := make([]string, 0, 2)
	if s := slug.Make(inv.Hotel.Name); s != "" {
		parts = append(parts, s)
	}
	number := slug.Make(inv.Number)
	if number == "" {
		number = "invoice"
	}
	parts = append(parts, number)
	return strings.Join(parts, "-") + "." + string(f)
}
