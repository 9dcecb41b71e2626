package sheets

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
)

// RegisterRow is one line of the invoice register.
type RegisterRow struct {
	Number      string
	InvoiceDate string // YYYY-MM-DD
	GuestName   string
	BillTo      string
	Source      string
	Lines       int
	Subtotal    decimal.Decimal
	SGST        decimal.Decimal
	CGST        decimal.Decimal
	GrandTotal  decimal.Decimal
}

// Year returns the year of the invoice date, or 0 when it is missing.
func (r RegisterRow) Year() int {
	if len(r.InvoiceDate) < 4 {
		return 0
	}
	y, err := strconv.Atoi(r.InvoiceDate[:4])
	if err != nil || y < 0 {
		return 0
	}
	return y
}

// Values returns the row as spreadsheet cells, in RegisterHeader order.
func (r RegisterRow) Values() []any {
	return []any{
		r.Number,
		r.InvoiceDate,
		r.GuestName,
		r.BillTo,
		r.Source,
		r.Lines,
		r.Subtotal.StringFixed(2),
		r.SGST.StringFixed(2),
		r.CGST.StringFixed(2),
		r.GrandTotal.StringFixed(2),
	}
}

// RegisterHeader names the register columns.
var RegisterHeader = []any{
	"Invoice No", "Date", "Guest", "Bill To", "Source", "Lines",
	"Subtotal", "SGST", "CGST", "Grand Total",
}

// Ports for outbound adapters.
type (
	// RegisterWriter appends invoices to the register. Appending an invoice
	// number that is already present returns the existing reference.
	RegisterWriter interface {
		AppendInvoice(ctx context.Context, row RegisterRow) (rowRef string, err error)
	}
)
