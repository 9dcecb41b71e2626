package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"folio/internal/core"
)

const (
	invoiceSheet = "Invoice"
	summarySheet = "Summary"
)

// XLSX renders the invoice as a workbook with an Invoice and a Summary sheet.
type XLSX struct{}

func NewXLSX() *XLSX { return &XLSX{} }

func (x *XLSX) Format() Format { return FormatXLSX }

func (x *XLSX) Render(ctx context.Context, inv core.Invoice) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", invoiceSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	w := &sheetWriter{f: f, sheet: invoiceSheet, money: money}

	w.row(inv.Hotel.Name)
	w.row(inv.Hotel.Address)
	w.row("GSTIN", inv.Hotel.GSTIN)
	w.skip()
	w.row("Invoice No", inv.Number)
	w.row("Invoice Date", inv.Stay.InvoiceDate.ISO())
	w.row("Folio No", inv.Stay.FolioNo)
	w.row("Bill To", inv.Stay.BillToName())
	w.row("Guest", inv.Stay.GuestName)
	w.row("Check-in", inv.Stay.CheckIn.ISO())
	w.row("Check-out", inv.Stay.CheckOut.ISO())
	w.row("Source", inv.Stay.Source)
	w.skip()

	header := w.row("Category", "HSN/SAC", "Rate", "Rooms", "Nights", "Subtotal", "SGST", "CGST", "Total")
	_ = f.SetCellStyle(invoiceSheet, cell(1, header), cell(9, header), bold)
	for _, l := range inv.Lines {
		category := string(l.Category)
		if category == "" {
			category = core.UncategorizedLabel
		}
		w.row(category, l.HSN, l.Rate, l.Rooms, l.Nights, l.Subtotal, l.SGST, l.CGST, l.Total)
	}
	w.skip()
	w.row("Subtotal", "", "", "", "", inv.Totals.Subtotal)
	w.row("SGST @ 2.5%", "", "", "", "", inv.Totals.SGST)
	w.row("CGST @ 2.5%", "", "", "", "", inv.Totals.CGST)
	grand := w.row("Grand Total", "", "", "", "", inv.Totals.GrandTotal)
	_ = f.SetCellStyle(invoiceSheet, cell(1, grand), cell(1, grand), bold)
	w.row("Amount in words", inv.AmountInWords)
	if w.err != nil {
		return nil, w.err
	}
	_ = f.SetColWidth(invoiceSheet, "A", "A", 22)
	_ = f.SetColWidth(invoiceSheet, "B", "I", 14)

	s := &sheetWriter{f: f, sheet: summarySheet, money: money}
	header = s.row("Category", "Rooms", "Nights", "Subtotal", "SGST", "CGST", "Total")
	_ = f.SetCellStyle(summarySheet, cell(1, header), cell(7, header), bold)
	for _, r := range inv.Summary {
		s.row(r.Category, r.Rooms, r.Nights, r.Subtotal, r.SGST, r.CGST, r.Total)
	}
	if s.err != nil {
		return nil, s.err
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 22)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter appends rows to a sheet and remembers the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	money int
	next  int
	err   error
}

func (w *sheetWriter) skip() { w.next++ }

// row writes values into the next row and returns its number.
func (w *sheetWriter) row(values ...any) int {
	w.next++
	if w.err != nil {
		return w.next
	}
	for i, v := range values {
		ref := cell(i+1, w.next)
		switch val := v.(type) {
		case decimal.Decimal:
			if err := w.f.SetCellFloat(w.sheet, ref, val.InexactFloat64(), 2, 64); err != nil {
				w.err = fmt.Errorf("set %s!%s: %w", w.sheet, ref, err)
				return w.next
			}
			_ = w.f.SetCellStyle(w.sheet, ref, ref, w.money)
		default:
			if err := w.f.SetCellValue(w.sheet, ref, val); err != nil {
				w.err = fmt.Errorf("set %s!%s: %w", w.sheet, ref, err)
				return w.next
			}
		}
	}
	return w.next
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
