package render

import (
	"context"
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"folio/internal/core"
)

// PDF renders the printable tax invoice.
type PDF struct{}

func NewPDF() *PDF { return &PDF{} }

func (p *PDF) Format() Format { return FormatPDF }

// The core fonts have no rupee glyph.
func rs(d decimal.Decimal) string { return "Rs. " + core.FormatAmount(d) }

func (p *PDF) Render(ctx context.Context, inv core.Invoice) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	bold := props.Text{Style: fontstyle.Bold, Size: 9}
	small := props.Text{Size: 9}
	right := props.Text{Size: 9, Align: align.Right}
	boldRight := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}

	// Hotel
	m.AddRow(26,
		col.New(8).Add(
			text.New(inv.Hotel.Name, props.Text{Size: 16, Style: fontstyle.Bold}),
			text.New(inv.Hotel.Address, props.Text{Top: 8, Size: 9}),
			text.New("GSTIN: "+inv.Hotel.GSTIN, props.Text{Top: 13, Size: 9}),
			text.New(inv.Hotel.Phone+"  "+inv.Hotel.Email, props.Text{Top: 18, Size: 9}),
		),
		text.NewCol(4, "TAX INVOICE", props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right}),
	)

	// Invoice meta and bill-to
	m.AddRow(24,
		col.New(6).Add(
			text.New("Invoice No: "+inv.Number, props.Text{Size: 9, Style: fontstyle.Bold}),
			text.New("Invoice Date: "+inv.Stay.InvoiceDate.Display(), props.Text{Top: 5, Size: 9}),
			text.New("Folio No: "+inv.Stay.FolioNo, props.Text{Top: 10, Size: 9}),
			text.New("Source: "+inv.Stay.Source, props.Text{Top: 15, Size: 9}),
		),
		col.New(6).Add(
			text.New("Bill to", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.New(inv.Stay.BillToName(), props.Text{Top: 5, Size: 9}),
			text.New("Guest: "+inv.Stay.GuestName, props.Text{Top: 10, Size: 9}),
		),
	)

	// Stay
	m.AddRow(8,
		text.NewCol(3, "Check-in: "+inv.Stay.CheckIn.Display(), small),
		text.NewCol(3, "Check-out: "+inv.Stay.CheckOut.Display(), small),
		text.NewCol(2, "Adults: "+strconv.Itoa(inv.Stay.Adults), small),
		text.NewCol(2, "Rooms: "+strconv.Itoa(inv.Stay.Rooms), small),
		text.NewCol(2, "Nights: "+strconv.Itoa(inv.Stay.Nights), small),
	)

	// Room charges
	m.AddRow(10,
		text.NewCol(2, "Category", bold),
		text.NewCol(1, "HSN/SAC", bold),
		text.NewCol(1, "Rate", boldRight),
		text.NewCol(1, "Rooms", boldRight),
		text.NewCol(1, "Nights", boldRight),
		text.NewCol(2, "Subtotal", boldRight),
		text.NewCol(1, "SGST 2.5%", boldRight),
		text.NewCol(1, "CGST 2.5%", boldRight),
		text.NewCol(2, "Total", boldRight),
	)
	for _, l := range inv.Lines {
		category := string(l.Category)
		if category == "" {
			category = core.UncategorizedLabel
		}
		m.AddRow(8,
			text.NewCol(2, category, small),
			text.NewCol(1, l.HSN, small),
			text.NewCol(1, core.FormatAmount(l.Rate), right),
			text.NewCol(1, strconv.Itoa(l.Rooms), right),
			text.NewCol(1, strconv.Itoa(l.Nights), right),
			text.NewCol(2, core.FormatAmount(l.Subtotal), right),
			text.NewCol(1, core.FormatAmount(l.SGST), right),
			text.NewCol(1, core.FormatAmount(l.CGST), right),
			text.NewCol(2, core.FormatAmount(l.Total), right),
		)
	}

	// Totals
	totals := []struct {
		label string
		value decimal.Decimal
		style props.Text
	}{
		{"Subtotal", inv.Totals.Subtotal, right},
		{"SGST @ 2.5%", inv.Totals.SGST, right},
		{"CGST @ 2.5%", inv.Totals.CGST, right},
		{"Grand Total", inv.Totals.GrandTotal, boldRight},
	}
	for _, t := range totals {
		labelStyle := small
		if t.style.Style == fontstyle.Bold {
			labelStyle = bold
		}
		m.AddRow(7,
			col.New(7),
			text.NewCol(2, t.label, labelStyle),
			text.NewCol(3, rs(t.value), t.style),
		)
	}

	m.AddRow(12,
		text.NewCol(12, "Amount in words: "+inv.AmountInWords, props.Text{Top: 3, Size: 9, Style: fontstyle.Italic}),
	)

	// Sales summary
	if len(inv.Summary) > 0 {
		m.AddRow(10, text.NewCol(12, "Summary by category", props.Text{Top: 3, Size: 10, Style: fontstyle.Bold}))
		m.AddRow(8,
			text.NewCol(4, "Category", bold),
			text.NewCol(1, "Rooms", boldRight),
			text.NewCol(1, "Nights", boldRight),
			text.NewCol(2, "Subtotal", boldRight),
			text.NewCol(1, "SGST", boldRight),
			text.NewCol(1, "CGST", boldRight),
			text.NewCol(2, "Total", boldRight),
		)
		for _, s := range inv.Summary {
			m.AddRow(7,
				text.NewCol(4, s.Category, small),
				text.NewCol(1, strconv.Itoa(s.Rooms), right),
				text.NewCol(1, strconv.Itoa(s.Nights), right),
				text.NewCol(2, core.FormatAmount(s.Subtotal), right),
				text.NewCol(1, core.FormatAmount(s.SGST), right),
				text.NewCol(1, core.FormatAmount(s.CGST), right),
				text.NewCol(2, core.FormatAmount(s.Total), right),
			)
		}
	}

	m.AddRow(24,
		col.New(8),
		col.New(4).Add(
			text.New("For "+inv.Hotel.Name, props.Text{Top: 8, Size: 9, Align: align.Right}),
			text.New("Authorised signatory", props.Text{Top: 18, Size: 8, Align: align.Right}),
		),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}
