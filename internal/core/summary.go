package core

import "github.com/shopspring/decimal"

// Totals are the invoice-level sums of the room lines.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	SGST       decimal.Decimal `json:"sgst"`
	CGST       decimal.Decimal `json:"cgst"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// CategorySummaryRow aggregates the lines sharing a category label.
type CategorySummaryRow struct {
	Category string          `json:"category"`
	Rooms    int             `json:"rooms"`
	Nights   int             `json:"nights"`
	Subtotal decimal.Decimal `json:"subtotal"`
	SGST     decimal.Decimal `json:"sgst"`
	CGST     decimal.Decimal `json:"cgst"`
	Total    decimal.Decimal `json:"total"`
}

// Aggregate folds lines into invoice totals and a per-category summary.
//
// Lines are recomputed first so stale derived fields never leak into totals.
// The grand total is subtotal + SGST + CGST, which equals the sum of line
// totals. Summary rows follow the order in which categories first appear;
// lines without a category are grouped under UncategorizedLabel.
func Aggregate(lines []RoomLine) (Totals, []CategorySummaryRow) {
	totals := Totals{
		Subtotal: decimal.Zero,
		SGST:     decimal.Zero,
		CGST:     decimal.Zero,
	}
	summary := make([]CategorySummaryRow, 0)
	index := make(map[string]int)

	for _, l := range lines {
		l = ComputeLine(l)
		totals.Subtotal = totals.Subtotal.Add(l.Subtotal)
		totals.SGST = totals.SGST.Add(l.SGST)
		totals.CGST = totals.CGST.Add(l.CGST)

		label := string(l.Category)
		if label == "" {
			label = UncategorizedLabel
		}
		i, ok := index[label]
		if !ok {
			i = len(summary)
			index[label] = i
			summary = append(summary, CategorySummaryRow{
				Category: label,
				Subtotal: decimal.Zero,
				SGST:     decimal.Zero,
				CGST:     decimal.Zero,
				Total:    decimal.Zero,
			})
		}
		row := &summary[i]
		row.Rooms += max(l.Rooms, 0)
		row.Nights += max(l.Nights, 0)
		row.Subtotal = row.Subtotal.Add(l.Subtotal)
		row.SGST = row.SGST.Add(l.SGST)
		row.CGST = row.CGST.Add(l.CGST)
		row.Total = row.Total.Add(l.Total)
	}

	totals.GrandTotal = totals.Subtotal.Add(totals.SGST).Add(totals.CGST)
	return totals, summary
}
