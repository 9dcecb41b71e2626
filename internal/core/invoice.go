package core

// Invoice is a generated invoice ready for preview, PDF or XLSX rendering.
type Invoice struct {
	Number        string               `json:"number"`
	Hotel         Hotel                `json:"hotel"`
	Stay          Stay                 `json:"stay"`
	Lines         []RoomLine           `json:"lines"`
	Totals        Totals               `json:"totals"`
	Summary       []CategorySummaryRow `json:"summary"`
	AmountInWords string               `json:"amount_in_words"`
}

// BuildInvoice recomputes every line and derives totals, the category summary
// and the amount in words. number may be empty for an unnumbered preview.
func BuildInvoice(number string, hotel Hotel, stay Stay, lines []RoomLine) Invoice {
	computed := make([]RoomLine, len(lines))
	for i, l := range lines {
		computed[i] = ComputeLine(l)
	}
	totals, summary := Aggregate(computed)
	stay.Source = NormalizeSource(stay.Source)

	return Invoice{
		Number:        number,
		Hotel:         hotel,
		Stay:          stay,
		Lines:         computed,
		Totals:        totals,
		Summary:       summary,
		AmountInWords: AmountToWords(totals.GrandTotal),
	}
}

// ApplyStayDefaults fills rooms and nights that are still zero with the stay
// level defaults.
func ApplyStayDefaults(lines []RoomLine, rooms, nights int) []RoomLine {
	out := make([]RoomLine, len(lines))
	for i, l := range lines {
		if l.Rooms == 0 {
			l.Rooms = max(rooms, 0)
		}
		if l.Nights == 0 {
			l.Nights = max(nights, 0)
		}
		out[i] = ComputeLine(l)
	}
	return out
}
