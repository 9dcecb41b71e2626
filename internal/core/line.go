package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxRate is the rate applied for each of SGST and CGST.
var TaxRate = decimal.RequireFromString("0.025")

// Line edit fields accepted by ApplyEdit.
const (
	FieldCategory = "category"
	FieldRate     = "rate"
	FieldRooms    = "rooms"
	FieldNights   = "nights"
	FieldHSN      = "hsn"
)

// ComputeLine overwrites the derived amounts of a line:
//
//	subtotal = rate × rooms × nights
//	sgst     = subtotal × 2.5%
//	cgst     = subtotal × 2.5%
//	total    = subtotal + sgst + cgst
//
// Negative inputs count as zero. All other fields pass through unchanged.
func ComputeLine(l RoomLine) RoomLine {
	rate := l.Rate
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	subtotal := rate.
		Mul(decimal.NewFromInt(int64(max(l.Rooms, 0)))).
		Mul(decimal.NewFromInt(int64(max(l.Nights, 0))))

	l.Subtotal = subtotal
	l.SGST = subtotal.Mul(TaxRate)
	l.CGST = subtotal.Mul(TaxRate)
	l.Total = l.Subtotal.Add(l.SGST).Add(l.CGST)
	return l
}

// SelectCategory switches the line to category c.
//
// The category default replaces the rate when the rate was not typed by the
// user, or when the category actually changes; a switch clears the manual
// override. Selecting the empty category keeps rate and source as they are.
// Categories missing from rates are recorded without touching the rate.
func SelectCategory(l RoomLine, c Category, rates RateTable) RoomLine {
	changed := l.Category != c
	l.Category = c
	if c == "" {
		return ComputeLine(l)
	}
	if l.RateSource != RateSourceManual || changed {
		if def, ok := rates.Rate(c); ok {
			l.Rate = def
			l.RateSource = RateSourceCategory
		}
	}
	return ComputeLine(l)
}

// EditRate records a rate typed by the user; it wins over category defaults
// until the category is switched.
func EditRate(l RoomLine, rate decimal.Decimal) RoomLine {
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	l.Rate = rate
	l.RateSource = RateSourceManual
	return ComputeLine(l)
}

func EditRooms(l RoomLine, rooms int) RoomLine {
	l.Rooms = max(rooms, 0)
	return ComputeLine(l)
}

func EditNights(l RoomLine, nights int) RoomLine {
	l.Nights = max(nights, 0)
	return ComputeLine(l)
}

func EditHSN(l RoomLine, hsn string) RoomLine {
	l.HSN = strings.TrimSpace(hsn)
	return l
}

// RefreshRate re-applies the current category default to a line whose rate
// came from that default. Manual rates are preserved.
func RefreshRate(l RoomLine, rates RateTable) RoomLine {
	if l.RateSource != RateSourceCategory || l.Category == "" {
		return ComputeLine(l)
	}
	if def, ok := rates.Rate(l.Category); ok {
		l.Rate = def
	}
	return ComputeLine(l)
}

// RefreshRates applies RefreshRate to every line.
func RefreshRates(lines []RoomLine, rates RateTable) []RoomLine {
	out := make([]RoomLine, len(lines))
	for i, l := range lines {
		out[i] = RefreshRate(l, rates)
	}
	return out
}

// ApplyEdit applies a single named field edit, with value as raw form input.
// Numeric values are coerced permissively. Unknown fields and categories not
// present in rates are reported as errors.
func ApplyEdit(l RoomLine, field, value string, rates RateTable) (RoomLine, error) {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case FieldCategory:
		c := Category(strings.TrimSpace(value))
		if c != "" && !rates.Has(c) {
			return l, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
		}
		return SelectCategory(l, c, rates), nil
	case FieldRate:
		return EditRate(l, ParseAmount(value)), nil
	case FieldRooms:
		return EditRooms(l, ParseCount(value)), nil
	case FieldNights:
		return EditNights(l, ParseCount(value)), nil
	case FieldHSN:
		return EditHSN(l, value), nil
	default:
		return l, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}
