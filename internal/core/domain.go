package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// RateSourceNone marks a line whose rate has not been set from a category
	// nor edited by the user.
	RateSourceNone RateSource = ""
	// RateSourceCategory marks a rate copied from the category default.
	RateSourceCategory RateSource = "category"
	// RateSourceManual marks a rate typed in by the user.
	RateSourceManual RateSource = "manual"
)

// UncategorizedLabel is the summary bucket for lines without a category.
const UncategorizedLabel = "Uncategorized"

type (
	// Category tags a room line. The empty category means "not selected".
	Category string

	// RateSource records where a line's rate came from.
	RateSource string

	Date struct {
		time.Time
	}

	// RoomLine is one row of room charges on an invoice.
	// Subtotal, SGST, CGST and Total are derived by ComputeLine only.
	RoomLine struct {
		ID         string          `json:"id"`
		Category   Category        `json:"category"`
		HSN        string          `json:"hsn,omitempty"`
		Rate       decimal.Decimal `json:"rate"`
		Rooms      int             `json:"rooms"`
		Nights     int             `json:"nights"`
		RateSource RateSource      `json:"rate_source"`

		Subtotal decimal.Decimal `json:"subtotal"`
		SGST     decimal.Decimal `json:"sgst"`
		CGST     decimal.Decimal `json:"cgst"`
		Total    decimal.Decimal `json:"total"`
	}

	Hotel struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		GSTIN   string `json:"gstin"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
	}

	// Stay holds the guest and invoice header fields.
	Stay struct {
		InvoiceDate Date   `json:"invoice_date"`
		FolioNo     string `json:"folio_no"`
		GuestName   string `json:"guest_name"`
		BillTo      string `json:"bill_to"`
		CheckIn     Date   `json:"check_in"`
		CheckOut    Date   `json:"check_out"`
		Adults      int    `json:"adults"`
		Rooms       int    `json:"rooms"`
		Nights      int    `json:"nights"`
		Source      string `json:"source"`
	}
)

var (
	ErrUnknownCategory = errors.New("unknown room category")
	ErrUnknownField    = errors.New("unknown line field")
)

// BookingSources lists the booking channels offered on the form.
var BookingSources = []string{"Direct", "Website", "Booking.com", "MakeMyTrip", "Phone", "Corporate"}

// DefaultHotel returns the hotel details prefilled on a new invoice.
func DefaultHotel() Hotel {
	return Hotel{
		Name:    "Aurora Grand Hotel",
		Address: "12, Beachside Road, Bengaluru 560001, Karnataka, India",
		GSTIN:   "29ABCDE1234F2Z5",
		Phone:   "+91 98765 43210",
		Email:   "billing@auroragrand.in",
	}
}

// NewRoomLine returns a blank line carrying the stay's default rooms and nights.
func NewRoomLine(rooms, nights int) RoomLine {
	return ComputeLine(RoomLine{
		ID:     uuid.NewString(),
		Rate:   decimal.Zero,
		Rooms:  rooms,
		Nights: nights,
	})
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD form value. Blank or malformed input yields
// the zero Date.
func ParseDate(s string) Date {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return Date{}
	}
	return Date{Time: t}
}

// ISO returns the date as YYYY-MM-DD, or "" for the zero date.
func (d Date) ISO() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}

// Display formats the date the way it is printed on the invoice (05 Mar 2025).
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("02 Jan 2006")
}

// MarshalJSON encodes the date as "YYYY-MM-DD" (or "" when zero), shadowing
// the RFC 3339 encoding promoted from time.Time.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ISO())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*d = ParseDate(s)
	return nil
}

// BillToName is the name printed under "Bill To"; it falls back to the guest.
func (s Stay) BillToName() string {
	if strings.TrimSpace(s.BillTo) != "" {
		return s.BillTo
	}
	return s.GuestName
}

// NormalizeSource maps a free-form source to one of BookingSources,
// defaulting to Direct.
func NormalizeSource(s string) string {
	s = strings.TrimSpace(s)
	for _, known := range BookingSources {
		if strings.EqualFold(s, known) {
			return known
		}
	}
	return BookingSources[0]
}
