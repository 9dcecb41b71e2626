package core

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBuildInvoice(t *testing.T) {
	stay := Stay{
		InvoiceDate: NewDate(2025, 3, 5),
		GuestName:   "Asha Rao",
		Source:      "booking.com",
		Rooms:       1,
		Nights:      2,
	}
	inv := BuildInvoice("INV-2025-03-001", DefaultHotel(), stay, sampleLines())

	if inv.Number != "INV-2025-03-001" {
		t.Fatalf("number %q", inv.Number)
	}
	if inv.Stay.Source != "Booking.com" {
		t.Fatalf("source not normalized: %q", inv.Stay.Source)
	}
	if !inv.Totals.GrandTotal.Equal(dec("28561.05")) {
		t.Fatalf("grand total %s", inv.Totals.GrandTotal)
	}
	want := "Twenty eight thousand five hundred and sixty one rupees and five paise only"
	if inv.AmountInWords != want {
		t.Fatalf("words %q", inv.AmountInWords)
	}
	if len(inv.Summary) != 3 || len(inv.Lines) != 4 {
		t.Fatalf("unexpected shape: %d lines, %d summary rows", len(inv.Lines), len(inv.Summary))
	}
}

func TestApplyStayDefaults(t *testing.T) {
	lines := []RoomLine{
		{ID: "a", Rate: dec("1000")},
		{ID: "b", Rate: dec("1000"), Rooms: 3, Nights: 1},
	}
	got := ApplyStayDefaults(lines, 2, 4)
	if got[0].Rooms != 2 || got[0].Nights != 4 || !got[0].Subtotal.Equal(dec("8000")) {
		t.Fatalf("defaults not applied: %+v", got[0])
	}
	if got[1].Rooms != 3 || got[1].Nights != 1 {
		t.Fatalf("non-zero values overwritten: %+v", got[1])
	}
	if lines[0].Rooms != 0 {
		t.Fatalf("input slice mutated")
	}
}

func TestStayBillToFallsBackToGuest(t *testing.T) {
	s := Stay{GuestName: "Asha Rao"}
	if s.BillToName() != "Asha Rao" {
		t.Fatalf("expected guest name, got %q", s.BillToName())
	}
	s.BillTo = "Acme Pvt Ltd"
	if s.BillToName() != "Acme Pvt Ltd" {
		t.Fatalf("expected bill-to, got %q", s.BillToName())
	}
}

func TestDateFormatsAndJSON(t *testing.T) {
	d := ParseDate("2025-03-05")
	if d.Display() != "05 Mar 2025" || d.ISO() != "2025-03-05" {
		t.Fatalf("unexpected formats %q %q", d.Display(), d.ISO())
	}
	if !ParseDate("05/03/2025").IsZero() {
		t.Fatalf("malformed date should be zero")
	}

	b, err := json.Marshal(Stay{CheckIn: d})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"check_in":"2025-03-05"`) {
		t.Fatalf("unexpected json %s", b)
	}
	var s Stay
	if err := json.Unmarshal([]byte(`{"check_out":"2025-03-07"}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.CheckOut.Day() != 7 {
		t.Fatalf("unexpected check-out %v", s.CheckOut)
	}
}

func TestNormalizeSource(t *testing.T) {
	if NormalizeSource(" makemytrip ") != "MakeMyTrip" {
		t.Fatalf("case-insensitive match failed")
	}
	if NormalizeSource("carrier pigeon") != "Direct" {
		t.Fatalf("unknown source should default to Direct")
	}
}
