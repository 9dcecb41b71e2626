// Package http serves the invoice form, the printable preview, document
// downloads and a small JSON API.
//
// This file turns the submitted invoice form back into core values. Every
// round trip replays the user's edits onto the previous state, kept in hidden
// fields, through the same transitions the JSON API uses.
package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"folio/internal/core"
)

// Form actions carried by the submit buttons.
const (
	ActionRecalc    = "recalc"
	ActionAddRow    = "add_row"
	ActionRemoveRow = "remove_row"
	ActionGenerate  = "generate"
)

// Form field names. Repeated line fields are submitted once per row, in
// row order.
const (
	fieldLineID           = "line_id"
	fieldLineCategory     = "line_category"
	fieldLinePrevCategory = "line_prev_category"
	fieldLineRate         = "line_rate"
	fieldLinePrevRate     = "line_prev_rate"
	fieldLineRateSource   = "line_rate_source"
	fieldLineRooms        = "line_rooms"
	fieldLineNights       = "line_nights"
	fieldLineHSN          = "line_hsn"

	// Stay rooms and nights as last rendered.
	fieldPrevRooms  = "prev_rooms"
	fieldPrevNights = "prev_nights"
)

// maxLines bounds the number of room lines accepted from one form.
const maxLines = 200

// InvoiceForm is the decoded state of the invoice form.
type InvoiceForm struct {
	Hotel  core.Hotel
	Stay   core.Stay
	Lines  []core.RoomLine
	Action string
	// RemoveIndex is the row targeted by ActionRemoveRow.
	RemoveIndex int
}

// ParseInvoiceForm decodes form values. Blank or malformed numbers become
// zero; unknown categories keep the previous category.
func ParseInvoiceForm(form url.Values, rates core.RateTable) InvoiceForm {
	f := InvoiceForm{
		Hotel: core.Hotel{
			Name:    sanitizeInput(form.Get("hotel_name")),
			Address: sanitizeInput(form.Get("hotel_address")),
			GSTIN:   strings.ToUpper(sanitizeInput(form.Get("hotel_gstin"))),
			Phone:   sanitizeInput(form.Get("hotel_phone")),
			Email:   sanitizeInput(form.Get("hotel_email")),
		},
		Stay: core.Stay{
			InvoiceDate: core.ParseDate(form.Get("invoice_date")),
			FolioNo:     sanitizeInput(form.Get("folio_no")),
			GuestName:   sanitizeInput(form.Get("guest_name")),
			BillTo:      sanitizeInput(form.Get("bill_to")),
			CheckIn:     core.ParseDate(form.Get("check_in")),
			CheckOut:    core.ParseDate(form.Get("check_out")),
			Adults:      core.ParseCount(form.Get("adults")),
			Rooms:       core.ParseCount(form.Get("rooms")),
			Nights:      core.ParseCount(form.Get("nights")),
			Source:      core.NormalizeSource(form.Get("source")),
		},
	}
	f.Action, f.RemoveIndex = parseAction(form.Get("action"))

	n := min(len(form[fieldLineID]), maxLines)
	lines := make([]core.RoomLine, 0, n)
	for i := range n {
		lines = append(lines, parseLine(form, i, rates))
	}
	f.Lines = lines
	if stayChanged(form, fieldPrevRooms, f.Stay.Rooms) || stayChanged(form, fieldPrevNights, f.Stay.Nights) {
		f.Lines = core.ApplyStayDefaults(lines, f.Stay.Rooms, f.Stay.Nights)
	}
	return f
}

// stayChanged reports whether a stay count differs from the value the form
// was rendered with. Forms without the previous value never changed.
func stayChanged(form url.Values, prevKey string, current int) bool {
	return form.Has(prevKey) && core.ParseCount(form.Get(prevKey)) != current
}

// parseAction splits "remove_row:2" into its action and row index.
func parseAction(raw string) (string, int) {
	action, arg, _ := strings.Cut(strings.TrimSpace(raw), ":")
	switch action {
	case ActionAddRow, ActionGenerate:
		return action, -1
	case ActionRemoveRow:
		idx, err := strconv.Atoi(arg)
		if err != nil || idx < 0 {
			return ActionRecalc, -1
		}
		return action, idx
	default:
		return ActionRecalc, -1
	}
}

func valueAt(form url.Values, key string, i int) string {
	if vs := form[key]; i < len(vs) {
		return vs[i]
	}
	return ""
}

// parseLine rebuilds row i from its previous state and applies the edits.
// A category change is applied before a typed rate, so choosing a category
// and typing a rate in the same submit keeps the typed rate.
func parseLine(form url.Values, i int, rates core.RateTable) core.RoomLine {
	prevRate := core.ParseAmount(valueAt(form, fieldLinePrevRate, i))
	l := core.RoomLine{
		ID:         sanitizeInput(valueAt(form, fieldLineID, i)),
		Category:   core.Category(sanitizeInput(valueAt(form, fieldLinePrevCategory, i))),
		HSN:        sanitizeInput(valueAt(form, fieldLineHSN, i)),
		Rate:       prevRate,
		Rooms:      core.ParseCount(valueAt(form, fieldLineRooms, i)),
		Nights:     core.ParseCount(valueAt(form, fieldLineNights, i)),
		RateSource: parseRateSource(valueAt(form, fieldLineRateSource, i)),
	}
	if l.ID == "" {
		l.ID = fmt.Sprintf("row-%d", i+1)
	}

	category := core.Category(sanitizeInput(valueAt(form, fieldLineCategory, i)))
	switch {
	case category == l.Category:
		l = core.RefreshRate(l, rates)
	case category == "" || rates.Has(category):
		l = core.SelectCategory(l, category, rates)
	}

	if typed := core.ParseAmount(valueAt(form, fieldLineRate, i)); !typed.Equal(prevRate) {
		l = core.EditRate(l, typed)
	}
	return core.ComputeLine(l)
}

func parseRateSource(s string) core.RateSource {
	switch core.RateSource(strings.TrimSpace(s)) {
	case core.RateSourceCategory:
		return core.RateSourceCategory
	case core.RateSourceManual:
		return core.RateSourceManual
	default:
		return core.RateSourceNone
	}
}

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

// decodeJSON reads a JSON body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("decode request body: trailing data")
	}
	return nil
}

// sanitizeInput removes control characters except tab and newlines, and
// trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
