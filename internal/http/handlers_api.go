package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"folio/internal/core"
	"folio/internal/log"
)

func isAPI(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

type editLineRequest struct {
	Line  core.RoomLine `json:"line"`
	Field string        `json:"field"`
	Value string        `json:"value"`
}

// handleEditLine applies one edit event to a line and returns the
// recomputed line.
func (s *Server) handleEditLine(w http.ResponseWriter, r *http.Request) {
	var req editLineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		JSONError(http.StatusBadRequest, err.Error()).Write(w)
		return
	}

	line, err := s.svc.EditLine(req.Line, req.Field, req.Value)
	if errors.Is(err, core.ErrUnknownCategory) || errors.Is(err, core.ErrUnknownField) {
		JSONError(http.StatusUnprocessableEntity, err.Error()).Write(w)
		return
	}
	if err != nil {
		JSONError(http.StatusInternalServerError, "edit failed").Write(w)
		return
	}
	NewResponse().JSON(line).Write(w)
}

type previewRequest struct {
	Hotel *core.Hotel     `json:"hotel"`
	Stay  core.Stay       `json:"stay"`
	Lines []core.RoomLine `json:"lines"`
}

// handlePreview computes totals, summary and words without numbering.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		JSONError(http.StatusBadRequest, err.Error()).Write(w)
		return
	}
	hotel := s.svc.Hotel()
	if req.Hotel != nil {
		hotel = *req.Hotel
	}
	NewResponse().JSON(s.svc.Preview(hotel, req.Stay, req.Lines)).Write(w)
}

type rateEntry struct {
	Category string          `json:"category"`
	Rate     decimal.Decimal `json:"rate"`
}

func rateEntries(t core.RateTable) []rateEntry {
	out := make([]rateEntry, 0, t.Len())
	for _, c := range t.Categories() {
		r, _ := t.Rate(c)
		out = append(out, rateEntry{Category: string(c), Rate: r})
	}
	return out
}

func (s *Server) handleListRates(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(rateEntries(s.svc.Rates())).Write(w)
}

type setRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}

// handleSetRate changes a category's default rate. Lines whose rate came
// from the category pick it up on their next recalculation.
func (s *Server) handleSetRate(w http.ResponseWriter, r *http.Request) {
	var req setRateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		JSONError(http.StatusBadRequest, err.Error()).Write(w)
		return
	}
	category := core.Category(sanitizeInput(r.PathValue("category")))
	table, err := s.svc.SetRate(category, req.Rate)
	if err != nil {
		JSONError(http.StatusUnprocessableEntity, err.Error()).Write(w)
		return
	}
	s.logger.InfoContext(r.Context(), "Category rate changed",
		log.FieldCategory, string(category),
		"rate", req.Rate.StringFixed(2))
	NewResponse().JSON(rateEntries(table)).Write(w)
}
