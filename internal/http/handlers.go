package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"folio/internal/core"
	"folio/internal/log"
	"folio/internal/render"
	"folio/internal/services"
)

type categoryOption struct {
	Name string
	Rate string
}

// formView feeds index.html.
type formView struct {
	Hotel      core.Hotel
	Stay       core.Stay
	Preview    core.Invoice
	Categories []categoryOption
	Sources    []string
	NextNumber string
	Error      string
}

// invoiceView feeds invoice.html.
type invoiceView struct {
	Invoice core.Invoice
	PDFURL  string
	XLSXURL string
}

func (s *Server) newFormView(ctx context.Context, f InvoiceForm) formView {
	rates := s.svc.Rates()
	cats := make([]categoryOption, 0, rates.Len())
	for _, c := range rates.Categories() {
		r, _ := rates.Rate(c)
		cats = append(cats, categoryOption{Name: string(c), Rate: core.FormatINR(r)})
	}

	next, err := s.svc.NextNumber(ctx, f.Stay)
	if err != nil {
		s.logger.WarnContext(ctx, "Could not read invoice counter", log.FieldError, err)
	}
	return formView{
		Hotel:      f.Hotel,
		Stay:       f.Stay,
		Preview:    s.svc.Preview(f.Hotel, f.Stay, f.Lines),
		Categories: cats,
		Sources:    core.BookingSources,
		NextNumber: next,
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution failed",
			log.FieldError, err,
			"template", name)
	}
}

// handleIndex shows a blank invoice form with one empty room line.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	stay := s.svc.NewStay()
	f := InvoiceForm{
		Hotel: s.svc.Hotel(),
		Stay:  stay,
		Lines: []core.RoomLine{s.svc.NewLine(stay)},
	}
	s.render(w, r, http.StatusOK, "index.html", s.newFormView(r.Context(), f))
}

// handleFormAction re-renders the form after recalculation, row additions
// or removals. Nothing is numbered here.
func (s *Server) handleFormAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("Invalid form submission").Write(w)
		return
	}
	f := ParseInvoiceForm(r.PostForm, s.svc.Rates())

	switch f.Action {
	case ActionAddRow:
		f.Lines = append(f.Lines, s.svc.NewLine(f.Stay))
	case ActionRemoveRow:
		if f.RemoveIndex < len(f.Lines) {
			f.Lines = append(f.Lines[:f.RemoveIndex], f.Lines[f.RemoveIndex+1:]...)
		}
	case ActionGenerate:
		s.handleCreateInvoice(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "index.html", s.newFormView(r.Context(), f))
}

// handleCreateInvoice numbers the submitted invoice and shows the printable
// preview.
func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("Invalid form submission").Write(w)
		return
	}
	f := ParseInvoiceForm(r.PostForm, s.svc.Rates())

	inv, err := s.svc.Generate(r.Context(), f.Hotel, f.Stay, f.Lines)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Invoice generation failed",
			log.NewFields().
				WithOperation(log.OpCreate).
				WithError(err).
				ToSlice()...)
		view := s.newFormView(r.Context(), f)
		view.Error = "The invoice number could not be assigned. Please try again."
		s.render(w, r, http.StatusServiceUnavailable, "index.html", view)
		return
	}

	http.Redirect(w, r, "/invoices/"+inv.Number, http.StatusSeeOther)
}

func (s *Server) handleShowInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := s.svc.Lookup(r.PathValue("number"))
	if err != nil {
		NotFoundError("Invoice not found. Generated invoices are kept for a limited time.").Write(w)
		return
	}
	base := "/invoices/" + inv.Number
	s.render(w, r, http.StatusOK, "invoice.html", invoiceView{
		Invoice: inv,
		PDFURL:  base + "/pdf",
		XLSXURL: base + "/xlsx",
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	format := render.Format(strings.ToLower(r.PathValue("format")))
	data, filename, err := s.svc.Render(r.Context(), r.PathValue("number"), format)
	switch {
	case errors.Is(err, services.ErrUnsupportedFormat):
		NotFoundError("Unknown download format").Write(w)
		return
	case errors.Is(err, services.ErrInvoiceNotFound):
		NotFoundError("Invoice not found").Write(w)
		return
	case err != nil:
		s.logger.ErrorContext(r.Context(), "Render failed",
			log.FieldOperation, log.OpRender,
			log.FieldError, err,
			log.FieldFormat, string(format))
		InternalServerError("Could not render the invoice").Write(w)
		return
	}
	NewResponse().Attachment(filename, format.ContentType(), data).Write(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	}).Write(w)
}

// handleReady checks the counter store and reports limiter and security
// counters.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := map[string]any{"templates": "ok"}

	if s.ready != nil {
		if err := s.ready(ctx); err != nil {
			checks["counter_store"] = "failed: " + err.Error()
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["counter_store"] = "ok"
		}
	}

	limits := s.rateLimiter.GetMetrics()
	checks["rate_limiter"] = map[string]any{
		"active_clients": limits.ClientCount,
		"rejected":       limits.TotalHits,
	}
	checks["security"] = map[string]any{
		"suspicious_requests": s.detector.GetMetrics().SuspiciousRequests,
	}
	checks["requests"] = s.tracer.GetMetrics().TotalRequests

	NewResponse().Status(httpStatus).JSON(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}).Write(w)
}
