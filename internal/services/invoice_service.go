package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"folio/internal/amqp"
	"folio/internal/cache"
	"folio/internal/core"
	"folio/internal/log"
	"folio/internal/metrics"
	"folio/internal/numbering"
	"folio/internal/render"
)

var (
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrUnsupportedFormat = errors.New("unsupported download format")
)

// RateSource hands out the current rate table and accepts runtime edits.
type RateSource interface {
	Table() core.RateTable
	SetRate(c core.Category, rate decimal.Decimal) core.RateTable
}

// Publisher announces generated invoices to the register worker.
type Publisher interface {
	PublishInvoiceGenerated(ctx context.Context, msg *amqp.InvoiceGeneratedMessage) error
}

// Options wires an InvoiceService. Publisher and Metrics are optional.
type Options struct {
	Numberer  *numbering.Numberer
	Rates     RateSource
	Cache     cache.Cache[core.Invoice]
	Renderers []render.Renderer
	Publisher Publisher
	Metrics   *metrics.Metrics
	Logger    *log.Logger
	Hotel     core.Hotel
	// Backend names the counter store in metrics labels.
	Backend string
	Now     func() time.Time
}

// InvoiceService numbers, builds, keeps and renders invoices.
type InvoiceService struct {
	numberer  *numbering.Numberer
	rates     RateSource
	cache     cache.Cache[core.Invoice]
	renderers map[render.Format]render.Renderer
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *log.Logger
	hotel     core.Hotel
	backend   string
	now       func() time.Time
}

func NewInvoiceService(opts Options) *InvoiceService {
	s := &InvoiceService{
		numberer:  opts.Numberer,
		rates:     opts.Rates,
		cache:     opts.Cache,
		renderers: make(map[render.Format]render.Renderer, len(opts.Renderers)),
		publisher: opts.Publisher,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		hotel:     opts.Hotel,
		backend:   opts.Backend,
		now:       opts.Now,
	}
	for _, r := range opts.Renderers {
		s.renderers[r.Format()] = r
	}
	if s.cache == nil {
		s.cache = cache.NewLRUCache[core.Invoice](100, time.Hour)
	}
	if s.logger == nil {
		s.logger = log.New(log.DefaultConfig())
	}
	s.logger = s.logger.WithComponent(log.ComponentInvoice)
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Hotel returns the hotel details prefilled on new invoices.
func (s *InvoiceService) Hotel() core.Hotel {
	return s.hotel
}

// Rates returns a copy of the current rate table.
func (s *InvoiceService) Rates() core.RateTable {
	return s.rates.Table()
}

// SetRate changes the default rate of a category.
func (s *InvoiceService) SetRate(c core.Category, rate decimal.Decimal) (core.RateTable, error) {
	c = core.Category(strings.TrimSpace(string(c)))
	if c == "" {
		return core.RateTable{}, fmt.Errorf("%w: empty name", core.ErrUnknownCategory)
	}
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	return s.rates.SetRate(c, rate), nil
}

// NewStay returns the header of a blank invoice dated today.
func (s *InvoiceService) NewStay() core.Stay {
	now := s.now()
	today := core.NewDate(now.Year(), int(now.Month()), now.Day())
	return core.Stay{
		InvoiceDate: today,
		CheckIn:     today,
		CheckOut:    today,
		Adults:      2,
		Rooms:       1,
		Nights:      1,
		Source:      core.BookingSources[0],
	}
}

// NewLine returns a blank room line carrying the stay defaults.
func (s *InvoiceService) NewLine(stay core.Stay) core.RoomLine {
	return core.NewRoomLine(max(stay.Rooms, 0), max(stay.Nights, 0))
}

// EditLine applies one field edit to a line using the current rates.
func (s *InvoiceService) EditLine(l core.RoomLine, field, value string) (core.RoomLine, error) {
	edited, err := core.ApplyEdit(l, field, value, s.rates.Table())
	if err != nil {
		return l, err
	}
	s.metrics.LineEdited(strings.ToLower(strings.TrimSpace(field)))
	return edited, nil
}

// RefreshLines re-applies current category defaults to lines that use them.
func (s *InvoiceService) RefreshLines(lines []core.RoomLine) []core.RoomLine {
	return core.RefreshRates(lines, s.rates.Table())
}

// Preview computes an unnumbered invoice. Nothing is stored or counted.
func (s *InvoiceService) Preview(hotel core.Hotel, stay core.Stay, lines []core.RoomLine) core.Invoice {
	return core.BuildInvoice("", hotel, stay, lines)
}

// NextNumber reports the number the next generated invoice would get.
func (s *InvoiceService) NextNumber(ctx context.Context, stay core.Stay) (string, error) {
	return s.numberer.Peek(ctx, s.invoiceDate(stay).Time)
}

// Generate assigns the next number for the invoice month, builds the invoice
// and keeps it for later downloads. Register publication failures are logged
// and do not fail generation.
func (s *InvoiceService) Generate(ctx context.Context, hotel core.Hotel, stay core.Stay, lines []core.RoomLine) (core.Invoice, error) {
	stay.InvoiceDate = s.invoiceDate(stay)

	number, err := s.numberer.Next(ctx, stay.InvoiceDate.Time)
	if err != nil {
		s.metrics.CounterError(s.backend)
		return core.Invoice{}, fmt.Errorf("assign invoice number: %w", err)
	}

	inv := core.BuildInvoice(number, hotel, stay, lines)
	s.cache.Set(inv.Number, inv)

	s.metrics.InvoiceGenerated(inv.Totals.GrandTotal.InexactFloat64())
	s.logger.InfoContext(ctx, "Invoice generated",
		log.NewFields().
			WithOperation(log.OpCreate).
			WithInvoice(inv.Number, inv.Stay.GuestName, inv.Totals.GrandTotal.StringFixed(2), len(inv.Lines)).
			ToSlice()...)

	s.publish(ctx, inv)
	return inv, nil
}

func (s *InvoiceService) publish(ctx context.Context, inv core.Invoice) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishInvoiceGenerated(ctx, amqp.NewInvoiceGeneratedMessage(inv)); err != nil {
		s.metrics.Export(false)
		s.logger.ErrorContext(ctx, "Failed to publish invoice to register",
			log.NewFields().
				WithOperation(log.OpExport).
				WithError(err).
				ToSlice()...)
	}
}

// Lookup returns a generated invoice still held in the cache.
func (s *InvoiceService) Lookup(number string) (core.Invoice, error) {
	inv, ok := s.cache.Get(strings.TrimSpace(number))
	if !ok {
		return core.Invoice{}, fmt.Errorf("%w: %s", ErrInvoiceNotFound, number)
	}
	return inv, nil
}

// Render produces a download of a cached invoice and its file name.
func (s *InvoiceService) Render(ctx context.Context, number string, f render.Format) ([]byte, string, error) {
	r, ok := s.renderers[f]
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	inv, err := s.Lookup(number)
	if err != nil {
		return nil, "", err
	}

	start := time.Now()
	data, err := r.Render(ctx, inv)
	s.metrics.ObserveRender(string(f), start)
	if err != nil {
		return nil, "", fmt.Errorf("render %s as %s: %w", inv.Number, f, err)
	}
	return data, render.Filename(inv, f), nil
}

func (s *InvoiceService) invoiceDate(stay core.Stay) core.Date {
	if !stay.InvoiceDate.IsZero() {
		return stay.InvoiceDate
	}
	now := s.now()
	return core.NewDate(now.Year(), int(now.Month()), now.Day())
}
