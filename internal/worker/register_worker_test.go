package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"folio/internal/amqp"
	"folio/internal/metrics"
	"folio/internal/sheets"
	"folio/internal/sheets/memory"
)

type failingRegister struct{ err error }

func (f failingRegister) AppendInvoice(context.Context, sheets.RegisterRow) (string, error) {
	return "", f.err
}

func sampleMessage() *amqp.InvoiceGeneratedMessage {
	return &amqp.InvoiceGeneratedMessage{
		Number:      "INV-2025-03-001",
		InvoiceDate: "2025-03-05",
		GuestName:   "Asha Rao",
		BillTo:      "Asha Rao",
		Source:      "Direct",
		Lines:       2,
		Subtotal:    decimal.NewFromInt(15000),
		SGST:        decimal.NewFromInt(375),
		CGST:        decimal.NewFromInt(375),
		GrandTotal:  decimal.NewFromInt(15750),
	}
}

func exportCount(t *testing.T, m *metrics.Metrics, result string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() != "folio_register_exports_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "result" && l.GetValue() == result {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestHandleInvoiceGenerated(t *testing.T) {
	reg := memory.New()
	m := metrics.New()
	w := NewRegisterWorker(reg, m)
	ctx := context.Background()

	if err := w.HandleInvoiceGenerated(ctx, sampleMessage()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Redelivery must not duplicate the row.
	if err := w.HandleInvoiceGenerated(ctx, sampleMessage()); err != nil {
		t.Fatalf("unexpected error on redelivery: %v", err)
	}

	rows := reg.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 register row, got %d", len(rows))
	}
	got := rows[0]
	if got.Number != "INV-2025-03-001" || got.Lines != 2 || got.Year() != 2025 {
		t.Errorf("unexpected row: %+v", got)
	}
	if !got.GrandTotal.Equal(decimal.NewFromInt(15750)) {
		t.Errorf("expected grand total 15750, got %s", got.GrandTotal)
	}
	if n := exportCount(t, m, "ok"); n != 2 {
		t.Errorf("expected 2 successful exports, got %v", n)
	}
}

func TestHandleInvoiceGeneratedErrors(t *testing.T) {
	m := metrics.New()
	boom := errors.New("sheets unavailable")
	w := NewRegisterWorker(failingRegister{err: boom}, m)

	err := w.HandleInvoiceGenerated(context.Background(), sampleMessage())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}

	// Messages without a number are dropped, not retried.
	if err := w.HandleInvoiceGenerated(context.Background(), &amqp.InvoiceGeneratedMessage{}); err != nil {
		t.Fatalf("expected nil for empty message, got %v", err)
	}
	if n := exportCount(t, m, "error"); n != 2 {
		t.Errorf("expected 2 failed exports, got %v", n)
	}
}

func TestRowFromMessage(t *testing.T) {
	row := RowFromMessage(sampleMessage())
	values := row.Values()
	if len(values) != len(sheets.RegisterHeader) {
		t.Fatalf("expected %d values, got %d", len(sheets.RegisterHeader), len(values))
	}
	if values[9] != "15750.00" {
		t.Errorf("expected grand total cell 15750.00, got %v", values[9])
	}
}
