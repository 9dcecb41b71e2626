package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"folio/internal/amqp"
	"folio/internal/log"
	"folio/internal/metrics"
	"folio/internal/sheets"
)

// RegisterWorker copies generated invoices into the invoice register.
type RegisterWorker struct {
	register sheets.RegisterWriter
	metrics  *metrics.Metrics
}

func NewRegisterWorker(register sheets.RegisterWriter, m *metrics.Metrics) *RegisterWorker {
	return &RegisterWorker{
		register: register,
		metrics:  m,
	}
}

// HandleInvoiceGenerated appends the invoice carried by msg to the register.
// A returned error makes the consumer requeue the message; appends are
// idempotent by invoice number so redelivery is safe.
func (w *RegisterWorker) HandleInvoiceGenerated(ctx context.Context, msg *amqp.InvoiceGeneratedMessage) error {
	if msg == nil || msg.Number == "" {
		// Nothing to retry here, drop it.
		slog.WarnContext(ctx, "Skipping register message without invoice number")
		w.metrics.Export(false)
		return nil
	}

	slog.InfoContext(ctx, "Processing register message",
		log.FieldInvoiceNumber, msg.Number,
		log.FieldGrandTotal, msg.GrandTotal.StringFixed(2))

	ref, err := w.register.AppendInvoice(ctx, RowFromMessage(msg))
	if err != nil {
		w.metrics.Export(false)
		if errors.Is(err, context.Canceled) {
			return err
		}
		slog.ErrorContext(ctx, "Failed to append invoice to register",
			log.FieldInvoiceNumber, msg.Number,
			log.FieldOperation, log.OpAppend,
			log.FieldError, err)
		return fmt.Errorf("append %s to register: %w", msg.Number, err)
	}

	w.metrics.Export(true)
	slog.InfoContext(ctx, "Invoice added to register",
		log.FieldInvoiceNumber, msg.Number,
		log.FieldRegisterRef, ref)
	return nil
}

// RowFromMessage maps a register message onto a register row.
func RowFromMessage(msg *amqp.InvoiceGeneratedMessage) sheets.RegisterRow {
	return sheets.RegisterRow{
		Number:      msg.Number,
		InvoiceDate: msg.InvoiceDate,
		GuestName:   msg.GuestName,
		BillTo:      msg.BillTo,
		Source:      msg.Source,
		Lines:       msg.Lines,
		Subtotal:    msg.Subtotal,
		SGST:        msg.SGST,
		CGST:        msg.CGST,
		GrandTotal:  msg.GrandTotal,
	}
}
