package amqp

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"folio/internal/core"
)

// InvoiceGeneratedMessage carries the register row of a numbered invoice.
// It is self-contained because invoices are not persisted.
type InvoiceGeneratedMessage struct {
	Number      string          `json:"number"`
	InvoiceDate string          `json:"invoice_date"`
	GuestName   string          `json:"guest_name"`
	BillTo      string          `json:"bill_to"`
	Source      string          `json:"source"`
	Lines       int             `json:"lines"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	SGST        decimal.Decimal `json:"sgst"`
	CGST        decimal.Decimal `json:"cgst"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	Timestamp   time.Time       `json:"timestamp"`
}

// NewInvoiceGeneratedMessage builds the message for inv.
func NewInvoiceGeneratedMessage(inv core.Invoice) *InvoiceGeneratedMessage {
	return &InvoiceGeneratedMessage{
		Number:      inv.Number,
		InvoiceDate: inv.Stay.InvoiceDate.ISO(),
		GuestName:   inv.Stay.GuestName,
		BillTo:      inv.Stay.BillToName(),
		Source:      inv.Stay.Source,
		Lines:       len(inv.Lines),
		Subtotal:    inv.Totals.Subtotal,
		SGST:        inv.Totals.SGST,
		CGST:        inv.Totals.CGST,
		GrandTotal:  inv.Totals.GrandTotal,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *InvoiceGeneratedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// InvoiceGeneratedMessageFromJSON decodes a message body.
func InvoiceGeneratedMessageFromJSON(data []byte) (*InvoiceGeneratedMessage, error) {
	var msg InvoiceGeneratedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
