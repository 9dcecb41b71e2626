// Package numbering hands out sequential invoice numbers of the form
// INV-<year>-<mm>-<seq>, with one counter per calendar month.
package numbering

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"folio/internal/store"
)

// FormatInvoiceNumber renders INV-2025-03-007. The sequence is zero padded to
// three digits and grows past 999.
func FormatInvoiceNumber(year, month, seq int) string {
	return fmt.Sprintf("INV-%d-%02d-%03d", year, month, seq)
}

// CounterKey is the store key holding the counter of a month.
func CounterKey(year, month int) string {
	return fmt.Sprintf("invoiceCounter-%d-%02d", year, month)
}

// Numberer assigns invoice numbers from counters kept in a store.
type Numberer struct {
	mu    sync.Mutex
	store store.KV
}

func New(kv store.KV) *Numberer {
	return &Numberer{store: kv}
}

// Next returns the next number for the month of date and persists the
// counter. Stores implementing store.Incrementer are bumped atomically;
// otherwise the read-modify-write is serialised within this process.
func (n *Numberer) Next(ctx context.Context, date time.Time) (string, error) {
	year, month := date.Year(), int(date.Month())
	key := CounterKey(year, month)

	if inc, ok := n.store.(store.Incrementer); ok {
		seq, err := inc.Incr(ctx, key)
		if err != nil {
			return "", fmt.Errorf("increment invoice counter: %w", err)
		}
		return FormatInvoiceNumber(year, month, int(seq)), nil
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	raw, _, err := n.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("read invoice counter: %w", err)
	}
	seq := store.ParseCounter(raw) + 1
	if err := n.store.Set(ctx, key, strconv.FormatInt(seq, 10)); err != nil {
		return "", fmt.Errorf("write invoice counter: %w", err)
	}
	return FormatInvoiceNumber(year, month, int(seq)), nil
}

// Peek returns the number Next would assign without consuming it.
func (n *Numberer) Peek(ctx context.Context, date time.Time) (string, error) {
	year, month := date.Year(), int(date.Month())
	raw, _, err := n.store.Get(ctx, CounterKey(year, month))
	if err != nil {
		return "", fmt.Errorf("read invoice counter: %w", err)
	}
	return FormatInvoiceNumber(year, month, int(store.ParseCounter(raw)+1)), nil
}

