package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"folio/internal/sheets"
)

// Register keeps register rows in memory.
type Register struct {
	mu    sync.Mutex
	rows  []sheets.RegisterRow
	index map[string]int
}

var _ sheets.RegisterWriter = (*Register)(nil)

func New() *Register {
	return &Register{index: make(map[string]int)}
}

// AppendInvoice stores the row and returns a synthetic row reference.
func (r *Register) AppendInvoice(_ context.Context, row sheets.RegisterRow) (string, error) {
	if row.Number == "" {
		return "", errors.New("invoice number is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.index[row.Number]; ok {
		return fmt.Sprintf("mem:%d", i+1), nil
	}
	r.rows = append(r.rows, row)
	r.index[row.Number] = len(r.rows) - 1
	return fmt.Sprintf("mem:%d", len(r.rows)), nil
}

// Rows returns a copy of the stored rows in append order.
func (r *Register) Rows() []sheets.RegisterRow {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sheets.RegisterRow(nil), r.rows...)
}
