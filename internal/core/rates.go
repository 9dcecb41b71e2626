package core

import (
	"github.com/shopspring/decimal"
)

// RateTable maps room categories to their default nightly rate. It keeps the
// order in which categories were added so forms and summaries list them
// consistently. The zero value is an empty, usable table.
type RateTable struct {
	order []Category
	rates map[Category]decimal.Decimal
}

// DefaultRateTable returns the stock categories and rates.
func DefaultRateTable() RateTable {
	var t RateTable
	t.Set("Deluxe room", decimal.NewFromInt(2500))
	t.Set("Standard room", decimal.NewFromInt(2000))
	t.Set("Family room", decimal.NewFromInt(4500))
	t.Set("Dormitory", decimal.NewFromInt(1200))
	return t
}

// Rate returns the default rate for a category.
func (t RateTable) Rate(c Category) (decimal.Decimal, bool) {
	r, ok := t.rates[c]
	return r, ok
}

// Has reports whether the category is known.
func (t RateTable) Has(c Category) bool {
	_, ok := t.rates[c]
	return ok
}

// Set adds a category or changes its rate. Negative rates are stored as zero.
func (t *RateTable) Set(c Category, rate decimal.Decimal) {
	if t.rates == nil {
		t.rates = make(map[Category]decimal.Decimal)
	}
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	if _, ok := t.rates[c]; !ok {
		t.order = append(t.order, c)
	}
	t.rates[c] = rate
}

// Categories returns the categories in insertion order.
func (t RateTable) Categories() []Category {
	return append([]Category(nil), t.order...)
}

// Len returns the number of categories.
func (t RateTable) Len() int {
	return len(t.order)
}

// Clone returns an independent copy.
func (t RateTable) Clone() RateTable {
	var out RateTable
	for _, c := range t.order {
		out.Set(c, t.rates[c])
	}
	return out
}
