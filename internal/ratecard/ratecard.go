// Package ratecard loads the default nightly rate of each room category from
// a YAML file and keeps it current while the file changes.
package ratecard

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"folio/internal/core"
	"folio/internal/log"
)

// Entry is one category in rates.yml:
//
//	rates:
//	  - category: Deluxe room
//	    rate: 2500
type Entry struct {
	Category string `mapstructure:"category"`
	Rate     string `mapstructure:"rate"`
}

// Holder owns the current rate table. Reads return clones, so callers may
// edit what they get without affecting other requests.
type Holder struct {
	mu       sync.RWMutex
	table    core.RateTable
	onChange []func(core.RateTable)
	logger   *log.Logger
}

// NewHolder returns a holder seeded with table.
func NewHolder(table core.RateTable, logger *log.Logger) *Holder {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Holder{table: table.Clone(), logger: logger.WithComponent(log.ComponentRateCard)}
}

// Load reads path and starts watching it. A missing file falls back to the
// built-in defaults; a file that exists but is invalid is an error.
func Load(path string, logger *log.Logger) (*Holder, error) {
	h := NewHolder(core.DefaultRateTable(), logger)
	if strings.TrimSpace(path) == "" {
		return h, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		h.logger.Info("Rate card not found, using defaults", "path", path)
		return h, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read rate card: %w", err)
	}
	table, err := decode(v)
	if err != nil {
		return nil, fmt.Errorf("rate card %s: %w", path, err)
	}
	h.Replace(table)
	h.logger.Info("Rate card loaded", "path", path, "categories", table.Len())

	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decode(v)
		if err != nil {
			h.logger.Warn("Invalid rate card ignored", log.FieldError, err, log.FieldOperation, log.OpReload)
			return
		}
		h.Replace(updated)
		h.logger.Info("Rate card reloaded", "path", e.Name, "categories", updated.Len())
	})
	v.WatchConfig()

	return h, nil
}

func decode(v *viper.Viper) (core.RateTable, error) {
	var entries []Entry
	if err := v.UnmarshalKey("rates", &entries); err != nil {
		return core.RateTable{}, fmt.Errorf("decode rates: %w", err)
	}
	return Build(entries)
}

// Build validates entries and turns them into a table in file order.
func Build(entries []Entry) (core.RateTable, error) {
	var table core.RateTable
	if len(entries) == 0 {
		return table, errors.New("rates cannot be empty")
	}
	for i, e := range entries {
		name := strings.TrimSpace(e.Category)
		if name == "" {
			return core.RateTable{}, fmt.Errorf("rates[%d]: category is required", i)
		}
		if table.Has(core.Category(name)) {
			return core.RateTable{}, fmt.Errorf("rates[%d]: duplicate category %q", i, name)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(e.Rate))
		if err != nil {
			return core.RateTable{}, fmt.Errorf("rates[%d]: invalid rate %q", i, e.Rate)
		}
		if rate.IsNegative() {
			return core.RateTable{}, fmt.Errorf("rates[%d]: rate must not be negative", i)
		}
		table.Set(core.Category(name), rate)
	}
	return table, nil
}

// Table returns a copy of the current table.
func (h *Holder) Table() core.RateTable {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.table.Clone()
}

// Replace swaps in a new table and notifies subscribers.
func (h *Holder) Replace(table core.RateTable) {
	h.mu.Lock()
	h.table = table.Clone()
	subs := slices.Clone(h.onChange)
	h.mu.Unlock()

	for _, fn := range subs {
		fn(table.Clone())
	}
}

// SetRate changes or adds one category at runtime. The change lasts until the
// next file reload.
func (h *Holder) SetRate(c core.Category, rate decimal.Decimal) core.RateTable {
	h.mu.Lock()
	h.table.Set(c, rate)
	table := h.table.Clone()
	subs := slices.Clone(h.onChange)
	h.mu.Unlock()

	for _, fn := range subs {
		fn(table.Clone())
	}
	return table
}

// OnChange registers fn to run after every table change.
func (h *Holder) OnChange(fn func(core.RateTable)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}
