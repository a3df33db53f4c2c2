// Package store holds the ordered rate table owned by the application.
// The engine never reads it directly; callers pass Periods() snapshots.
package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"utilfee/core/rates"
	"utilfee/core/types"
	"utilfee/internal/errors"
)

// DefaultPeriodName is the name given to periods created by Add
const DefaultPeriodName = "New period"

// Table is an ordered, mutex-guarded sequence of periods.
// Order matters only as the resolution tie-break.
type Table struct {
	mu      sync.RWMutex
	periods []types.Period
}

// New creates a table from already normalized periods
func New(periods []types.Period) *Table {
	t := &Table{}
	t.periods = clonePeriods(periods)
	return t
}

// Periods returns a snapshot of the periods in store order
func (t *Table) Periods() []types.Period {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return clonePeriods(t.periods)
}

// Len returns the number of periods
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.periods)
}

// Get returns a copy of the period with the given id
func (t *Table) Get(id string) (types.Period, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	i := t.indexOf(id)
	if i < 0 {
		return types.Period{}, false
	}
	return clonePeriod(t.periods[i]), true
}

// Replace swaps the whole table for a normalized version of raws
func (t *Table) Replace(raws []rates.RawPeriod) {
	periods := rates.NormalizeAll(raws)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.periods = periods
}

// Add prepends an all-zero period starting on start and returns it.
// An empty name becomes DefaultPeriodName.
func (t *Table) Add(name string, start types.Date) types.Period {
	if name == "" {
		name = DefaultPeriodName
	}
	p := rates.Normalize(rates.RawPeriod{
		ID:    uuid.New().String(),
		Name:  name,
		Start: start.String(),
	})

	t.mu.Lock()
	defer t.mu.Unlock()
	t.periods = append([]types.Period{p}, t.periods...)
	return clonePeriod(p)
}

// Remove deletes a period
func (t *Table) Remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.indexOf(id)
	if i < 0 {
		return errors.NotFound("period", id)
	}
	t.periods = append(t.periods[:i:i], t.periods[i+1:]...)
	return nil
}

// Rename changes a period's display name
func (t *Table) Rename(id, name string) error {
	return t.update(id, func(raw *rates.RawPeriod) {
		raw.Name = name
	})
}

// SetStart changes a period's start date. Text that is not a date is kept
// and makes the period unmatchable until corrected.
func (t *Table) SetStart(id, start string) error {
	return t.update(id, func(raw *rates.RawPeriod) {
		raw.Start = start
	})
}

// SetEnd changes a period's end date; an empty string makes it open-ended
func (t *Table) SetEnd(id, end string) error {
	return t.update(id, func(raw *rates.RawPeriod) {
		raw.End = end
	})
}

// SetRate replaces one side of a table cell. The amount is coerced like any
// imported value, so it never fails on content.
func (t *Table) SetRate(id string, age types.AgeClass, band types.Band, audience types.Audience, amount any) error {
	if !age.IsValid() {
		return errors.Newf(errors.TypeInput, "unknown age class: %v", age)
	}
	if !band.IsValid() {
		return errors.Newf(errors.TypeInput, "unknown band: %v", band)
	}
	value := rates.CoerceAmount(amount)
	return t.update(id, func(raw *rates.RawPeriod) {
		cell := raw.Tables[age.String()][band.String()]
		if audience == types.AudienceLegal {
			cell.Legal = value
		} else {
			cell.Phys = value
		}
		raw.Tables[age.String()][band.String()] = cell
	})
}

// Rate returns one side of a table cell
func (t *Table) Rate(id string, age types.AgeClass, band types.Band, audience types.Audience) (decimal.Decimal, error) {
	p, ok := t.Get(id)
	if !ok {
		return decimal.Zero, errors.NotFound("period", id)
	}
	return p.Tables.Row(age, band).Get(audience), nil
}

// update edits a period through its raw form so every edit passes the
// normalizer again
func (t *Table) update(id string, edit func(raw *rates.RawPeriod)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.indexOf(id)
	if i < 0 {
		return errors.NotFound("period", id)
	}
	raw := rates.Raw(t.periods[i])
	edit(&raw)
	t.periods[i] = rates.Normalize(raw)
	return nil
}

func (t *Table) indexOf(id string) int {
	for i := range t.periods {
		if t.periods[i].ID == id {
			return i
		}
	}
	return -1
}

func clonePeriods(in []types.Period) []types.Period {
	out := make([]types.Period, len(in))
	for i := range in {
		out[i] = clonePeriod(in[i])
	}
	return out
}

// clonePeriod copies the End pointer; Tables is an array and copies by value
func clonePeriod(p types.Period) types.Period {
	if p.End != nil {
		end := *p.End
		p.End = &end
	}
	return p
}
