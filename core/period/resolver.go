// Package period resolves which rate period applies to a calendar date.
package period

import (
	"utilfee/core/types"
)

// Resolve returns the first period, in store order, whose inclusive range
// contains the date. ok is false when the date does not parse or no period
// matches. Overlapping periods are not ranked by recency: store order wins.
func Resolve(date string, periods []types.Period) (*types.Period, bool) {
	d, ok := types.ParseDate(date)
	if !ok {
		return nil, false
	}
	return ResolveDate(d, periods)
}

// ResolveDate is Resolve for an already parsed date
func ResolveDate(d types.Date, periods []types.Period) (*types.Period, bool) {
	if !d.Valid() {
		return nil, false
	}
	for i := range periods {
		if periods[i].Contains(d) {
			return &periods[i], true
		}
	}
	return nil, false
}

// Overlap describes two periods whose ranges intersect
type Overlap struct {
	// First is the period that wins resolution for the shared dates
	First types.Period

	// Second is the shadowed period
	Second types.Period
}

// FindOverlaps reports every pair of valid periods whose ranges intersect,
// in store order. Resolution still works with overlaps; this exists so
// callers can warn about shadowed dates.
func FindOverlaps(periods []types.Period) []Overlap {
	var out []Overlap
	for i := 0; i < len(periods); i++ {
		for j := i + 1; j < len(periods); j++ {
			if overlaps(&periods[i], &periods[j]) {
				out = append(out, Overlap{First: periods[i], Second: periods[j]})
			}
		}
	}
	return out
}

func overlaps(a, b *types.Period) bool {
	if !isWellFormed(a) || !isWellFormed(b) {
		return false
	}
	// a starts after b ends, or b starts after a ends
	if b.End != nil && a.Start.After(*b.End) {
		return false
	}
	if a.End != nil && b.Start.After(*a.End) {
		return false
	}
	return true
}

func isWellFormed(p *types.Period) bool {
	if !p.Start.Valid() {
		return false
	}
	return p.End == nil || (p.End.Valid() && !p.End.Before(p.Start))
}
