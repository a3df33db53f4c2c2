// Package fee evaluates the utilization fee for a resolved period and band.
// Evaluation is a pure function of its inputs and is safe to call
// concurrently.
package fee

import (
	"github.com/shopspring/decimal"

	"utilfee/core/types"
)

// LatePolicyStart is the first period start date subject to the hybrid minimums
var LatePolicyStart = types.NewDate(2025, 1, 1)

// Result is an evaluated fee
type Result struct {
	// PeriodID identifies the period the rates came from
	PeriodID string `json:"period_id"`

	// PeriodName is the display name of the period
	PeriodName string `json:"period_name"`

	// Age is the rubric age class
	Age types.AgeClass `json:"-"`

	// Engine is the powertrain
	Engine types.EngineKind `json:"engine"`

	// Band is the rubric band
	Band types.Band `json:"-"`

	// Base is the unmodified table row
	Base types.RubricRow `json:"base"`

	// Preferential is the rate for individuals after overrides
	Preferential decimal.Decimal `json:"preferential"`

	// Commercial is the rate for legal entities after overrides
	Commercial decimal.Decimal `json:"commercial"`

	// Difference is Commercial - Preferential; it may be negative
	Difference decimal.Decimal `json:"difference"`

	// Floors lists the minimums that raised a rate
	Floors []AppliedFloor `json:"floors,omitempty"`
}

// AppliedFloor records a minimum that raised a rate
type AppliedFloor struct {
	Rule     string          `json:"rule"`
	Audience types.Audience  `json:"audience"`
	From     decimal.Decimal `json:"from"`
	To       decimal.Decimal `json:"to"`
}

// Evaluate looks up the base rates and applies period overrides.
// ok is false when the period is nil or the band is absent.
func Evaluate(p *types.Period, age types.AgeClass, band types.Band, engine types.EngineKind, policy types.HybridPolicy) (*Result, bool) {
	if p == nil || !band.IsValid() {
		return nil, false
	}

	base := p.Tables.Row(age, band)
	result := &Result{
		PeriodID:     p.ID,
		PeriodName:   p.Name,
		Age:          age,
		Engine:       engine,
		Band:         band,
		Base:         base,
		Preferential: base.Phys,
		Commercial:   base.Legal,
	}

	if IsLatePolicy(p) {
		for _, f := range floorsFor(engine) {
			if !f.matches(age, band, policy) {
				continue
			}
			current := result.get(f.Audience)
			if current.LessThan(f.Minimum) {
				result.set(f.Audience, f.Minimum)
				result.Floors = append(result.Floors, AppliedFloor{
					Rule:     f.Name,
					Audience: f.Audience,
					From:     current,
					To:       f.Minimum,
				})
			}
		}
	}

	result.Difference = result.Commercial.Sub(result.Preferential)
	return result, true
}

// IsLatePolicy reports whether the period starts on or after LatePolicyStart
func IsLatePolicy(p *types.Period) bool {
	return p.Start.Valid() && !p.Start.Before(LatePolicyStart)
}

func (r *Result) get(a types.Audience) decimal.Decimal {
	if a == types.AudienceLegal {
		return r.Commercial
	}
	return r.Preferential
}

func (r *Result) set(a types.Audience, v decimal.Decimal) {
	if a == types.AudienceLegal {
		r.Commercial = v
	} else {
		r.Preferential = v
	}
}
