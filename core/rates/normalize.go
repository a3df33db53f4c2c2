// Package rates normalizes externally supplied rate tables.
// Every ingestion path (demo data, persisted reloads, imports, edits) goes
// through Normalize so the rest of the engine can assume complete tables.
package rates

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"utilfee/core/types"
)

// RawRow is an unvalidated table cell. Values may be anything a JSON or HCL
// decoder produces.
type RawRow struct {
	Phys  any `json:"phys"`
	Legal any `json:"legal"`
}

// RawPeriod is a partially specified period as read from storage or an import
type RawPeriod struct {
	ID     string                       `json:"id"`
	Name   string                       `json:"name"`
	Start  string                       `json:"start"`
	End    string                       `json:"end,omitempty"`
	Tables map[string]map[string]RawRow `json:"tables"`
}

// Normalize converts a raw period into a fully shaped Period.
// It never fails: absent or non-numeric amounts become zero.
func Normalize(raw RawPeriod) types.Period {
	p := types.Period{
		ID:     raw.ID,
		Name:   raw.Name,
		Tables: types.ZeroTables(),
	}
	p.Start, _ = types.ParseDate(raw.Start)
	if strings.TrimSpace(raw.End) != "" {
		end, _ := types.ParseDate(raw.End)
		p.End = &end
	}

	for ageKey, bands := range raw.Tables {
		age, ok := types.ParseAgeClass(ageKey)
		if !ok {
			continue
		}
		for band, row := range canonicalBands(bands) {
			p.Tables.Set(age, band, types.RubricRow{
				Phys:  CoerceAmount(row.Phys),
				Legal: CoerceAmount(row.Legal),
			})
		}
	}

	return p
}

// NormalizeAll normalizes each period, preserving order
func NormalizeAll(raws []RawPeriod) []types.Period {
	out := make([]types.Period, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw))
	}
	return out
}

// Raw converts a normalized period back to its raw form
func Raw(p types.Period) RawPeriod {
	raw := RawPeriod{
		ID:     p.ID,
		Name:   p.Name,
		Start:  p.Start.String(),
		Tables: make(map[string]map[string]RawRow, len(types.AgeClasses)),
	}
	if p.End != nil {
		raw.End = p.End.String()
	}
	for _, age := range types.AgeClasses {
		rows := make(map[string]RawRow, len(types.Bands))
		for _, band := range types.Bands {
			row := p.Tables.Row(age, band)
			rows[band.String()] = RawRow{Phys: row.Phys, Legal: row.Legal}
		}
		raw.Tables[age.String()] = rows
	}
	return raw
}

// canonicalBands maps raw band keys to bands. A canonical key wins over an
// alias for the same band; unknown keys are dropped.
func canonicalBands(raw map[string]RawRow) map[types.Band]RawRow {
	out := make(map[types.Band]RawRow, len(raw))
	canonical := make(map[types.Band]bool, len(raw))
	for key, row := range raw {
		band, ok := types.ParseBand(key)
		if !ok {
			continue
		}
		isCanonical := key == band.String()
		if canonical[band] && !isCanonical {
			continue
		}
		out[band] = row
		canonical[band] = canonical[band] || isCanonical
	}
	return out
}

// maxAmountDigits bounds the integer digits of a stored amount
const maxAmountDigits = 18

// CoerceAmount converts an arbitrary value to a non-negative whole-ruble amount.
// Numbers and numeric strings are taken as-is, true counts as 1, anything
// else is zero. Negative values clamp to zero; fractions round half away
// from zero. Values with more than maxAmountDigits integer digits are zero.
func CoerceAmount(v any) decimal.Decimal {
	d := toDecimal(v)
	if d.Sign() <= 0 {
		return types.Amount(0)
	}
	// Checked before Round, which would scale the coefficient by the exponent.
	digits := int64(len(d.Coefficient().String())) + int64(d.Exponent())
	if digits < 0 || digits > maxAmountDigits {
		return types.Amount(0)
	}
	return d.Round(0)
}

func toDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return *x
	case fmt.Stringer:
		// json.Number and similar textual numbers
		return parseNumeric(x.String())
	case string:
		return parseNumeric(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case float32:
		return toDecimal(float64(x))
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case int32:
		return decimal.NewFromInt(int64(x))
	case bool:
		if x {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

func parseNumeric(s string) decimal.Decimal {
	text := strings.TrimSpace(s)
	if text == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero
	}
	return d
}
