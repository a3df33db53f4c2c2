// Package demo provides the built-in rate periods and quick presets.
// The values are authoring defaults, not a legal reference.
package demo

import (
	"utilfee/core/rates"
	"utilfee/core/types"
)

type cells map[string]rates.RawRow

func row(phys, legal int64) rates.RawRow {
	return rates.RawRow{Phys: phys, Legal: legal}
}

func rawPeriods() []rates.RawPeriod {
	return []rates.RawPeriod{
		{
			ID:    "2023-08-01",
			Name:  "Period A (01.08.2023–30.09.2024)",
			Start: "2023-08-01",
			End:   "2024-09-30",
			Tables: map[string]map[string]rates.RawRow{
				"new": cells{
					"<=1.0":   row(3400, 81200),
					"1.0–2.0": row(3400, 306000),
					"2.0–3.0": row(3400, 844800),
					"3.0–3.5": row(970000, 970000),
					">3.5":    row(1235000, 1235000),
					"HYB":     row(3400, 360000),
					"EV":      row(3400, 360000),
				},
				"used": cells{
					"<=1.0":   row(5200, 207200),
					"1.0–2.0": row(5200, 528800),
					"2.0–3.0": row(5200, 980400),
					"3.0–3.5": row(1459000, 1459000),
					">3.5":    row(1623800, 1623800),
					"HYB":     row(5200, 122000),
					"EV":      row(5200, 122000),
				},
			},
		},
		{
			ID:    "2024-10-01",
			Name:  "Period B (01.10.2024–31.12.2024)",
			Start: "2024-10-01",
			End:   "2024-12-31",
			Tables: map[string]map[string]rates.RawRow{
				"new": cells{
					"<=1.0":   row(3400, 150200),
					"1.0–2.0": row(3400, 556200),
					"2.0–3.0": row(3400, 1562800),
					"3.0–3.5": row(3400, 1794600),
					">3.5":    row(3400, 2285200),
					"HYB":     row(32604, 32604),
					"EV":      row(32604, 32604),
				},
				"used": cells{
					"<=1.0":   row(5200, 383400),
					"1.0–2.0": row(5200, 978200),
					"2.0–3.0": row(5200, 2366200),
					"3.0–3.5": row(5200, 2747200),
					">3.5":    row(5200, 3004000),
					"HYB":     row(122000, 122000),
					"EV":      row(122000, 122000),
				},
			},
		},
		{
			ID:    "2025-01-01",
			Name:  "Period C (from 01.01.2025)",
			Start: "2025-01-01",
			Tables: map[string]map[string]rates.RawRow{
				"new": cells{
					"<=1.0":   row(3400, 180200),
					"1.0–2.0": row(3400, 667400),
					"2.0–3.0": row(3400, 1875000),
					"3.0–3.5": row(3400, 2153400),
					">3.5":    row(3400, 2742200),
					"HYB":     row(667000, 667000),
					"EV":      row(667000, 667000),
				},
				"used": cells{
					"<=1.0":   row(5200, 460000),
					"1.0–2.0": row(5200, 1174000),
					"2.0–3.0": row(5200, 2839400),
					"3.0–3.5": row(5200, 3296800),
					">3.5":    row(5200, 3604800),
					"HYB":     row(1174000, 1174000),
					"EV":      row(1174000, 1174000),
				},
			},
		},
	}
}

// Periods returns a fresh copy of the built-in periods
func Periods() []types.Period {
	return rates.NormalizeAll(rawPeriods())
}
