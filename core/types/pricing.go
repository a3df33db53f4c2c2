// Package types - Rate table types
package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount returns a whole-ruble amount in canonical decimal form
func Amount(rubles int64) decimal.Decimal {
	return decimal.NewFromInt(rubles)
}

// RubricRow holds the two rates of one table cell
type RubricRow struct {
	// Phys is the preferential rate for individuals
	Phys decimal.Decimal `json:"phys"`

	// Legal is the commercial rate for legal entities
	Legal decimal.Decimal `json:"legal"`
}

// ZeroRow returns an all-zero row
func ZeroRow() RubricRow {
	return RubricRow{Phys: Amount(0), Legal: Amount(0)}
}

// Row creates a row from whole-ruble amounts
func Row(phys, legal int64) RubricRow {
	return RubricRow{Phys: Amount(phys), Legal: Amount(legal)}
}

// Get returns the rate for an audience
func (r RubricRow) Get(a Audience) decimal.Decimal {
	if a == AudienceLegal {
		return r.Legal
	}
	return r.Phys
}

// With returns a copy of the row with the audience's rate replaced
func (r RubricRow) With(a Audience, amount decimal.Decimal) RubricRow {
	if a == AudienceLegal {
		r.Legal = amount
	} else {
		r.Phys = amount
	}
	return r
}

// Equal compares amounts numerically
func (r RubricRow) Equal(o RubricRow) bool {
	return r.Phys.Equal(o.Phys) && r.Legal.Equal(o.Legal)
}

// MarshalJSON writes the amounts as JSON numbers
func (r RubricRow) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"phys":%s,"legal":%s}`, r.Phys.String(), r.Legal.String())), nil
}

// AgeTables is the complete rubric of a period, indexed by age class and band.
// Every cell exists by construction.
type AgeTables [ageClassCount][bandCount]RubricRow

// ZeroTables returns tables with every cell set to zero
func ZeroTables() AgeTables {
	var t AgeTables
	for _, age := range AgeClasses {
		for _, band := range Bands {
			t[age][band] = ZeroRow()
		}
	}
	return t
}

// Row returns a cell; out-of-range keys yield a zero row
func (t *AgeTables) Row(age AgeClass, band Band) RubricRow {
	if !age.IsValid() || !band.IsValid() {
		return ZeroRow()
	}
	return t[age][band]
}

// Set replaces a cell; out-of-range keys are ignored
func (t *AgeTables) Set(age AgeClass, band Band, row RubricRow) {
	if !age.IsValid() || !band.IsValid() {
		return
	}
	t[age][band] = row
}

// MarshalJSON writes {"new": {...}, "used": {...}} with bands in canonical order
func (t AgeTables) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, age := range AgeClasses {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(age.String())
		buf.Write(key)
		buf.WriteString(":{")
		for j, band := range Bands {
			if j > 0 {
				buf.WriteByte(',')
			}
			bandKey, _ := json.Marshal(band.String())
			buf.Write(bandKey)
			buf.WriteByte(':')
			row, err := t[age][band].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(row)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Period is a date range over which one rate table is authoritative
type Period struct {
	// ID is an opaque stable identifier
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Start is the first day the period applies (inclusive)
	Start Date `json:"start"`

	// End is the last day the period applies (inclusive, nil = open-ended)
	End *Date `json:"end,omitempty"`

	// Tables holds the rubric
	Tables AgeTables `json:"tables"`
}

// IsOpenEnded reports whether the period has no end date
func (p *Period) IsOpenEnded() bool {
	return p.End == nil
}

// Contains reports whether the date lies in [Start, End], both inclusive.
// Periods with an unparsable start or end never contain anything.
func (p *Period) Contains(d Date) bool {
	if !d.Valid() || !p.Start.Valid() {
		return false
	}
	if d.Before(p.Start) {
		return false
	}
	if p.End == nil {
		return true
	}
	if !p.End.Valid() {
		return false
	}
	return !d.After(*p.End)
}
