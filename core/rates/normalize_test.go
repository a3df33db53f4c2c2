package rates

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utilfee/core/types"
)

func TestNormalizeEmpty(t *testing.T) {
	p := Normalize(RawPeriod{})

	assert.Empty(t, p.ID)
	assert.False(t, p.Start.Valid())
	assert.Nil(t, p.End)
	for _, age := range types.AgeClasses {
		for _, band := range types.Bands {
			row := p.Tables.Row(age, band)
			assert.True(t, row.Equal(types.ZeroRow()), "%s %s", age, band)
		}
	}
}

func TestNormalizePartialTables(t *testing.T) {
	p := Normalize(RawPeriod{
		ID:    "p1",
		Name:  "Partial",
		Start: "2025-01-01",
		End:   "2025-12-31",
		Tables: map[string]map[string]RawRow{
			"new": {
				"1.0-2.0": {Phys: "3400", Legal: 667400.0},
				"EV":      {Phys: 3400},
				"bogus":   {Phys: 1, Legal: 1},
			},
			"vintage": {
				"EV": {Phys: 99, Legal: 99},
			},
		},
	})

	assert.Equal(t, "2025-01-01", p.Start.String())
	require.NotNil(t, p.End)
	assert.Equal(t, "2025-12-31", p.End.String())
	assert.True(t, p.Tables.Row(types.AgeNew, types.Band1To2).Equal(types.Row(3400, 667400)))
	assert.True(t, p.Tables.Row(types.AgeNew, types.BandElectric).Equal(types.Row(3400, 0)))
	assert.True(t, p.Tables.Row(types.AgeUsed, types.BandElectric).Equal(types.ZeroRow()))
}

func TestNormalizeCanonicalKeyWins(t *testing.T) {
	p := Normalize(RawPeriod{
		Tables: map[string]map[string]RawRow{
			"new": {
				"1.0-2.0": {Phys: 1, Legal: 1},
				"1.0–2.0": {Phys: 2, Legal: 2},
			},
		},
	})
	assert.True(t, p.Tables.Row(types.AgeNew, types.Band1To2).Equal(types.Row(2, 2)))
}

func TestNormalizeBlankEndIsOpen(t *testing.T) {
	p := Normalize(RawPeriod{Start: "2025-01-01", End: "  "})
	assert.True(t, p.IsOpenEnded())

	p = Normalize(RawPeriod{Start: "2025-01-01", End: "soon"})
	require.NotNil(t, p.End)
	assert.False(t, p.End.Valid())
	assert.Equal(t, "soon", p.End.String())
}

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"nil", nil, 0},
		{"int", 3400, 3400},
		{"int64", int64(1174000), 1174000},
		{"float", 667400.0, 667400},
		{"fraction rounds down", 1.4, 1},
		{"half rounds away from zero", 2.5, 3},
		{"negative clamps", -5, 0},
		{"negative string clamps", "-100", 0},
		{"numeric string", " 12345 ", 12345},
		{"exponent string", "1e3", 1000},
		{"garbage string", "abc", 0},
		{"json number", json.Number("7"), 7},
		{"decimal", decimal.RequireFromString("99.6"), 100},
		{"true", true, 1},
		{"false", false, 0},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
		{"slice", []int{1}, 0},
		{"half below one rounds up", "0.5", 1},
		{"small fraction", "0.4", 0},
		{"largest accepted", "999999999999999999", 999999999999999999},
		{"exponent at limit", "1e17", 100000000000000000},
		{"exponent past limit", "1e18", 0},
		{"beyond int64", json.Number("10000000000000000000"), 0},
		{"huge exponent", "1e50000000", 0},
		{"huge negative exponent", "1e-50000000", 0},
		{"huge float", 1e300, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceAmount(tt.in)
			assert.Equal(t, types.Amount(tt.want).String(), got.String())
		})
	}
}

func TestRawRoundTrip(t *testing.T) {
	original := Normalize(RawPeriod{
		ID:    "c",
		Name:  "Period C",
		Start: "2025-01-01",
		Tables: map[string]map[string]RawRow{
			"used": {"HYB": {Phys: 1174000, Legal: 1174000}},
		},
	})

	again := Normalize(Raw(original))
	assert.Equal(t, original.ID, again.ID)
	assert.Equal(t, original.Start.String(), again.Start.String())
	assert.Nil(t, again.End)
	want, err := json.Marshal(original.Tables)
	require.NoError(t, err)
	got, err := json.Marshal(again.Tables)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}
