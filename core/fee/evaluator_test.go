package fee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utilfee/core/rates"
	"utilfee/core/types"
)

var (
	asElectroPolicy  = types.HybridPolicy{TreatAsElectro: true}
	combustionPolicy = types.HybridPolicy{TreatAsElectro: false}
)

// zeroPeriod is an all-zero period so every applicable floor shows up
func zeroPeriod(start string) *types.Period {
	p := rates.Normalize(rates.RawPeriod{ID: start, Name: "zero", Start: start})
	return &p
}

func assertRubles(t *testing.T, want int64, got interface{ String() string }, msg string) {
	t.Helper()
	assert.Equal(t, types.Amount(want).String(), got.String(), msg)
}

func TestEvaluateHybridFloors(t *testing.T) {
	late := zeroPeriod("2025-01-01")

	tests := []struct {
		name      string
		age       types.AgeClass
		band      types.Band
		policy    types.HybridPolicy
		wantPhys  int64
		wantLegal int64
	}{
		{"new electro", types.AgeNew, types.BandElectric, asElectroPolicy, 3400, 667000},
		{"used electro", types.AgeUsed, types.BandElectric, asElectroPolicy, 5200, 1174000},
		{"new combustion 2.0-3.0", types.AgeNew, types.Band2To3, combustionPolicy, 3400, 1875000},
		{"new combustion 1.0-2.0 has no legal floor", types.AgeNew, types.Band1To2, combustionPolicy, 3400, 0},
		{"new combustion >3.5 has no legal floor", types.AgeNew, types.BandOver35, combustionPolicy, 3400, 0},
		{"used combustion any band", types.AgeUsed, types.BandUpTo1, combustionPolicy, 5200, 1174000},
		{"used combustion 3.0-3.5", types.AgeUsed, types.Band3To35, combustionPolicy, 5200, 1174000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := Evaluate(late, tt.age, tt.band, types.EngineHybrid, tt.policy)
			require.True(t, ok)
			assertRubles(t, tt.wantPhys, r.Preferential, "preferential")
			assertRubles(t, tt.wantLegal, r.Commercial, "commercial")
			assertRubles(t, tt.wantLegal-tt.wantPhys, r.Difference, "difference")
			assert.NotEmpty(t, r.Floors)
			assert.True(t, r.Base.Equal(types.ZeroRow()), "base row is reported unmodified")
		})
	}
}

func TestEvaluateFloorsNeverLower(t *testing.T) {
	p := rates.Normalize(rates.RawPeriod{
		Start: "2025-01-01",
		Tables: map[string]map[string]rates.RawRow{
			"new": {"2.0–3.0": {Phys: 9000, Legal: 2000000}},
		},
	})

	r, ok := Evaluate(&p, types.AgeNew, types.Band2To3, types.EngineHybrid, combustionPolicy)
	require.True(t, ok)
	assertRubles(t, 9000, r.Preferential, "preferential")
	assertRubles(t, 2000000, r.Commercial, "commercial")
	assert.Empty(t, r.Floors)
}

func TestEvaluateFloorsOnlyForLatePeriods(t *testing.T) {
	early := zeroPeriod("2024-12-31")

	r, ok := Evaluate(early, types.AgeUsed, types.BandElectric, types.EngineHybrid, asElectroPolicy)
	require.True(t, ok)
	assert.True(t, r.Preferential.IsZero())
	assert.True(t, r.Commercial.IsZero())
	assert.Empty(t, r.Floors)

	broken := zeroPeriod("not a date")
	assert.False(t, IsLatePolicy(broken))
}

func TestEvaluateFloorsOnlyForHybrids(t *testing.T) {
	late := zeroPeriod("2025-01-01")

	for _, engine := range []types.EngineKind{types.EngineICE, types.EngineElectro} {
		r, ok := Evaluate(late, types.AgeNew, types.BandElectric, engine, asElectroPolicy)
		require.True(t, ok)
		assert.True(t, r.Preferential.IsZero(), engine)
		assert.True(t, r.Commercial.IsZero(), engine)
	}
}

func TestEvaluateNegativeDifference(t *testing.T) {
	p := rates.Normalize(rates.RawPeriod{
		Start: "2023-01-01",
		Tables: map[string]map[string]rates.RawRow{
			"used": {"HYB": {Phys: 500, Legal: 100}},
		},
	})

	r, ok := Evaluate(&p, types.AgeUsed, types.BandHybrid, types.EngineICE, combustionPolicy)
	require.True(t, ok)
	assertRubles(t, -400, r.Difference, "difference")
}

func TestEvaluateIsIdempotent(t *testing.T) {
	late := zeroPeriod("2025-01-01")

	first, ok := Evaluate(late, types.AgeNew, types.Band2To3, types.EngineHybrid, combustionPolicy)
	require.True(t, ok)
	second, ok := Evaluate(late, types.AgeNew, types.Band2To3, types.EngineHybrid, combustionPolicy)
	require.True(t, ok)

	assert.Equal(t, first.Commercial.String(), second.Commercial.String())
	assert.True(t, late.Tables.Row(types.AgeNew, types.Band2To3).Equal(types.ZeroRow()), "period is not modified")
}

func TestEvaluateRejectsMissingInput(t *testing.T) {
	_, ok := Evaluate(nil, types.AgeNew, types.Band1To2, types.EngineICE, combustionPolicy)
	assert.False(t, ok)

	_, ok = Evaluate(zeroPeriod("2025-01-01"), types.AgeNew, types.NoBand, types.EngineICE, combustionPolicy)
	assert.False(t, ok)
}
