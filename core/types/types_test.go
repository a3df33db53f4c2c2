package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBand(t *testing.T) {
	tests := []struct {
		in   string
		want Band
		ok   bool
	}{
		{"<=1.0", BandUpTo1, true},
		{"≤1.0", BandUpTo1, true},
		{"1.0–2.0", Band1To2, true},
		{"1.0-2.0", Band1To2, true},
		{"2.0-3.0", Band2To3, true},
		{"3.0–3.5", Band3To35, true},
		{">3.5", BandOver35, true},
		{"HYB", BandHybrid, true},
		{"hyb", BandHybrid, true},
		{"EV", BandElectric, true},
		{" ev ", BandElectric, true},
		{"4.0", NoBand, false},
		{"", NoBand, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseBand(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBandKeys(t *testing.T) {
	for _, b := range Bands {
		got, ok := ParseBand(b.String())
		require.True(t, ok, b.String())
		assert.Equal(t, b, got)
	}
	assert.Equal(t, "Electric", BandElectric.Label())
	assert.Equal(t, "Hybrid", BandHybrid.Label())
	assert.True(t, Band3To35.IsDisplacement())
	assert.False(t, BandHybrid.IsDisplacement())
	assert.False(t, NoBand.IsValid())
}

func TestParseAgeAndEngine(t *testing.T) {
	age, ok := ParseAgeClass(" Used ")
	require.True(t, ok)
	assert.Equal(t, AgeUsed, age)

	_, ok = ParseAgeClass("old")
	assert.False(t, ok)

	engine, ok := ParseEngineKind("hybrid")
	require.True(t, ok)
	assert.Equal(t, EngineHybrid, engine)

	_, ok = ParseEngineKind("diesel")
	assert.False(t, ok)

	aud, ok := ParseAudience("LEGAL")
	require.True(t, ok)
	assert.Equal(t, AudienceLegal, aud)
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-10-01")
	require.True(t, ok)
	assert.True(t, d.Valid())
	assert.Equal(t, "2024-10-01", d.String())
	assert.Equal(t, 0, d.Compare(NewDate(2024, 10, 1)))

	bad, ok := ParseDate("01.10.2024")
	assert.False(t, ok)
	assert.False(t, bad.Valid())
	assert.Equal(t, "01.10.2024", bad.String(), "invalid text is retained")

	_, ok = ParseDate("2024-02-30")
	assert.False(t, ok)
}

func TestDateValidity(t *testing.T) {
	tests := []struct {
		name string
		d    Date
		want bool
	}{
		{"zero value", Date{}, false},
		{"empty text", func() Date { d, _ := ParseDate(""); return d }(), false},
		{"first representable day", MustParseDate("0001-01-01"), true},
		{"constructed first day", NewDate(1, time.January, 1), true},
		{"ordinary day", MustParseDate("2025-01-01"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.Valid())
		})
	}

	first := MustParseDate("0001-01-01")
	assert.Equal(t, "0001-01-01", first.String())
	open := Period{Start: first}
	assert.True(t, open.Contains(MustParseDate("2025-01-01")))
}

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"garbage"`), &d))
	assert.False(t, d.Valid())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"garbage"`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`"2025-01-01"`), &d))
	assert.True(t, d.Valid())
}

func TestPeriodContains(t *testing.T) {
	end := MustParseDate("2024-09-30")
	bounded := Period{Start: MustParseDate("2023-08-01"), End: &end}
	open := Period{Start: MustParseDate("2025-01-01")}

	badEnd, _ := ParseDate("someday")
	broken := Period{Start: MustParseDate("2023-08-01"), End: &badEnd}

	tests := []struct {
		name string
		p    Period
		date string
		want bool
	}{
		{"first day", bounded, "2023-08-01", true},
		{"last day", bounded, "2024-09-30", true},
		{"day before", bounded, "2023-07-31", false},
		{"day after", bounded, "2024-10-01", false},
		{"open ended far future", open, "2099-12-31", true},
		{"open ended before start", open, "2024-12-31", false},
		{"invalid end matches nothing", broken, "2024-01-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Contains(MustParseDate(tt.date)))
		})
	}

	assert.True(t, open.IsOpenEnded())
	assert.False(t, bounded.Contains(Date{}))
}

func TestAgeTablesJSONOrder(t *testing.T) {
	tables := ZeroTables()
	tables.Set(AgeUsed, BandElectric, Row(5200, 1174000))

	out, err := json.Marshal(tables)
	require.NoError(t, err)

	s := string(out)
	assert.Less(t, strings.Index(s, `"new"`), strings.Index(s, `"used"`))
	assert.Less(t, strings.Index(s, `"<=1.0"`), strings.Index(s, `"EV"`))
	assert.Contains(t, s, `"EV":{"phys":5200,"legal":1174000}`)
	assert.Contains(t, s, `"HYB":{"phys":0,"legal":0}`)
}

func TestRubricRow(t *testing.T) {
	r := Row(3400, 180200)
	assert.Equal(t, "3400", r.Get(AudiencePhys).String())
	assert.Equal(t, "180200", r.Get(AudienceLegal).String())

	r2 := r.With(AudienceLegal, Amount(1))
	assert.Equal(t, "180200", r.Legal.String(), "With does not modify the receiver")
	assert.Equal(t, "1", r2.Legal.String())
	assert.False(t, r.Equal(r2))
}
