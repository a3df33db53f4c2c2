package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utilfee/core/demo"
	"utilfee/core/types"
	"utilfee/internal/errors"
)

func TestAddPrependsZeroPeriod(t *testing.T) {
	table := New(demo.Periods())
	start := types.MustParseDate("2026-01-01")

	added := table.Add("", start)

	require.Equal(t, 4, table.Len())
	assert.Equal(t, DefaultPeriodName, added.Name)
	assert.NotEmpty(t, added.ID)
	assert.True(t, added.IsOpenEnded())

	first := table.Periods()[0]
	assert.Equal(t, added.ID, first.ID)
	assert.Equal(t, "2026-01-01", first.Start.String())
	for _, age := range types.AgeClasses {
		for _, band := range types.Bands {
			assert.True(t, first.Tables.Row(age, band).Equal(types.ZeroRow()))
		}
	}

	other := table.Add("Named", start)
	assert.NotEqual(t, added.ID, other.ID)
	assert.Equal(t, "Named", other.Name)
}

func TestRemove(t *testing.T) {
	table := New(demo.Periods())

	require.NoError(t, table.Remove("2024-10-01"))
	assert.Equal(t, 2, table.Len())
	_, ok := table.Get("2024-10-01")
	assert.False(t, ok)

	err := table.Remove("missing")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
}

func TestSetRate(t *testing.T) {
	table := New(demo.Periods())

	require.NoError(t, table.SetRate("2025-01-01", types.AgeNew, types.Band1To2, types.AudienceLegal, "700000"))
	got, err := table.Rate("2025-01-01", types.AgeNew, types.Band1To2, types.AudienceLegal)
	require.NoError(t, err)
	assert.Equal(t, "700000", got.String())

	phys, err := table.Rate("2025-01-01", types.AgeNew, types.Band1To2, types.AudiencePhys)
	require.NoError(t, err)
	assert.Equal(t, "3400", phys.String(), "other side of the row is untouched")

	require.NoError(t, table.SetRate("2025-01-01", types.AgeUsed, types.BandElectric, types.AudiencePhys, -10))
	got, err = table.Rate("2025-01-01", types.AgeUsed, types.BandElectric, types.AudiencePhys)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	err = table.SetRate("missing", types.AgeNew, types.Band1To2, types.AudiencePhys, 1)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))

	err = table.SetRate("2025-01-01", types.AgeNew, types.NoBand, types.AudiencePhys, 1)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestEditDates(t *testing.T) {
	table := New(demo.Periods())

	require.NoError(t, table.SetEnd("2025-01-01", "2025-12-31"))
	p, ok := table.Get("2025-01-01")
	require.True(t, ok)
	require.NotNil(t, p.End)
	assert.Equal(t, "2025-12-31", p.End.String())

	require.NoError(t, table.SetEnd("2025-01-01", ""))
	p, _ = table.Get("2025-01-01")
	assert.True(t, p.IsOpenEnded())

	require.NoError(t, table.SetStart("2025-01-01", "01/01/2025"))
	p, _ = table.Get("2025-01-01")
	assert.False(t, p.Start.Valid())
	assert.Equal(t, "01/01/2025", p.Start.String())

	require.NoError(t, table.Rename("2025-01-01", "Current"))
	p, _ = table.Get("2025-01-01")
	assert.Equal(t, "Current", p.Name)
	assert.Equal(t, "667400", p.Tables.Row(types.AgeNew, types.Band1To2).Legal.String(), "rates survive edits")
}

func TestSnapshotsAreIndependent(t *testing.T) {
	table := New(demo.Periods())

	snapshot := table.Periods()
	snapshot[0].Name = "mutated"
	*snapshot[0].End = types.MustParseDate("2000-01-01")

	p, _ := table.Get("2023-08-01")
	assert.Equal(t, "Period A (01.08.2023–30.09.2024)", p.Name)
	assert.Equal(t, "2024-09-30", p.End.String())
}

func TestReplace(t *testing.T) {
	table := New(demo.Periods())
	table.Replace(nil)
	assert.Equal(t, 0, table.Len())
}
