package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intp(v int) *int { return &v }

func timep(t time.Time) *time.Time { return &t }

func TestResolveDefaultsToTwelveMonths(t *testing.T) {
	now := date(2024, time.June, 15)

	rf := FilterSpec{}.Resolve(now)

	require.NotNil(t, rf.From)
	require.NotNil(t, rf.To)
	assert.Equal(t, date(2023, time.June, 15), *rf.From)
	assert.Equal(t, now, *rf.To)
}

func TestResolveNamedPeriods(t *testing.T) {
	now := date(2024, time.June, 15)

	tests := []struct {
		period TimePeriod
		from   time.Time
	}{
		{Period3M, date(2024, time.March, 15)},
		{Period6M, date(2023, time.December, 15)},
		{Period12M, date(2023, time.June, 15)},
		{Period2Y, date(2022, time.June, 15)},
		{Period5Y, date(2019, time.June, 15)},
	}
	for _, tc := range tests {
		rf := FilterSpec{TimePeriod: tc.period}.Resolve(now)
		require.NotNil(t, rf.From, "period %s", tc.period)
		assert.Equal(t, tc.from, *rf.From, "period %s", tc.period)
		assert.Equal(t, now, *rf.To, "period %s", tc.period)
	}
}

func TestResolveExplicitDatesWinOverPeriod(t *testing.T) {
	now := date(2024, time.June, 15)
	from := date(2023, time.January, 1)
	to := date(2023, time.December, 31)

	rf := FilterSpec{
		TimePeriod: Period3M,
		FromDate:   timep(from),
		ToDate:     timep(to),
	}.Resolve(now)

	require.NotNil(t, rf.From)
	require.NotNil(t, rf.To)
	assert.Equal(t, from, *rf.From)
	assert.Equal(t, to, *rf.To)
}

func TestResolveSingleExplicitDateFallsBackToPeriod(t *testing.T) {
	// Only one bound given: the pair is incomplete, so the named period
	// applies instead.
	now := date(2024, time.June, 15)

	rf := FilterSpec{
		TimePeriod: Period3M,
		FromDate:   timep(date(2023, time.January, 1)),
	}.Resolve(now)

	require.NotNil(t, rf.From)
	assert.Equal(t, date(2024, time.March, 15), *rf.From)
}

func TestResolveCustomWithoutDatesAppliesNoBound(t *testing.T) {
	rf := FilterSpec{TimePeriod: PeriodCustom}.Resolve(date(2024, time.June, 15))

	assert.Nil(t, rf.From)
	assert.Nil(t, rf.To)
}

func TestResolveCarriesEqualityConstraints(t *testing.T) {
	rf := FilterSpec{
		BacteriaID:   intp(1),
		AntibioticID: intp(2),
		RegionID:     intp(3),
		TimePeriod:   PeriodCustom,
	}.Resolve(date(2024, time.June, 15))

	require.NotNil(t, rf.BacteriaID)
	assert.Equal(t, 1, *rf.BacteriaID)
	require.NotNil(t, rf.AntibioticID)
	assert.Equal(t, 2, *rf.AntibioticID)
	require.NotNil(t, rf.RegionID)
	assert.Equal(t, 3, *rf.RegionID)
}

func TestMatchesThreeMonthBoundaryInclusive(t *testing.T) {
	now := date(2024, time.June, 15)
	rf := FilterSpec{TimePeriod: Period3M}.Resolve(now)

	obs := func(d time.Time) Observation {
		return Observation{BacteriaID: 1, AntibioticID: 1, RegionID: 1, SampleDate: d}
	}

	assert.True(t, rf.Matches(obs(date(2024, time.March, 15))), "exactly 3 months ago is in bound")
	assert.True(t, rf.Matches(obs(now)), "today is in bound")
	assert.False(t, rf.Matches(obs(date(2024, time.March, 14))), "older than 3 months is out")
	assert.False(t, rf.Matches(obs(date(2024, time.June, 16))), "future date is out")
}

func TestMatchesEqualityDimensions(t *testing.T) {
	rf := ResolvedFilter{BacteriaID: intp(1), RegionID: intp(4)}

	o := Observation{BacteriaID: 1, AntibioticID: 9, RegionID: 4, SampleDate: date(2024, time.January, 1)}
	assert.True(t, rf.Matches(o))

	o.BacteriaID = 2
	assert.False(t, rf.Matches(o))

	o.BacteriaID = 1
	o.RegionID = 5
	assert.False(t, rf.Matches(o))
}

func TestValidateObservation(t *testing.T) {
	valid := NewObservation{
		BacteriaID:       1,
		AntibioticID:     1,
		RegionID:         1,
		SampleDate:       date(2024, time.January, 15),
		TotalSamples:     100,
		ResistantSamples: 20,
	}
	assert.NoError(t, valid.Validate())

	tooMany := valid
	tooMany.ResistantSamples = 101
	assert.ErrorIs(t, tooMany.Validate(), ErrInvalidObservation)

	negative := valid
	negative.TotalSamples = -1
	assert.ErrorIs(t, negative.Validate(), ErrInvalidObservation)

	noRegion := valid
	noRegion.RegionID = 0
	assert.ErrorIs(t, noRegion.Validate(), ErrInvalidObservation)

	noDate := valid
	noDate.SampleDate = time.Time{}
	assert.ErrorIs(t, noDate.Validate(), ErrInvalidObservation)
}
