package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emistat/internal/config"
	"emistat/internal/errs"
	"emistat/internal/table"
)

// unifiedFixture builds a unified table row-wise.
func unifiedFixture(t *testing.T, countries []string, years []int64, emissions, gdp []float64, population []int64) *table.Table {
	t.Helper()
	ids := make([]int64, len(countries))
	for i := range ids {
		ids[i] = int64(i)
	}
	tbl, err := table.New(
		table.IntColumn("ID", ids),
		table.StringColumn("Country", countries),
		table.IntColumn("Year", years),
		table.FloatColumn("Emissions_total", emissions),
		table.FloatColumn("GDP", gdp),
		table.IntColumn("Population", population),
	)
	require.NoError(t, err)
	return tbl
}

func TestNew_MissingRequiredColumn(t *testing.T) {
	// No Population column.
	tbl, err := table.New(
		table.StringColumn("Country", []string{"A"}),
		table.IntColumn("Year", []int64{2000}),
		table.FloatColumn("Emissions_total", []float64{1}),
		table.FloatColumn("GDP", []float64{1}),
	)
	require.NoError(t, err)

	_, err = New(nil, tbl, 5)
	var schemaErr *errs.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	// The error names all required columns, not just the missing one.
	assert.ElementsMatch(t,
		[]string{"Country", "Year", "Population", "Emissions_total", "GDP"},
		schemaErr.Columns)
}

func TestNew_DerivesPerCapita(t *testing.T) {
	tbl := unifiedFixture(t,
		[]string{"A"}, []int64{2000},
		[]float64{1000}, []float64{500}, []int64{100})

	s, err := New(nil, tbl, 5)
	require.NoError(t, err)

	gdpPC, err := s.tbl.Floats("GDP_per_capita")
	require.NoError(t, err)
	assert.Equal(t, []float64{5.0}, gdpPC)

	emPC, err := s.tbl.Floats("Emissions_per_capita")
	require.NoError(t, err)
	assert.Equal(t, []float64{10.0}, emPC)
}

func TestGDPStatsPerYear_RankingProperties(t *testing.T) {
	// Two years, four countries each; k = 2.
	tbl := unifiedFixture(t,
		[]string{"A", "B", "C", "D", "A", "B", "C", "D"},
		[]int64{2000, 2000, 2000, 2000, 2001, 2001, 2001, 2001},
		[]float64{1, 1, 1, 1, 1, 1, 1, 1},
		[]float64{100, 400, 300, 200, 50, 80, 70, 60},
		[]int64{1, 1, 1, 1, 1, 1, 1, 1})

	s, err := New(nil, tbl, 2)
	require.NoError(t, err)

	entries, err := s.GDPStatsPerYear(YearRange{})
	require.NoError(t, err)

	perYear := make(map[int64][]RankedEntry)
	for _, e := range entries {
		perYear[e.Year] = append(perYear[e.Year], e)
	}
	require.Len(t, perYear, 2)

	for year, group := range perYear {
		assert.LessOrEqual(t, len(group), 2, "year %d", year)
		for i, e := range group {
			assert.Equal(t, i+1, e.Rank, "rank resets to 1 per year")
			if i > 0 {
				assert.GreaterOrEqual(t, group[i-1].PerCapita, e.PerCapita,
					"values non-increasing by rank")
			}
		}
	}

	assert.Equal(t, "B", perYear[2000][0].Country)
	assert.Equal(t, "C", perYear[2000][1].Country)
	assert.Equal(t, "B", perYear[2001][0].Country)
	assert.Equal(t, 400.0, perYear[2000][0].Absolute)
}

func TestGDPStatsPerYear_StableTieBreak(t *testing.T) {
	tbl := unifiedFixture(t,
		[]string{"FIRST", "SECOND", "THIRD"},
		[]int64{2000, 2000, 2000},
		[]float64{1, 1, 1},
		[]float64{100, 100, 100},
		[]int64{1, 1, 1})

	s, err := New(nil, tbl, 2)
	require.NoError(t, err)

	entries, err := s.GDPStatsPerYear(YearRange{})
	require.NoError(t, err)

	// Ties broken by original row order.
	require.Len(t, entries, 2)
	assert.Equal(t, "FIRST", entries[0].Country)
	assert.Equal(t, "SECOND", entries[1].Country)
}

func TestPerYear_GroupSmallerThanK(t *testing.T) {
	tbl := unifiedFixture(t,
		[]string{"A", "B"}, []int64{2000, 2000},
		[]float64{1, 2}, []float64{1, 2}, []int64{1, 1})

	s, err := New(nil, tbl, 5)
	require.NoError(t, err)

	entries, err := s.EmissionStatsPerYear(YearRange{})
	require.NoError(t, err)
	// Fewer than k countries yields all of them, never an error.
	assert.Len(t, entries, 2)
}

func TestPerYear_EmptyRange(t *testing.T) {
	tbl := unifiedFixture(t,
		[]string{"A", "A", "A", "A"},
		[]int64{1, 2, 3, 7},
		[]float64{1, 1, 1, 1},
		[]float64{1, 1, 1, 1},
		[]int64{1, 1, 1, 1})

	s, err := New(nil, tbl, 5)
	require.NoError(t, err)

	_, err = s.GDPStatsPerYear(YearRange{From: 2000, To: 2010})
	var rangeErr *errs.EmptyRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 2000, rangeErr.From)
	assert.Equal(t, 2010, rangeErr.To)
}

func TestPerYear_ZeroBoundMeansOpen(t *testing.T) {
	tbl := unifiedFixture(t,
		[]string{"A", "A", "A"},
		[]int64{1990, 2000, 2010},
		[]float64{1, 1, 1},
		[]float64{1, 1, 1},
		[]int64{1, 1, 1})

	s, err := New(nil, tbl, 5)
	require.NoError(t, err)

	tests := []struct {
		name      string
		r         YearRange
		wantYears []int64
	}{
		{name: "fully open", r: YearRange{}, wantYears: []int64{1990, 2000, 2010}},
		{name: "lower bound only", r: YearRange{From: 2000}, wantYears: []int64{2000, 2010}},
		{name: "upper bound only", r: YearRange{To: 2000}, wantYears: []int64{1990, 2000}},
		{name: "both bounds", r: YearRange{From: 1995, To: 2005}, wantYears: []int64{2000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := s.EmissionStatsPerYear(tt.r)
			require.NoError(t, err)
			var got []int64
			for _, e := range entries {
				got = append(got, e.Year)
			}
			assert.Equal(t, tt.wantYears, got)
		})
	}
}

func TestEmissionChangeStats(t *testing.T) {
	// Recent-year per-capita emissions [A: 3.0, B: 5.0], a decade earlier
	// [A: 1.0, B: 6.0]: increases ranked [A: +2.0, B: -1.0].
	tbl := unifiedFixture(t,
		[]string{"A", "B", "A", "B"},
		[]int64{2010, 2010, 2020, 2020},
		[]float64{1.0, 6.0, 3.0, 5.0},
		[]float64{1, 1, 1, 1},
		[]int64{1, 1, 1, 1})

	s, err := New(nil, tbl, 1)
	require.NoError(t, err)

	increases, decreases, err := s.EmissionChangeStats()
	require.NoError(t, err)

	require.Len(t, increases, 1)
	assert.Equal(t, ChangeEntry{Country: "A", Delta: 2.0}, increases[0])

	require.Len(t, decreases, 1)
	assert.Equal(t, "B", decreases[0].Country)
	assert.InDelta(t, -1.0, decreases[0].Delta, 1e-9)
}

func TestEmissionChangeStats_InsufficientHistory(t *testing.T) {
	tbl := unifiedFixture(t,
		[]string{"A", "A"}, []int64{2019, 2020},
		[]float64{1, 1}, []float64{1, 1}, []int64{1, 1})

	s, err := New(nil, tbl, 5)
	require.NoError(t, err)

	increases, decreases, err := s.EmissionChangeStats()
	// A recognized outcome, not a failure.
	require.NoError(t, err)
	assert.Empty(t, increases)
	assert.Empty(t, decreases)
}

func TestEmissionChangeStats_CountryOnlyInOneYear(t *testing.T) {
	// C exists only in the recent year and must be excluded from deltas.
	tbl := unifiedFixture(t,
		[]string{"A", "A", "C"},
		[]int64{2010, 2020, 2020},
		[]float64{1.0, 4.0, 9.0},
		[]float64{1, 1, 1},
		[]int64{1, 1, 1})

	s, err := New(nil, tbl, 5)
	require.NoError(t, err)

	increases, _, err := s.EmissionChangeStats()
	require.NoError(t, err)
	require.Len(t, increases, 1)
	assert.Equal(t, "A", increases[0].Country)
	assert.InDelta(t, 3.0, increases[0].Delta, 1e-9)
}

func TestEmissionChangeStats_DuplicateCountryYearRows(t *testing.T) {
	// The merger multiplies duplicate (Country, Year) keys, so the engine
	// has to cope with a country appearing twice in one year slice and once
	// in the other. The first observation per country wins.
	tbl := unifiedFixture(t,
		[]string{"A", "B", "A", "A", "B"},
		[]int64{2010, 2010, 2020, 2020, 2020},
		[]float64{1.0, 6.0, 3.0, 9.0, 5.0},
		[]float64{1, 1, 1, 1, 1},
		[]int64{1, 1, 1, 1, 1})

	s, err := New(nil, tbl, 5)
	require.NoError(t, err)

	increases, decreases, err := s.EmissionChangeStats()
	require.NoError(t, err)

	require.Len(t, increases, 2)
	assert.Equal(t, ChangeEntry{Country: "A", Delta: 2.0}, increases[0])
	require.Len(t, decreases, 2)
	assert.Equal(t, "B", decreases[0].Country)
	assert.InDelta(t, -1.0, decreases[0].Delta, 1e-9)
}

func TestQueriesDoNotMutateSharedTable(t *testing.T) {
	tbl := unifiedFixture(t,
		[]string{"B", "A"}, []int64{2000, 2000},
		[]float64{1, 2}, []float64{1, 2}, []int64{1, 1})

	s, err := New(nil, tbl, 5)
	require.NoError(t, err)

	first, err := s.GDPStatsPerYear(YearRange{})
	require.NoError(t, err)
	second, err := s.GDPStatsPerYear(YearRange{})
	require.NoError(t, err)

	// Two sequential queries against the same instance observe identical
	// input and produce identical output.
	assert.Equal(t, first, second)
}

func TestWithTopK(t *testing.T) {
	tbl := unifiedFixture(t,
		[]string{"A", "B", "C"}, []int64{2000, 2000, 2000},
		[]float64{3, 2, 1}, []float64{3, 2, 1}, []int64{1, 1, 1})

	s, err := New(nil, tbl, 5)
	require.NoError(t, err)

	narrowed := s.WithTopK(1)
	assert.Equal(t, 1, narrowed.TopK())
	assert.Equal(t, 5, s.TopK())

	entries, err := narrowed.GDPStatsPerYear(YearRange{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// Non-positive k keeps the receiver.
	assert.Same(t, s, s.WithTopK(0))
}

func TestNew_DefaultTopK(t *testing.T) {
	tbl := unifiedFixture(t,
		[]string{"A"}, []int64{2000},
		[]float64{1}, []float64{1}, []int64{1})

	s, err := New(nil, tbl, 0)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTopK, s.TopK())
}
