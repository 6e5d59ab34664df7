package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emistat/internal/table"
)

func longTable(t *testing.T, countries []string, years []int64) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.StringColumn("Country", countries),
		table.IntColumn("Year", years),
		table.FloatColumn("Value", make([]float64, len(countries))),
	)
	require.NoError(t, err)
	return tbl
}

func TestReconcile_RestrictsToCommonSubsets(t *testing.T) {
	// Emissions is missing 2021 for B; GDP is missing country C entirely;
	// population has an extra year 1999.
	emissions := longTable(t,
		[]string{"A", "B", "C", "A"},
		[]int64{2020, 2020, 2020, 2021})
	gdp := longTable(t,
		[]string{"A", "B", "A", "B"},
		[]int64{2020, 2020, 2021, 2021})
	population := longTable(t,
		[]string{"A", "B", "C", "A", "B", "A"},
		[]int64{2020, 2020, 2020, 2021, 2021, 1999})

	em, g, p, err := Reconcile(nil, emissions, gdp, population)
	require.NoError(t, err)

	for _, tbl := range []*table.Table{em, g, p} {
		years, err := tbl.DistinctInts("Year")
		require.NoError(t, err)
		countries, err := tbl.DistinctStrings("Country")
		require.NoError(t, err)

		// After reconciliation all three share identical key sets.
		assert.Equal(t, map[int64]struct{}{2020: {}, 2021: {}}, years)
		assert.Equal(t, map[string]struct{}{"A": {}, "B": {}}, countries)
	}
}

func TestReconcile_NoMismatchIsNoOp(t *testing.T) {
	emissions := longTable(t, []string{"A", "B"}, []int64{2020, 2020})
	gdp := longTable(t, []string{"B", "A"}, []int64{2020, 2020})
	population := longTable(t, []string{"A", "B"}, []int64{2020, 2020})

	em, g, p, err := Reconcile(nil, emissions, gdp, population)
	require.NoError(t, err)

	assert.Equal(t, 2, em.NumRows())
	assert.Equal(t, 2, g.NumRows())
	assert.Equal(t, 2, p.NumRows())
}

func TestReconcile_EmptyIntersection(t *testing.T) {
	emissions := longTable(t, []string{"A"}, []int64{2000})
	gdp := longTable(t, []string{"B"}, []int64{2000})
	population := longTable(t, []string{"A"}, []int64{2000})

	em, g, p, err := Reconcile(nil, emissions, gdp, population)
	require.NoError(t, err)

	// Disjoint country sets reconcile to empty tables, not an error.
	assert.Equal(t, 0, em.NumRows())
	assert.Equal(t, 0, g.NumRows())
	assert.Equal(t, 0, p.NumRows())
}

func TestReconcile_MissingColumn(t *testing.T) {
	bad, err := table.New(table.StringColumn("Country", []string{"A"}))
	require.NoError(t, err)
	ok := longTable(t, []string{"A"}, []int64{2000})

	_, _, _, err = Reconcile(nil, bad, ok, ok)
	assert.Error(t, err)
}
