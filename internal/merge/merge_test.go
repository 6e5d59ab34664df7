package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emistat/internal/table"
)

func emissionsFixture(t *testing.T, countries []string, years []int64, totals []float64) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.IntColumn("Year", years),
		table.StringColumn("Country", countries),
		table.FloatColumn("Emissions_total", totals),
	)
	require.NoError(t, err)
	return tbl
}

func worldBankFixture(t *testing.T, valueCol string, countries []string, years []int64, values []float64) *table.Table {
	t.Helper()
	codes := make([]string, len(countries))
	indicators := make([]string, len(countries))
	for i := range countries {
		codes[i] = "XXX"
		indicators[i] = "indicator"
	}
	tbl, err := table.New(
		table.StringColumn("Country Code", codes),
		table.StringColumn("Country", countries),
		table.StringColumn("Indicator Name", indicators),
		table.IntColumn("Year", years),
		table.FloatColumn(valueCol, values),
	)
	require.NoError(t, err)
	return tbl
}

func TestUnify(t *testing.T) {
	emissions := emissionsFixture(t,
		[]string{"POLAND", "FRANCE"}, []int64{2020, 2020}, []float64{1.0, 2.0})
	gdp := worldBankFixture(t, "GDP",
		[]string{"POLAND", "FRANCE"}, []int64{2020, 2020}, []float64{500.0, 600.0})
	population := worldBankFixture(t, "Population",
		[]string{"POLAND", "FRANCE"}, []int64{2020, 2020}, []float64{38.0, 67.0})

	unified, err := Unify(emissions, gdp, population)
	require.NoError(t, err)

	assert.Equal(t, 2, unified.NumRows())
	assert.Equal(t,
		[]string{"ID", "Year", "Country", "Emissions_total", "GDP", "Population"},
		unified.Columns())

	// Emissions rescaled from thousands of metric tons to metric tons.
	totals, err := unified.Floats("Emissions_total")
	require.NoError(t, err)
	assert.Equal(t, []float64{1000.0, 2000.0}, totals)

	ids, err := unified.Ints("ID")
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1}, ids)

	pop, err := unified.Ints("Population")
	require.NoError(t, err)
	assert.Equal(t, []int64{38, 67}, pop)
}

func TestUnify_InnerJoinDropsUnmatchedKeys(t *testing.T) {
	emissions := emissionsFixture(t,
		[]string{"POLAND", "GERMANY"}, []int64{2020, 2020}, []float64{1, 1})
	gdp := worldBankFixture(t, "GDP",
		[]string{"POLAND"}, []int64{2020}, []float64{500})
	population := worldBankFixture(t, "Population",
		[]string{"POLAND", "GERMANY"}, []int64{2020, 2020}, []float64{38, 83})

	unified, err := Unify(emissions, gdp, population)
	require.NoError(t, err)

	// Row survives only if its (Country, Year) exists in all operands.
	require.Equal(t, 1, unified.NumRows())
	countries, err := unified.Strings("Country")
	require.NoError(t, err)
	assert.Equal(t, []string{"POLAND"}, countries)

	// Without duplicate keys, output rows <= min input rows.
	assert.LessOrEqual(t, unified.NumRows(), 1)
}

func TestUnify_DuplicateKeysMultiplyRows(t *testing.T) {
	// Duplicate (Country, Year) pairs within one source are a latent
	// possibility and must multiply rows, not be deduplicated.
	emissions := emissionsFixture(t,
		[]string{"POLAND", "POLAND"}, []int64{2020, 2020}, []float64{1, 2})
	gdp := worldBankFixture(t, "GDP",
		[]string{"POLAND"}, []int64{2020}, []float64{500})
	population := worldBankFixture(t, "Population",
		[]string{"POLAND", "POLAND"}, []int64{2020, 2020}, []float64{38, 38})

	unified, err := Unify(emissions, gdp, population)
	require.NoError(t, err)

	// 2 emission rows x 1 gdp row x 2 population rows = 4 joined rows.
	assert.Equal(t, 4, unified.NumRows())
}

func TestUnify_MissingColumn(t *testing.T) {
	emissions := emissionsFixture(t, []string{"A"}, []int64{2000}, []float64{1})
	bad, err := table.New(table.StringColumn("Country", []string{"A"}))
	require.NoError(t, err)

	_, err = Unify(emissions, bad, bad)
	assert.Error(t, err)
}
