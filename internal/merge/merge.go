// Package merge joins the three reconciled sources into the unified
// per-country-per-year table.
//
// The join is a true inner join on (Country, Year): a row survives only if
// its key pair exists in both operands, and duplicate key pairs within one
// source multiply rows as a normal join would. Given the reconciler's
// guarantee the join usually degenerates to a key-preserving zip, but the
// implementation does not rely on that.
package merge

import (
	"math"

	"emistat/internal/config"
	"emistat/internal/table"
)

// emissionScale converts the raw emission unit (thousands of metric tons)
// to metric tons. Applied exactly once, after the join.
const emissionScale = 1000.0

// Unify inner-joins emissions, GDP and population on (Country, Year),
// dropping the redundant Country Code and Indicator Name columns from the
// World Bank sources first, rescales emissions to metric tons, converts the
// population values to integers, and assigns a fresh ID per output row.
func Unify(emissions, gdp, population *table.Table) (*table.Table, error) {
	gdpSlim, err := gdp.Drop(config.ColCountryCode, config.ColIndicatorName)
	if err != nil {
		return nil, err
	}
	popSlim, err := population.Drop(config.ColCountryCode, config.ColIndicatorName)
	if err != nil {
		return nil, err
	}

	joined, err := innerJoin(emissions, gdpSlim)
	if err != nil {
		return nil, err
	}
	joined, err = innerJoin(joined, popSlim)
	if err != nil {
		return nil, err
	}

	joined, err = joined.MapFloats(config.ColEmissionsTotal, func(v float64) float64 {
		return v * emissionScale
	})
	if err != nil {
		return nil, err
	}

	joined, err = floatToInt(joined, config.ColPopulation)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, joined.NumRows())
	for i := range ids {
		ids[i] = int64(i)
	}
	idCol, err := table.New(table.IntColumn("ID", ids))
	if err != nil {
		return nil, err
	}
	return table.Concat(idCol, joined)
}

// innerJoin joins two tables on (Country, Year). Output order follows the
// left table, with each left row matched against the right rows in their
// original order.
func innerJoin(left, right *table.Table) (*table.Table, error) {
	leftCountries, err := left.Strings(config.ColCountry)
	if err != nil {
		return nil, err
	}
	leftYears, err := left.Ints(config.ColYear)
	if err != nil {
		return nil, err
	}
	rightCountries, err := right.Strings(config.ColCountry)
	if err != nil {
		return nil, err
	}
	rightYears, err := right.Ints(config.ColYear)
	if err != nil {
		return nil, err
	}

	type key struct {
		country string
		year    int64
	}
	rightRows := make(map[key][]int, right.NumRows())
	for i := range rightCountries {
		k := key{country: rightCountries[i], year: rightYears[i]}
		rightRows[k] = append(rightRows[k], i)
	}

	var leftTake, rightTake []int
	for i := range leftCountries {
		k := key{country: leftCountries[i], year: leftYears[i]}
		for _, j := range rightRows[k] {
			leftTake = append(leftTake, i)
			rightTake = append(rightTake, j)
		}
	}

	matchedRight, err := right.TakeRows(rightTake).Drop(config.ColCountry, config.ColYear)
	if err != nil {
		return nil, err
	}
	return table.Concat(left.TakeRows(leftTake), matchedRight)
}

// floatToInt replaces a float column with an integer column of the same name,
// rounding to the nearest integer. Population values are whole numbers in the
// source; the rounding only absorbs float noise introduced by the reshape.
func floatToInt(t *table.Table, name string) (*table.Table, error) {
	values, err := t.Floats(name)
	if err != nil {
		return nil, err
	}
	ints := make([]int64, len(values))
	for i, v := range values {
		ints[i] = int64(math.Round(v))
	}
	names := t.Columns()
	stripped, err := t.Drop(name)
	if err != nil {
		return nil, err
	}
	withInts, err := stripped.WithColumn(table.IntColumn(name, ints))
	if err != nil {
		return nil, err
	}
	// Restore the original column order.
	return withInts.Select(names...)
}
