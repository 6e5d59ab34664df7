// Package reshape converts the World Bank wide layout (one column per
// calendar year) into the long (Country, Year, Value) layout the rest of the
// pipeline expects, and back.
package reshape

import (
	"fmt"
	"sort"
	"strconv"

	"emistat/internal/config"
	"emistat/internal/errs"
	"emistat/internal/table"
)

// IDColumns are the fixed identifier columns of a wide World Bank table.
// Every other column is a year column whose header must parse as an integer.
var IDColumns = []string{config.ColCountryCode, config.ColCountry, config.ColIndicatorName}

// WideToLong reshapes a wide table into long format. The result has the
// identifier columns, a Year column parsed from the year-column headers, and
// a float column named valueColumn holding each year's cell value.
//
// Row count invariant: output rows = input rows × number of year columns.
// Returns a SchemaError if an identifier column is missing or a year-column
// header does not parse as an integer.
func WideToLong(t *table.Table, valueColumn string) (*table.Table, error) {
	ids := make(map[string][]string, len(IDColumns))
	for _, name := range IDColumns {
		vals, err := t.Strings(name)
		if err != nil {
			return nil, err
		}
		ids[name] = vals
	}

	idSet := make(map[string]struct{}, len(IDColumns))
	for _, name := range IDColumns {
		idSet[name] = struct{}{}
	}

	type yearCol struct {
		year   int64
		values []float64
	}
	var yearCols []yearCol
	for _, name := range t.Columns() {
		if _, isID := idSet[name]; isID {
			continue
		}
		year, err := strconv.ParseInt(name, 10, 64)
		if err != nil {
			return nil, errs.NewSchemaError("reshape.WideToLong",
				fmt.Sprintf("year-column header %q does not parse as an integer", name), name)
		}
		values, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		yearCols = append(yearCols, yearCol{year: year, values: values})
	}

	nrows := t.NumRows()
	total := nrows * len(yearCols)
	outIDs := make(map[string][]string, len(IDColumns))
	for _, name := range IDColumns {
		outIDs[name] = make([]string, 0, total)
	}
	years := make([]int64, 0, total)
	values := make([]float64, 0, total)

	// Column-major stacking: all rows of the first year column, then the next.
	for _, yc := range yearCols {
		for row := 0; row < nrows; row++ {
			for _, name := range IDColumns {
				outIDs[name] = append(outIDs[name], ids[name][row])
			}
			years = append(years, yc.year)
			values = append(values, yc.values[row])
		}
	}

	return table.New(
		table.StringColumn(config.ColCountryCode, outIDs[config.ColCountryCode]),
		table.StringColumn(config.ColCountry, outIDs[config.ColCountry]),
		table.StringColumn(config.ColIndicatorName, outIDs[config.ColIndicatorName]),
		table.IntColumn(config.ColYear, years),
		table.FloatColumn(valueColumn, values),
	)
}

// LongToWide pivots a long table produced by WideToLong back into the wide
// layout: one row per distinct identifier triple, one float column per
// distinct Year, headers rendered as decimal integers in ascending order.
func LongToWide(t *table.Table, valueColumn string) (*table.Table, error) {
	ids := make(map[string][]string, len(IDColumns))
	for _, name := range IDColumns {
		vals, err := t.Strings(name)
		if err != nil {
			return nil, err
		}
		ids[name] = vals
	}
	years, err := t.Ints(config.ColYear)
	if err != nil {
		return nil, err
	}
	values, err := t.Floats(valueColumn)
	if err != nil {
		return nil, err
	}

	idKey := func(row int) string {
		return ids[config.ColCountryCode][row] + "\x00" +
			ids[config.ColCountry][row] + "\x00" +
			ids[config.ColIndicatorName][row]
	}

	// Distinct id triples in first-appearance order.
	rowIndex := make(map[string]int)
	var firstRows []int
	for row := 0; row < t.NumRows(); row++ {
		key := idKey(row)
		if _, seen := rowIndex[key]; !seen {
			rowIndex[key] = len(firstRows)
			firstRows = append(firstRows, row)
		}
	}

	distinctYears := make(map[int64]struct{})
	for _, y := range years {
		distinctYears[y] = struct{}{}
	}
	sortedYears := make([]int64, 0, len(distinctYears))
	for y := range distinctYears {
		sortedYears = append(sortedYears, y)
	}
	sort.Slice(sortedYears, func(i, j int) bool { return sortedYears[i] < sortedYears[j] })

	cells := make(map[int64][]float64, len(sortedYears))
	for _, y := range sortedYears {
		cells[y] = make([]float64, len(firstRows))
	}
	for row := 0; row < t.NumRows(); row++ {
		cells[years[row]][rowIndex[idKey(row)]] = values[row]
	}

	cols := make([]table.Column, 0, len(IDColumns)+len(sortedYears))
	for _, name := range IDColumns {
		vals := make([]string, 0, len(firstRows))
		for _, row := range firstRows {
			vals = append(vals, ids[name][row])
		}
		cols = append(cols, table.StringColumn(name, vals))
	}
	for _, y := range sortedYears {
		cols = append(cols, table.FloatColumn(strconv.FormatInt(y, 10), cells[y]))
	}
	return table.New(cols...)
}
