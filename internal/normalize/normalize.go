// Package normalize implements the name and key normalizer: uppercasing of
// country labels, alias standardization, and removal of aggregate
// (non-country) rows.
//
// Ordering matters: StandardizeNames must run after UppercaseColumn, because
// the alias map keys are uppercase. FilterNonCountries applies only to
// sources that carry a Country Code column (GDP and population); the
// emissions source has none, which is a fixed property of the inputs.
package normalize

import (
	"strings"

	"emistat/internal/config"
	"emistat/internal/table"
)

// UppercaseColumn converts every value of the named text column to uppercase.
// Returns a SchemaError if the column is absent or not textual.
func UppercaseColumn(t *table.Table, column string) (*table.Table, error) {
	return t.MapStrings(column, strings.ToUpper)
}

// StandardizeNames replaces each Country value present as a key in aliases
// with its canonical form. Values absent from the map pass through unchanged.
// The table's Country column must already be uppercase.
func StandardizeNames(t *table.Table, aliases map[string]string) (*table.Table, error) {
	return t.MapStrings(config.ColCountry, func(v string) string {
		if canonical, ok := aliases[v]; ok {
			return canonical
		}
		return v
	})
}

// FilterNonCountries retains only rows whose Country Code is absent from
// excluded. Returns a SchemaError if the table has no Country Code column;
// callers must only invoke this on the GDP and population sources.
func FilterNonCountries(t *table.Table, excluded []string) (*table.Table, error) {
	set := make(map[string]struct{}, len(excluded))
	for _, code := range excluded {
		set[code] = struct{}{}
	}
	codes, err := t.Strings(config.ColCountryCode)
	if err != nil {
		return nil, err
	}
	return t.FilterRows(func(row int) bool {
		_, aggregate := set[codes[row]]
		return !aggregate
	}), nil
}
