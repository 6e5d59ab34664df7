// Package reconcile enforces consistency across the three normalized sources
// before merging: every source is restricted to the Year and Country values
// present in all of them.
//
// Mismatching key sets are never errors here. They are expected with
// real-world inputs, silently corrected, and logged as warnings with a count
// of the retained keys. After Reconcile the three tables share identical
// distinct Year sets and identical distinct Country sets, so the inner join
// downstream cannot silently drop rows for this reason.
package reconcile

import (
	"log/slog"

	"emistat/internal/config"
	"emistat/internal/table"
)

// Reconcile restricts the emissions, GDP and population tables to their
// common Year and Country subsets. Both restrictions are computed from the
// original per-source sets; each is a pure filter keyed on its own column, so
// the order of the two passes does not affect the result.
func Reconcile(logger *slog.Logger, emissions, gdp, population *table.Table) (*table.Table, *table.Table, *table.Table, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sources := []*table.Table{emissions, gdp, population}

	yearSets := make([]map[int64]struct{}, len(sources))
	countrySets := make([]map[string]struct{}, len(sources))
	for i, src := range sources {
		years, err := src.DistinctInts(config.ColYear)
		if err != nil {
			return nil, nil, nil, err
		}
		countries, err := src.DistinctStrings(config.ColCountry)
		if err != nil {
			return nil, nil, nil, err
		}
		yearSets[i] = years
		countrySets[i] = countries
	}

	commonYears := intersectInts(yearSets)
	commonCountries := intersectStrings(countrySets)

	if !allIntSetsEqual(yearSets, commonYears) {
		logger.Warn("year ranges differ between datasets; selecting the common subset",
			slog.Int("common_years", len(commonYears)))
		for i, src := range sources {
			restricted, err := src.RestrictInts(config.ColYear, commonYears)
			if err != nil {
				return nil, nil, nil, err
			}
			sources[i] = restricted
		}
	}

	if !allStringSetsEqual(countrySets, commonCountries) {
		logger.Warn("country sets differ between datasets; selecting the common subset",
			slog.Int("common_countries", len(commonCountries)))
		for i, src := range sources {
			restricted, err := src.RestrictStrings(config.ColCountry, commonCountries)
			if err != nil {
				return nil, nil, nil, err
			}
			sources[i] = restricted
		}
	}

	return sources[0], sources[1], sources[2], nil
}

func intersectInts(sets []map[int64]struct{}) map[int64]struct{} {
	out := make(map[int64]struct{})
	if len(sets) == 0 {
		return out
	}
	for v := range sets[0] {
		in := true
		for _, s := range sets[1:] {
			if _, ok := s[v]; !ok {
				in = false
				break
			}
		}
		if in {
			out[v] = struct{}{}
		}
	}
	return out
}

func intersectStrings(sets []map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	if len(sets) == 0 {
		return out
	}
	for v := range sets[0] {
		in := true
		for _, s := range sets[1:] {
			if _, ok := s[v]; !ok {
				in = false
				break
			}
		}
		if in {
			out[v] = struct{}{}
		}
	}
	return out
}

func allIntSetsEqual(sets []map[int64]struct{}, want map[int64]struct{}) bool {
	for _, s := range sets {
		if len(s) != len(want) {
			return false
		}
		for v := range s {
			if _, ok := want[v]; !ok {
				return false
			}
		}
	}
	return true
}

func allStringSetsEqual(sets []map[string]struct{}, want map[string]struct{}) bool {
	for _, s := range sets {
		if len(s) != len(want) {
			return false
		}
		for v := range s {
			if _, ok := want[v]; !ok {
				return false
			}
		}
	}
	return true
}
