// Package stats implements the statistics engine over the unified
// per-country-per-year table: per-year top-k rankings of GDP and emissions
// per capita, and decade-over-decade emission-change rankings.
//
// A Stats instance is stateless per call: the per-capita columns are derived
// once at construction, and every query works on copies or derived views, so
// two queries issued against the same instance in sequence observe identical
// input.
package stats

import (
	"log/slog"
	"sort"

	"emistat/internal/config"
	"emistat/internal/errs"
	"emistat/internal/table"
)

// YearRange restricts a per-year report to [From, To], both inclusive.
// A bound of zero means "unbounded on that side". This falsy-zero convention
// is inherited from the original data source tooling and kept for fixture
// compatibility; a literal year 0 therefore cannot be used as a bound.
type YearRange struct {
	From int
	To   int
}

// IsOpen reports whether the range restricts nothing.
func (r YearRange) IsOpen() bool { return r.From == 0 && r.To == 0 }

// RankedEntry is one row of a per-year ranked report. Rank restarts at 1 for
// every year group; position 1 holds the largest per-capita value.
type RankedEntry struct {
	Year      int64   `json:"year"`
	Rank      int     `json:"rank"`
	Country   string  `json:"country"`
	PerCapita float64 `json:"per_capita"`
	Absolute  float64 `json:"absolute"`
}

// ChangeEntry is one row of the decade-change report. Delta is the most
// recent per-capita emission value minus the value a decade earlier, so
// positive deltas are increases.
type ChangeEntry struct {
	Country string  `json:"country"`
	Delta   float64 `json:"delta"`
}

// Stats computes the ranked reports. Construct with New; the unified table
// must carry all columns named by config.RequiredUnifiedColumns.
type Stats struct {
	tbl    *table.Table
	topK   int
	logger *slog.Logger
}

// New validates the unified table, derives the per-capita columns, and
// returns a ready statistics engine. A non-positive topK falls back to
// config.DefaultTopK. Returns a SchemaError naming all required columns if
// any of them is absent.
func New(logger *slog.Logger, unified *table.Table, topK int) (*Stats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if topK <= 0 {
		topK = config.DefaultTopK
	}

	required := config.RequiredUnifiedColumns()
	for _, col := range required {
		if !unified.HasColumn(col) {
			return nil, errs.NewSchemaError("stats.New",
				"the unified table is missing required columns", required...)
		}
	}

	derived, err := derivePerCapita(unified)
	if err != nil {
		return nil, err
	}
	return &Stats{tbl: derived, topK: topK, logger: logger}, nil
}

// derivePerCapita appends GDP_per_capita and Emissions_per_capita.
func derivePerCapita(t *table.Table) (*table.Table, error) {
	gdp, err := t.Floats(config.ColGDP)
	if err != nil {
		return nil, err
	}
	emissions, err := t.Floats(config.ColEmissionsTotal)
	if err != nil {
		return nil, err
	}
	population, err := t.Ints(config.ColPopulation)
	if err != nil {
		return nil, err
	}

	gdpPC := make([]float64, len(gdp))
	emPC := make([]float64, len(emissions))
	for i := range population {
		pop := float64(population[i])
		gdpPC[i] = gdp[i] / pop
		emPC[i] = emissions[i] / pop
	}

	out, err := t.WithColumn(table.FloatColumn(config.ColGDPPerCapita, gdpPC))
	if err != nil {
		return nil, err
	}
	return out.WithColumn(table.FloatColumn(config.ColEmissionsPerCapita, emPC))
}

// GDPStatsPerYear returns, for each year within the optional range, the topK
// countries by GDP per capita. Returns an EmptyRangeError carrying the
// requested range if the restriction leaves no rows.
func (s *Stats) GDPStatsPerYear(r YearRange) ([]RankedEntry, error) {
	s.logger.Info("calculating top countries by GDP per capita per year",
		slog.Int("top_k", s.topK),
		slog.Int("from", r.From),
		slog.Int("to", r.To))
	return s.perYearTopK(r, config.ColGDPPerCapita, config.ColGDP)
}

// EmissionStatsPerYear returns, for each year within the optional range, the
// topK countries by emissions per capita. Returns an EmptyRangeError carrying
// the requested range if the restriction leaves no rows.
func (s *Stats) EmissionStatsPerYear(r YearRange) ([]RankedEntry, error) {
	s.logger.Info("calculating top countries by emissions per capita per year",
		slog.Int("top_k", s.topK),
		slog.Int("from", r.From),
		slog.Int("to", r.To))
	return s.perYearTopK(r, config.ColEmissionsPerCapita, config.ColEmissionsTotal)
}

func (s *Stats) perYearTopK(r YearRange, metricCol, absoluteCol string) ([]RankedEntry, error) {
	restricted := s.tbl
	if !r.IsOpen() {
		years, err := restricted.Ints(config.ColYear)
		if err != nil {
			return nil, err
		}
		restricted = restricted.FilterRows(func(row int) bool {
			y := int(years[row])
			if r.From != 0 && y < r.From {
				return false
			}
			if r.To != 0 && y > r.To {
				return false
			}
			return true
		})
	}
	if restricted.NumRows() == 0 {
		return nil, errs.NewEmptyRangeError(r.From, r.To)
	}

	years, err := restricted.Ints(config.ColYear)
	if err != nil {
		return nil, err
	}
	countries, err := restricted.Strings(config.ColCountry)
	if err != nil {
		return nil, err
	}
	metric, err := restricted.Floats(metricCol)
	if err != nil {
		return nil, err
	}
	absolute, err := restricted.Floats(absoluteCol)
	if err != nil {
		return nil, err
	}

	// Group row indexes by year, keeping original row order within a group
	// so that the stable sort below breaks metric ties by original order.
	groups := make(map[int64][]int)
	for row, y := range years {
		groups[y] = append(groups[y], row)
	}
	sortedYears := make([]int64, 0, len(groups))
	for y := range groups {
		sortedYears = append(sortedYears, y)
	}
	sort.Slice(sortedYears, func(i, j int) bool { return sortedYears[i] < sortedYears[j] })

	var out []RankedEntry
	for _, y := range sortedYears {
		rows := groups[y]
		sort.SliceStable(rows, func(i, j int) bool {
			return metric[rows[i]] > metric[rows[j]]
		})
		limit := s.topK
		if len(rows) < limit {
			// A year with fewer countries than topK yields all of them.
			limit = len(rows)
		}
		for rank := 0; rank < limit; rank++ {
			row := rows[rank]
			out = append(out, RankedEntry{
				Year:      y,
				Rank:      rank + 1,
				Country:   countries[row],
				PerCapita: metric[row],
				Absolute:  absolute[row],
			})
		}
	}
	return out, nil
}

// EmissionChangeStats returns the topK emission-per-capita increases and
// decreases between the most recent year in the data and the year a decade
// earlier. Countries lacking data for either of the two years are excluded.
//
// Missing history (no rows a decade before the latest year) is a recognized
// outcome, not an error: it is logged and two empty reports are returned.
func (s *Stats) EmissionChangeStats() ([]ChangeEntry, []ChangeEntry, error) {
	years, err := s.tbl.Ints(config.ColYear)
	if err != nil {
		return nil, nil, err
	}
	countries, err := s.tbl.Strings(config.ColCountry)
	if err != nil {
		return nil, nil, err
	}
	metric, err := s.tbl.Floats(config.ColEmissionsPerCapita)
	if err != nil {
		return nil, nil, err
	}

	if len(years) == 0 {
		s.logger.Error("cannot compute emission changes: the unified table is empty")
		return []ChangeEntry{}, []ChangeEntry{}, nil
	}

	mostRecent := years[0]
	for _, y := range years[1:] {
		if y > mostRecent {
			mostRecent = y
		}
	}
	decadeAgo := mostRecent - 10

	hasDecadeAgo := false
	for _, y := range years {
		if y == decadeAgo {
			hasDecadeAgo = true
			break
		}
	}
	if !hasDecadeAgo {
		s.logger.Error("cannot compute emission changes during the most recent decade",
			slog.Int64("most_recent_year", mostRecent),
			slog.Int64("decade_ago", decadeAgo))
		return []ChangeEntry{}, []ChangeEntry{}, nil
	}

	type slice struct {
		countries []string
		values    []float64
	}
	duplicates := 0
	collect := func(year int64) slice {
		var sl slice
		seen := make(map[string]struct{})
		for row, y := range years {
			if y != year {
				continue
			}
			c := countries[row]
			// The merger multiplies duplicate (Country, Year) keys. Only
			// the first observation per country enters the delta, keeping
			// the two year slices aligned after the intersection.
			if _, dup := seen[c]; dup {
				duplicates++
				continue
			}
			seen[c] = struct{}{}
			sl.countries = append(sl.countries, c)
			sl.values = append(sl.values, metric[row])
		}
		return sl
	}
	recent := collect(mostRecent)
	ago := collect(decadeAgo)
	if duplicates > 0 {
		s.logger.Warn("duplicate country rows in the compared years; keeping the first observation per country",
			slog.Int("duplicate_rows", duplicates))
	}

	// Only countries present in both year slices participate.
	inAgo := make(map[string]struct{}, len(ago.countries))
	for _, c := range ago.countries {
		inAgo[c] = struct{}{}
	}
	inRecent := make(map[string]struct{}, len(recent.countries))
	for _, c := range recent.countries {
		inRecent[c] = struct{}{}
	}
	restrict := func(sl slice, keep map[string]struct{}) slice {
		var out slice
		for i, c := range sl.countries {
			if _, ok := keep[c]; ok {
				out.countries = append(out.countries, c)
				out.values = append(out.values, sl.values[i])
			}
		}
		return out
	}
	recent = restrict(recent, inAgo)
	ago = restrict(ago, inRecent)

	// Sort both slices by country to align positions before differencing.
	sortByCountry := func(sl slice) {
		order := make([]int, len(sl.countries))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			return sl.countries[order[i]] < sl.countries[order[j]]
		})
		cs := make([]string, len(order))
		vs := make([]float64, len(order))
		for i, idx := range order {
			cs[i] = sl.countries[idx]
			vs[i] = sl.values[idx]
		}
		copy(sl.countries, cs)
		copy(sl.values, vs)
	}
	sortByCountry(recent)
	sortByCountry(ago)

	s.logger.Info("calculating countries with largest emission changes per capita across the last decade",
		slog.Int64("most_recent_year", mostRecent),
		slog.Int64("decade_ago", decadeAgo),
		slog.Int("countries", len(recent.countries)))

	deltas := make([]ChangeEntry, len(recent.countries))
	for i := range recent.countries {
		deltas[i] = ChangeEntry{
			Country: recent.countries[i],
			Delta:   recent.values[i] - ago.values[i],
		}
	}

	increases := topKByDelta(deltas, s.topK, func(a, b ChangeEntry) bool { return a.Delta > b.Delta })
	decreases := topKByDelta(deltas, s.topK, func(a, b ChangeEntry) bool { return a.Delta < b.Delta })
	return increases, decreases, nil
}

func topKByDelta(entries []ChangeEntry, k int, less func(a, b ChangeEntry) bool) []ChangeEntry {
	sorted := make([]ChangeEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}

// TopK returns the configured per-group result size.
func (s *Stats) TopK() int { return s.topK }

// WithTopK returns a Stats over the same table with a different k. The
// underlying table is shared, which is safe because it is immutable. A
// non-positive k returns the receiver unchanged.
func (s *Stats) WithTopK(k int) *Stats {
	if k <= 0 || k == s.topK {
		return s
	}
	return &Stats{tbl: s.tbl, topK: k, logger: s.logger}
}
