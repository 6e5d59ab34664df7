// Package pipeline orchestrates the reconciliation pipeline: normalization,
// reshaping, consistency reconciliation and merging, in the fixed order the
// stages require (uppercase before alias standardization, reshape before
// reconciliation).
//
// The pipeline is synchronous and single-threaded: sources are loaded fully
// into memory, each stage produces a new immutable table, and the unified
// result is read-only once built.
package pipeline

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"emistat/internal/config"
	"emistat/internal/loader"
	"emistat/internal/merge"
	"emistat/internal/metrics"
	"emistat/internal/normalize"
	"emistat/internal/reconcile"
	"emistat/internal/reshape"
	"emistat/internal/table"
)

// Sources holds the three raw tables as produced by the loader.
type Sources struct {
	Emissions  *table.Table
	GDP        *table.Table
	Population *table.Table
}

// Pipeline builds the unified per-country-per-year table from raw sources.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a pipeline with an explicit configuration object. Nothing is
// read from ambient global state.
func New(logger *slog.Logger, cfg *config.Config) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// LoadSources reads the three raw files. World Bank sources may be CSV or
// XLSX, chosen by file extension.
func LoadSources(emissionsPath, gdpPath, populationPath string) (Sources, error) {
	emissions, err := loader.LoadEmissionsCSV(emissionsPath)
	if err != nil {
		return Sources{}, fmt.Errorf("load emissions: %w", err)
	}
	gdp, err := loadWorldBank(gdpPath)
	if err != nil {
		return Sources{}, fmt.Errorf("load gdp: %w", err)
	}
	population, err := loadWorldBank(populationPath)
	if err != nil {
		return Sources{}, fmt.Errorf("load population: %w", err)
	}
	return Sources{Emissions: emissions, GDP: gdp, Population: population}, nil
}

func loadWorldBank(path string) (*table.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loader.LoadWorldBankXLSX(path)
	}
	return loader.LoadWorldBankCSV(path)
}

// Run executes normalization, reshaping, reconciliation and merge, returning
// the unified table. The result is immutable; callers may share it freely.
func (p *Pipeline) Run(src Sources) (*table.Table, error) {
	logger := p.logger.With(slog.String("run_id", uuid.NewString()))

	normalized, err := p.normalizeStage(logger, src)
	if err != nil {
		return nil, err
	}

	reshaped, err := p.reshapeStage(logger, normalized)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	emissions, gdp, population, err := reconcile.Reconcile(
		logger, reshaped.Emissions, reshaped.GDP, reshaped.Population)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}
	metrics.ObserveStage("reconcile", start)

	start = time.Now()
	unified, err := merge.Unify(emissions, gdp, population)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	metrics.ObserveStage("merge", start)
	metrics.RowsProcessed.WithLabelValues("merge", "unified").Add(float64(unified.NumRows()))

	logger.Info("unified table built",
		slog.Int("rows", unified.NumRows()),
		slog.Int("columns", unified.NumCols()))
	return unified, nil
}

// normalizeStage uppercases country labels everywhere, removes aggregate
// rows from the sources that carry a Country Code, and applies the alias
// map. Alias standardization must follow uppercasing: the map keys are
// uppercase.
func (p *Pipeline) normalizeStage(logger *slog.Logger, src Sources) (Sources, error) {
	defer metrics.ObserveStage("normalize", time.Now())

	var err error
	if src.GDP, err = normalize.FilterNonCountries(src.GDP, p.cfg.Data.NonCountryCodes); err != nil {
		return Sources{}, fmt.Errorf("filter non-countries (gdp): %w", err)
	}
	if src.Population, err = normalize.FilterNonCountries(src.Population, p.cfg.Data.NonCountryCodes); err != nil {
		return Sources{}, fmt.Errorf("filter non-countries (population): %w", err)
	}

	if src.Emissions, err = normalize.UppercaseColumn(src.Emissions, config.ColCountry); err != nil {
		return Sources{}, fmt.Errorf("uppercase (emissions): %w", err)
	}
	if src.GDP, err = normalize.UppercaseColumn(src.GDP, config.ColCountry); err != nil {
		return Sources{}, fmt.Errorf("uppercase (gdp): %w", err)
	}
	if src.Population, err = normalize.UppercaseColumn(src.Population, config.ColCountry); err != nil {
		return Sources{}, fmt.Errorf("uppercase (population): %w", err)
	}

	if src.Emissions, err = normalize.StandardizeNames(src.Emissions, p.cfg.Data.CountryAliases); err != nil {
		return Sources{}, fmt.Errorf("standardize names (emissions): %w", err)
	}
	if src.GDP, err = normalize.StandardizeNames(src.GDP, p.cfg.Data.CountryAliases); err != nil {
		return Sources{}, fmt.Errorf("standardize names (gdp): %w", err)
	}
	if src.Population, err = normalize.StandardizeNames(src.Population, p.cfg.Data.CountryAliases); err != nil {
		return Sources{}, fmt.Errorf("standardize names (population): %w", err)
	}

	logger.Debug("sources normalized",
		slog.Int("emission_rows", src.Emissions.NumRows()),
		slog.Int("gdp_rows", src.GDP.NumRows()),
		slog.Int("population_rows", src.Population.NumRows()))
	return src, nil
}

// reshapeStage converts the wide World Bank sources to long layout and
// discards rows whose value cell was missing in the raw file. Emissions are
// already long.
func (p *Pipeline) reshapeStage(logger *slog.Logger, src Sources) (Sources, error) {
	defer metrics.ObserveStage("reshape", time.Now())

	gdp, err := reshape.WideToLong(src.GDP, config.ColGDP)
	if err != nil {
		return Sources{}, fmt.Errorf("reshape gdp: %w", err)
	}
	population, err := reshape.WideToLong(src.Population, config.ColPopulation)
	if err != nil {
		return Sources{}, fmt.Errorf("reshape population: %w", err)
	}

	if gdp, err = dropMissing(gdp, config.ColGDP); err != nil {
		return Sources{}, err
	}
	if population, err = dropMissing(population, config.ColPopulation); err != nil {
		return Sources{}, err
	}

	metrics.RowsProcessed.WithLabelValues("reshape", "gdp").Add(float64(gdp.NumRows()))
	metrics.RowsProcessed.WithLabelValues("reshape", "population").Add(float64(population.NumRows()))

	logger.Debug("world bank sources reshaped",
		slog.Int("gdp_rows", gdp.NumRows()),
		slog.Int("population_rows", population.NumRows()))

	src.GDP = gdp
	src.Population = population
	return src, nil
}

// dropMissing removes long rows whose value is NaN (an empty cell in the
// wide source). A country simply lacks that year afterwards; the join takes
// care of the rest.
func dropMissing(t *table.Table, valueCol string) (*table.Table, error) {
	values, err := t.Floats(valueCol)
	if err != nil {
		return nil, err
	}
	return t.FilterRows(func(row int) bool {
		return !math.IsNaN(values[row])
	}), nil
}
