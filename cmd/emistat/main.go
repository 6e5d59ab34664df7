// Command emistat ingests the emission, GDP and population datasets, runs
// the normalization pipeline and prints the ranked reports to stdout.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"emistat/internal/config"
	"emistat/internal/errs"
	"emistat/internal/logging"
	"emistat/internal/pipeline"
	"emistat/internal/report"
	"emistat/internal/stats"
)

func main() {
	emissionsPath := flag.String("emissions", "", "path to the CO2 emissions CSV")
	gdpPath := flag.String("gdp", "", "path to the World Bank GDP file (.csv or .xlsx)")
	populationPath := flag.String("population", "", "path to the World Bank population file (.csv or .xlsx)")
	start := flag.Int("start", 0, "first year of the reporting interval (requires -end)")
	end := flag.Int("end", 0, "last year of the reporting interval (requires -start)")
	topK := flag.Int("k", 0, "countries kept per ranked group (defaults to the configured value)")
	configPath := flag.String("config", "", "optional YAML configuration file")
	outDir := flag.String("out", "", "optional directory for CSV exports of the reports")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	if *emissionsPath == "" || *gdpPath == "" || *populationPath == "" {
		slog.Error("the -emissions, -gdp and -population flags are all required")
		flag.Usage()
		os.Exit(2)
	}
	if (*start == 0) != (*end == 0) {
		slog.Error("-start and -end must be provided together")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	logger := logging.New(cfg.Logging)

	if *topK <= 0 {
		*topK = cfg.Stats.TopK
	}

	logger.Info("loading source datasets",
		slog.String("emissions", *emissionsPath),
		slog.String("gdp", *gdpPath),
		slog.String("population", *populationPath))

	sources, err := pipeline.LoadSources(*emissionsPath, *gdpPath, *populationPath)
	if err != nil {
		logger.Error("failed to load source datasets", "error", err)
		os.Exit(1)
	}

	unified, err := pipeline.New(logger, cfg).Run(sources)
	if err != nil {
		logger.Error("data pipeline failed", "error", err)
		os.Exit(1)
	}

	engine, err := stats.New(logger, unified, *topK)
	if err != nil {
		logger.Error("failed to build the statistics engine", "error", err)
		os.Exit(1)
	}

	renderer := report.NewRenderer(os.Stdout)
	var exporter *report.CSVWriter
	if *outDir != "" {
		exporter = report.NewCSVWriter(*outDir)
	}

	interval := stats.YearRange{From: *start, To: *end}

	gdpEntries, ok := perYearReport(logger, "GDP per capita",
		func() ([]stats.RankedEntry, error) { return engine.GDPStatsPerYear(interval) })
	if ok {
		renderer.RenderPerYear("Countries with the highest GDP per capita",
			report.HeaderGDPPerCapita, report.HeaderGDPTotal, gdpEntries)
		exportPerYear(logger, exporter, "gdp_per_capita.csv",
			report.HeaderGDPPerCapita, report.HeaderGDPTotal, gdpEntries)
	}

	emissionEntries, ok := perYearReport(logger, "emissions per capita",
		func() ([]stats.RankedEntry, error) { return engine.EmissionStatsPerYear(interval) })
	if ok {
		renderer.RenderPerYear("Countries with the highest CO2 emissions per capita",
			report.HeaderEmissionsPerCapita, report.HeaderEmissionsTotal, emissionEntries)
		exportPerYear(logger, exporter, "emissions_per_capita.csv",
			report.HeaderEmissionsPerCapita, report.HeaderEmissionsTotal, emissionEntries)
	}

	increases, decreases, err := engine.EmissionChangeStats()
	if err != nil {
		logger.Error("failed to compute the emission change report", "error", err)
		os.Exit(1)
	}
	renderer.RenderChanges("Countries with the largest increase in CO2 emissions per capita over the last decade", increases)
	renderer.RenderChanges("Countries with the largest decrease in CO2 emissions per capita over the last decade", decreases)
	if exporter != nil {
		if err := exporter.WriteChanges("emission_increases.csv", increases); err != nil {
			logger.Error("failed to export report", slog.String("report", "emission_increases"), "error", err)
			os.Exit(1)
		}
		if err := exporter.WriteChanges("emission_decreases.csv", decreases); err != nil {
			logger.Error("failed to export report", slog.String("report", "emission_decreases"), "error", err)
			os.Exit(1)
		}
	}
}

// perYearReport runs one ranked query. An exhausted year interval only skips
// that report; any other failure is fatal.
func perYearReport(logger *slog.Logger, name string, query func() ([]stats.RankedEntry, error)) ([]stats.RankedEntry, bool) {
	entries, err := query()
	if err != nil {
		var rangeErr *errs.EmptyRangeError
		if errors.As(err, &rangeErr) {
			logger.Warn("skipping report: no data in the requested year interval",
				slog.String("report", name),
				slog.Int("from", rangeErr.From),
				slog.Int("to", rangeErr.To))
			return nil, false
		}
		logger.Error("failed to compute report", slog.String("report", name), "error", err)
		os.Exit(1)
	}
	return entries, true
}

func exportPerYear(logger *slog.Logger, exporter *report.CSVWriter, filename, metricHeader, absoluteHeader string, entries []stats.RankedEntry) {
	if exporter == nil {
		return
	}
	if err := exporter.WritePerYear(filename, metricHeader, absoluteHeader, entries); err != nil {
		logger.Error("failed to export report", slog.String("file", filename), "error", err)
		os.Exit(1)
	}
}
