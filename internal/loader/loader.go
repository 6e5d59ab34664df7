package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"emistat/internal/config"
	"emistat/internal/errs"
	"emistat/internal/table"
)

// worldBankPreambleRows is the number of metadata rows before the header in
// World Bank data files.
const worldBankPreambleRows = 3

// LoadEmissionsCSV reads the emissions source: a long CSV carrying at least
// Year, Country and Total columns. Total is renamed to Emissions_total; any
// other columns are discarded.
func LoadEmissionsCSV(path string) (*table.Table, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("emissions file %s is empty", path)
	}

	header := records[0]
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range []string{config.ColYear, config.ColCountry, "Total"} {
		if _, ok := idx[col]; !ok {
			return nil, errs.NewSchemaError("loader.LoadEmissionsCSV",
				"required column is absent", col)
		}
	}

	// The reader tolerates ragged rows for the World Bank preamble, so a
	// short data row must become a parse error here, not a panic.
	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	rows := records[1:]
	years := make([]int64, 0, len(rows))
	countries := make([]string, 0, len(rows))
	totals := make([]float64, 0, len(rows))
	for n, row := range rows {
		year, err := strconv.ParseInt(cell(row, idx[config.ColYear]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("emissions row %d: bad year: %w", n+2, err)
		}
		total, err := strconv.ParseFloat(cell(row, idx["Total"]), 64)
		if err != nil {
			return nil, fmt.Errorf("emissions row %d: bad total: %w", n+2, err)
		}
		years = append(years, year)
		countries = append(countries, cell(row, idx[config.ColCountry]))
		totals = append(totals, total)
	}

	return table.New(
		table.IntColumn(config.ColYear, years),
		table.StringColumn(config.ColCountry, countries),
		table.FloatColumn(config.ColEmissionsTotal, totals),
	)
}

// LoadWorldBankCSV reads a GDP or population source in the World Bank wide
// CSV layout and returns the shaped wide table.
func LoadWorldBankCSV(path string) (*table.Table, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	return shapeWorldBank(path, records)
}

// readCSV reads all records from a CSV file, tolerating a UTF-8 byte order
// mark and ragged preamble rows.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	// World Bank exports lead with a UTF-8 BOM; decode it away.
	decoded := transform.NewReader(f, unicode.UTF8BOM.NewDecoder())
	r := csv.NewReader(decoded)
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		records = append(records, row)
	}
	return records, nil
}

// shapeWorldBank turns raw World Bank records into the wide table the
// reshaper expects: preamble skipped, Indicator Code and the trailing empty
// metadata column dropped, Country Name renamed to Country, year cells
// parsed as floats with NaN for missing values.
func shapeWorldBank(path string, records [][]string) (*table.Table, error) {
	if len(records) <= worldBankPreambleRows {
		return nil, fmt.Errorf("world bank file %s has no header row", path)
	}
	records = records[worldBankPreambleRows:]
	header := records[0]
	rows := records[1:]

	// The final header cell of World Bank exports is empty; drop it together
	// with its column.
	for len(header) > 0 && strings.TrimSpace(header[len(header)-1]) == "" {
		header = header[:len(header)-1]
	}

	fixed := []string{"Country Name", config.ColCountryCode, config.ColIndicatorName, config.ColIndicatorCode}
	if len(header) < len(fixed) {
		return nil, errs.NewSchemaError("loader.shapeWorldBank",
			fmt.Sprintf("file %s: header too short", path), fixed...)
	}
	for i, want := range fixed {
		if strings.TrimSpace(header[i]) != want {
			return nil, errs.NewSchemaError("loader.shapeWorldBank",
				fmt.Sprintf("file %s: unexpected header %q at position %d", path, header[i], i), want)
		}
	}
	yearHeaders := header[len(fixed):]

	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	countries := make([]string, len(rows))
	codes := make([]string, len(rows))
	indicators := make([]string, len(rows))
	yearValues := make([][]float64, len(yearHeaders))
	for i := range yearValues {
		yearValues[i] = make([]float64, len(rows))
	}

	for n, row := range rows {
		countries[n] = cell(row, 0)
		codes[n] = cell(row, 1)
		indicators[n] = cell(row, 2)
		for i := range yearHeaders {
			raw := cell(row, len(fixed)+i)
			if raw == "" {
				yearValues[i][n] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("file %s row %d column %q: bad value: %w",
					path, n+worldBankPreambleRows+2, yearHeaders[i], err)
			}
			yearValues[i][n] = v
		}
	}

	cols := make([]table.Column, 0, 3+len(yearHeaders))
	cols = append(cols,
		table.StringColumn(config.ColCountryCode, codes),
		table.StringColumn(config.ColCountry, countries),
		table.StringColumn(config.ColIndicatorName, indicators),
	)
	for i, name := range yearHeaders {
		cols = append(cols, table.FloatColumn(strings.TrimSpace(name), yearValues[i]))
	}
	return table.New(cols...)
}
