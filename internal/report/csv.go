package report

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"emistat/internal/stats"
)

// CSVWriter exports ranked reports as CSV files under a base directory.
type CSVWriter struct {
	dir string
	bom bool
}

// NewCSVWriter creates a CSV writer rooted at dir. The directory is created
// on first write.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir}
}

// WithBOM makes the writer prefix each file with a UTF-8 byte order mark, for
// spreadsheet tools that need it to detect the encoding.
func (w *CSVWriter) WithBOM() *CSVWriter {
	w.bom = true
	return w
}

// WritePerYear exports a per-year ranked report.
func (w *CSVWriter) WritePerYear(filename, metricHeader, absoluteHeader string, entries []stats.RankedEntry) error {
	records := make([][]string, 0, len(entries))
	for _, e := range entries {
		records = append(records, []string{
			strconv.FormatInt(e.Year, 10),
			strconv.Itoa(e.Rank),
			e.Country,
			strconv.FormatFloat(e.PerCapita, 'f', -1, 64),
			strconv.FormatFloat(e.Absolute, 'f', -1, 64),
		})
	}
	return w.write(filename, []string{"Year", "Rank", "Country", metricHeader, absoluteHeader}, records)
}

// WriteChanges exports one side of the decade-change report.
func (w *CSVWriter) WriteChanges(filename string, entries []stats.ChangeEntry) error {
	records := make([][]string, 0, len(entries))
	for i, e := range entries {
		records = append(records, []string{
			strconv.Itoa(i + 1),
			e.Country,
			strconv.FormatFloat(e.Delta, 'f', -1, 64),
		})
	}
	return w.write(filename, []string{"Rank", "Country", HeaderEmissionsDelta}, records)
}

func (w *CSVWriter) write(filename string, header []string, records [][]string) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	path := filepath.Join(w.dir, filename)

	slog.Info("writing report CSV",
		slog.String("path", path),
		slog.Int("record_count", len(records)))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if w.bom {
		if _, err := f.WriteString("\uFEFF"); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
