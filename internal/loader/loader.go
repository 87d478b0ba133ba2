// Package loader reads diagnostic datasets from CSV, tab-delimited, or
// XLSX sources into canonical record sets, and keeps the session's base
// record set in a content-hash memoized store.
package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"farmdx/internal/dataprocessing"
	"farmdx/pkg/contracts/domain"
)

// Loader parses raw dataset files into canonical record sets.
type Loader struct {
	normalizer *dataprocessing.Normalizer
	logger     *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to the default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		normalizer: dataprocessing.NewNormalizer(logger),
		logger:     logger,
	}
}

// Load parses data according to the filename extension: .xlsx/.xls via
// excelize, anything else as delimited text.
func (l *Loader) Load(filename string, data []byte) ([]domain.TestRecord, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return l.ReadXLSX(bytes.NewReader(data))
	default:
		return l.ReadCSV(bytes.NewReader(data))
	}
}

// ReadCSV parses comma- or tab-delimited text. The delimiter is sniffed
// from the header line; the embedded sample ships tab-delimited.
func (l *Loader) ReadCSV(r io.Reader) ([]domain.TestRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited data: %w", err)
	}
	if len(rows) == 0 {
		return nil, &dataprocessing.SchemaError{Missing: []string{"number", "sample_id", "specie", "farm_name", "disease", "test_date", "ct_value", "result"}}
	}

	l.logger.Debug("read delimited dataset",
		slog.Int("rows", len(rows)-1),
		slog.String("delimiter", string(reader.Comma)))

	return l.normalizer.Normalize(rows[0], rows[1:])
}

// ReadXLSX parses an Excel workbook. The data sheet is discovered by
// scanning each sheet's first rows for the required header columns rather
// than assuming a sheet name.
func (l *Loader) ReadXLSX(r io.Reader) ([]domain.TestRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		headerRow := findHeaderRow(rows)
		if headerRow < 0 {
			continue
		}
		l.logger.Debug("found dataset sheet",
			slog.String("sheet", sheet),
			slog.Int("header_row", headerRow))
		return l.normalizer.Normalize(rows[headerRow], rows[headerRow+1:])
	}

	return nil, &dataprocessing.SchemaError{Missing: []string{"number", "sample_id", "specie", "farm_name", "disease", "test_date", "ct_value", "result"}}
}

// findHeaderRow scans the first few rows for one containing the key
// dataset columns.
func findHeaderRow(rows [][]string) int {
	limit := len(rows)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		text := strings.ToLower(strings.Join(rows[i], " "))
		if strings.Contains(text, "sample") &&
			strings.Contains(text, "farm") &&
			strings.Contains(text, "result") {
			return i
		}
	}
	return -1
}

// sniffDelimiter picks tab when the first line contains one, comma
// otherwise.
func sniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	if bytes.ContainsRune(line, '\t') {
		return '\t'
	}
	return ','
}
