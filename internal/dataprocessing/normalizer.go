package dataprocessing

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"farmdx/pkg/contracts/domain"
)

// Column names after header normalization (trimmed, lowercased, spaces
// replaced with underscores).
const (
	colNumber   = "number"
	colSampleID = "sample_id"
	colSpecie   = "specie"
	colFarmName = "farm_name"
	colDisease  = "disease"
	colTestDate = "test_date"
	colCTValue  = "ct_value"
	colResult   = "result"
)

var requiredColumns = []string{
	colNumber, colSampleID, colSpecie, colFarmName,
	colDisease, colTestDate, colCTValue, colResult,
}

// Textual date formats tried in strict order. First successful parse wins,
// so ambiguous values like 03/04/2025 resolve as month/day. The source
// convention is preserved rather than disambiguated.
var dateFormats = []string{
	"2006.01.02",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
}

// spreadsheetEpoch is day zero of the Excel serial date system.
var spreadsheetEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// CT readings that mean "no amplification detected" rather than a number.
var ctSentinels = map[string]struct{}{
	"":      {},
	"na":    {},
	"none":  {},
	"nan":   {},
	"no ct": {},
	"n/a":   {},
}

// Normalizer parses raw tabular input into canonical typed records.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a normalizer. A nil logger falls back to the
// default slog logger.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize converts a raw header row plus data rows into a canonically
// sorted record set. It returns *SchemaError when required columns are
// missing and *DateParseError when any test date is unreadable; either
// aborts the whole load.
func (n *Normalizer) Normalize(header []string, rows [][]string) ([]domain.TestRecord, error) {
	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	records := make([]domain.TestRecord, 0, len(rows))
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}

		cell := func(name string) string {
			idx := columns[name]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		testDate, err := ParseTestDate(cell(colTestDate))
		if err != nil {
			return nil, &DateParseError{Row: i + 2, Value: cell(colTestDate)}
		}

		id, _ := strconv.ParseInt(cell(colNumber), 10, 64)
		raw := cell(colCTValue)
		result := NormalizeResult(cell(colResult))

		records = append(records, domain.TestRecord{
			ID:         id,
			SampleID:   cell(colSampleID),
			Specie:     cell(colSpecie),
			FarmName:   cell(colFarmName),
			Disease:    cell(colDisease),
			TestDate:   testDate,
			CTValueRaw: raw,
			CTValue:    ParseCTValue(raw),
			Result:     result,
			IsPositive: result == domain.ResultPositive,
		})
	}

	domain.SortRecords(records)

	n.logger.Debug("normalized record set",
		slog.Int("input_rows", len(rows)),
		slog.Int("records", len(records)))

	return records, nil
}

// mapColumns resolves required column positions from a raw header row.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(h), " ", "_"))
		if _, ok := columns[key]; !ok {
			columns[key] = i
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return columns, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ParseTestDate parses a date cell: textual formats in strict order first,
// then interpretation as a spreadsheet serial number (days since
// 1899-12-30, fractional days truncated).
func ParseTestDate(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, err
	}
	return spreadsheetEpoch.AddDate(0, 0, int(serial)), nil
}

// ParseCTValue parses a raw CT reading. Sentinel tokens and unparseable
// values both yield nil: "No Ct" is the dominant absent-value convention,
// so a failed parse is not an error.
func ParseCTValue(raw string) *float64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := ctSentinels[s]; ok {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// NormalizeResult canonicalizes a free-text result value: trim,
// title-case, and collapse any case or hyphenation variant of
// "re-analysis" to the canonical spelling. Values outside the known set
// are retained as-is; classification comes from the source data and is
// never re-derived from CT values.
func NormalizeResult(raw string) string {
	s := titleCase(strings.TrimSpace(raw))
	collapsed := strings.ReplaceAll(strings.ToLower(s), "-", "")
	if collapsed == "reanalysis" {
		return domain.ResultReAnalysis
	}
	return s
}

// titleCase uppercases the first letter of each space- or hyphen-separated
// word, matching the source tool's normalization.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevBoundary := true
	for _, r := range s {
		switch {
		case prevBoundary && r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		case !prevBoundary && r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
		prevBoundary = r == ' ' || r == '-'
	}
	return b.String()
}
