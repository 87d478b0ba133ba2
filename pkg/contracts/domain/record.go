package domain

import (
	"sort"
	"time"
)

// Result classification values as they appear after normalization.
// The set is open: unknown result strings from the source data are
// retained verbatim, so Result stays a plain string rather than an enum.
const (
	ResultPositive   = "Positive"
	ResultNegative   = "Negative"
	ResultReAnalysis = "Re-analysis"
)

// FilterAll is the sentinel selection value that performs no narrowing.
const FilterAll = "All"

// TestRecord represents a single diagnostic test result.
type TestRecord struct {
	ID         int64     `json:"id"`
	SampleID   string    `json:"sample_id" validate:"required"`
	Specie     string    `json:"specie" validate:"required"`
	FarmName   string    `json:"farm_name" validate:"required"`
	Disease    string    `json:"disease" validate:"required"`
	TestDate   time.Time `json:"test_date"`
	CTValueRaw string    `json:"ct_value_raw"`
	CTValue    *float64  `json:"ct_value,omitempty"`
	Result     string    `json:"result"`
	IsPositive bool      `json:"is_positive"`
}

// Day returns the test date truncated to calendar-day granularity in UTC.
// All date comparisons in the filter engine happen at this granularity.
func (r TestRecord) Day() time.Time {
	y, m, d := r.TestDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SortRecords orders records canonically by
// (test date, farm name, disease, sample ID). Record sets are kept in
// this order from normalization onward.
func SortRecords(records []TestRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Day().Equal(b.Day()) {
			return a.Day().Before(b.Day())
		}
		if a.FarmName != b.FarmName {
			return a.FarmName < b.FarmName
		}
		if a.Disease != b.Disease {
			return a.Disease < b.Disease
		}
		return a.SampleID < b.SampleID
	})
}

// DistinctValues returns the sorted distinct values produced by key over
// the given records. Used to build the option universe for a filter stage.
func DistinctValues(records []TestRecord, key func(TestRecord) string) []string {
	seen := make(map[string]struct{}, len(records))
	values := make([]string, 0, len(records))
	for _, rec := range records {
		v := key(rec)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
