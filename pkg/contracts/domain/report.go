package domain

import "time"

// Summary holds the count-based KPIs for an arbitrary record subset.
type Summary struct {
	Total        int     `json:"total"`
	Positive     int     `json:"positive"`
	Negative     int     `json:"negative"`
	ReAnalysis   int     `json:"re_analysis"`
	PositiveRate float64 `json:"positive_rate"`
}

// FarmSummary is one per-farm overview card: the farm's KPI summary plus
// its most recent test date within the current filter.
type FarmSummary struct {
	FarmName     string    `json:"farm_name"`
	Summary      Summary   `json:"summary"`
	LastTestDate time.Time `json:"last_test_date"`
}

// Pivot is a disease-by-result count matrix. Rows are the distinct
// diseases present, sorted ascending; columns are the result values that
// occur at least once, in stable first-appearance order. Counts is
// zero-filled, indexed [row][col].
type Pivot struct {
	Diseases []string `json:"diseases"`
	Results  []string `json:"results"`
	Counts   [][]int  `json:"counts"`
}

// RowTotal returns the total count for the disease at row index i.
func (p Pivot) RowTotal(i int) int {
	total := 0
	for _, n := range p.Counts[i] {
		total += n
	}
	return total
}

// DetailRow is the six-column projection shown in report detail tables.
type DetailRow struct {
	SampleID   string    `json:"sample_id"`
	Specie     string    `json:"specie"`
	Disease    string    `json:"disease"`
	TestDate   time.Time `json:"test_date"`
	CTValueRaw string    `json:"ct_value_raw"`
	Result     string    `json:"result"`
}

// Report is the assembled per-farm report document, ready for rendering.
// LastTestDate is zero when the farm has no rows under the current filter;
// that is a valid empty report, not an error.
type Report struct {
	FarmName     string      `json:"farm_name"`
	Summary      Summary     `json:"summary"`
	Pivot        Pivot       `json:"pivot"`
	Details      []DetailRow `json:"details"`
	LastTestDate time.Time   `json:"last_test_date"`
}
