package dataprocessing

import (
	"sort"
	"strings"

	"farmdx/pkg/contracts/domain"
)

// Summarize computes the KPI counts and positive rate over an arbitrary
// record subset. Counts match exactly on the normalized result value;
// re-analysis is compared case-insensitively as a defensive invariant
// check on top of normalization.
func Summarize(records []domain.TestRecord) domain.Summary {
	s := domain.Summary{Total: len(records)}
	for _, rec := range records {
		switch {
		case rec.IsPositive:
			s.Positive++
		case rec.Result == domain.ResultNegative:
			s.Negative++
		case strings.EqualFold(rec.Result, domain.ResultReAnalysis):
			s.ReAnalysis++
		}
	}
	if s.Total > 0 {
		s.PositiveRate = float64(s.Positive) / float64(s.Total) * 100.0
	}
	return s
}

// GroupByFarm breaks a record subset into per-farm summary cards,
// lexicographically ordered by farm name. Farms with zero rows in the
// input never appear: a zero-row card is never emitted.
func GroupByFarm(records []domain.TestRecord) []domain.FarmSummary {
	groups := make(map[string][]domain.TestRecord)
	for _, rec := range records {
		groups[rec.FarmName] = append(groups[rec.FarmName], rec)
	}

	farms := make([]string, 0, len(groups))
	for farm := range groups {
		farms = append(farms, farm)
	}
	sort.Strings(farms)

	summaries := make([]domain.FarmSummary, 0, len(farms))
	for _, farm := range farms {
		rows := groups[farm]
		fs := domain.FarmSummary{FarmName: farm, Summary: Summarize(rows)}
		for _, rec := range rows {
			if day := rec.Day(); day.After(fs.LastTestDate) {
				fs.LastTestDate = day
			}
		}
		summaries = append(summaries, fs)
	}
	return summaries
}

// PivotDiseaseByResult builds the disease-by-result count matrix. Rows are
// the distinct diseases present, sorted ascending; columns are the result
// values observed among those rows, in first-appearance order over the
// canonically sorted input, which keeps repeated calls on the same input
// stable. Cells with no matching rows stay zero.
func PivotDiseaseByResult(records []domain.TestRecord) domain.Pivot {
	diseases := domain.DistinctValues(records, func(r domain.TestRecord) string { return r.Disease })

	diseaseIdx := make(map[string]int, len(diseases))
	for i, d := range diseases {
		diseaseIdx[d] = i
	}

	var results []string
	resultIdx := make(map[string]int)
	counts := make(map[[2]int]int)
	for _, rec := range records {
		col, ok := resultIdx[rec.Result]
		if !ok {
			col = len(results)
			resultIdx[rec.Result] = col
			results = append(results, rec.Result)
		}
		counts[[2]int{diseaseIdx[rec.Disease], col}]++
	}

	matrix := make([][]int, len(diseases))
	for i := range matrix {
		matrix[i] = make([]int, len(results))
		for j := range matrix[i] {
			matrix[i][j] = counts[[2]int{i, j}]
		}
	}

	return domain.Pivot{Diseases: diseases, Results: results, Counts: matrix}
}
