package dataprocessing

import (
	"sort"

	"farmdx/pkg/contracts/domain"
)

// BuildReport assembles the per-farm report document from the currently
// filtered record set. The base set decides whether the farm exists at
// all: a farm with zero rows anywhere in the base set is *EmptyFarmError,
// while a farm filtered down to zero rows yields a valid empty report.
func BuildReport(base, filtered []domain.TestRecord, farm string) (domain.Report, error) {
	if !farmExists(base, farm) {
		return domain.Report{}, &EmptyFarmError{Farm: farm}
	}

	subset := make([]domain.TestRecord, 0)
	for _, rec := range filtered {
		if rec.FarmName == farm {
			subset = append(subset, rec)
		}
	}

	report := domain.Report{
		FarmName: farm,
		Summary:  Summarize(subset),
		Pivot:    PivotDiseaseByResult(subset),
		Details:  detailRows(subset),
	}
	for _, rec := range subset {
		if day := rec.Day(); day.After(report.LastTestDate) {
			report.LastTestDate = day
		}
	}
	return report, nil
}

func farmExists(records []domain.TestRecord, farm string) bool {
	for _, rec := range records {
		if rec.FarmName == farm {
			return true
		}
	}
	return false
}

// detailRows projects the subset to the six detail columns, sorted
// ascending by (disease, test date, sample ID).
func detailRows(records []domain.TestRecord) []domain.DetailRow {
	rows := make([]domain.DetailRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, domain.DetailRow{
			SampleID:   rec.SampleID,
			Specie:     rec.Specie,
			Disease:    rec.Disease,
			TestDate:   rec.Day(),
			CTValueRaw: rec.CTValueRaw,
			Result:     rec.Result,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Disease != b.Disease {
			return a.Disease < b.Disease
		}
		if !a.TestDate.Equal(b.TestDate) {
			return a.TestDate.Before(b.TestDate)
		}
		return a.SampleID < b.SampleID
	})
	return rows
}
