package dataprocessing

import (
	"time"

	"farmdx/pkg/contracts/domain"
)

// Resolve runs one cascading-filter pass over records. It is a pure
// function: selections apply strictly in stage order (specie, farm,
// disease, result, period), "All" skips narrowing, and each stage's option
// list is computed from the set narrowed by all earlier stages only. The
// default period bounds reflect everything except the period choice
// itself.
func Resolve(records []domain.TestRecord, sel domain.Selection) domain.Resolution {
	res := domain.Resolution{
		SpecieOptions: domain.DistinctValues(records, func(r domain.TestRecord) string { return r.Specie }),
		ResultOptions: []string{domain.ResultPositive, domain.ResultNegative, domain.ResultReAnalysis},
	}

	bySpecie := narrow(records, sel.Specie, func(r domain.TestRecord) string { return r.Specie })
	res.FarmOptions = domain.DistinctValues(bySpecie, func(r domain.TestRecord) string { return r.FarmName })

	byFarm := narrow(bySpecie, sel.Farm, func(r domain.TestRecord) string { return r.FarmName })
	res.DiseaseOptions = domain.DistinctValues(byFarm, func(r domain.TestRecord) string { return r.Disease })

	byDisease := narrow(byFarm, sel.Disease, func(r domain.TestRecord) string { return r.Disease })
	byResult := narrow(byDisease, sel.Result, func(r domain.TestRecord) string { return r.Result })

	res.PeriodStart, res.PeriodEnd = dateBounds(byResult)

	from, to := sel.From, sel.To
	if from.IsZero() {
		from = res.PeriodStart
	}
	if to.IsZero() {
		to = res.PeriodEnd
	}

	res.Candidates = filterPeriod(byResult, from, to)
	return res
}

// narrow filters records by exact equality on one stage's field; the "All"
// sentinel (or an empty selection) returns the input unchanged.
func narrow(records []domain.TestRecord, selected string, key func(domain.TestRecord) string) []domain.TestRecord {
	if domain.IsAll(selected) {
		return records
	}
	out := make([]domain.TestRecord, 0, len(records))
	for _, rec := range records {
		if key(rec) == selected {
			out = append(out, rec)
		}
	}
	return out
}

// filterPeriod keeps records whose test date falls inside [from, to],
// inclusive on both ends, compared at date granularity. When the upstream
// set was empty both bounds are zero and nothing passes: the empty-set
// policy is an empty result, not an error.
func filterPeriod(records []domain.TestRecord, from, to time.Time) []domain.TestRecord {
	if from.IsZero() && to.IsZero() {
		if len(records) == 0 {
			return nil
		}
		return records
	}
	out := make([]domain.TestRecord, 0, len(records))
	for _, rec := range records {
		day := rec.Day()
		if !from.IsZero() && day.Before(truncateDay(from)) {
			continue
		}
		if !to.IsZero() && day.After(truncateDay(to)) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// dateBounds returns the min and max test date of the set, zero values
// when the set is empty.
func dateBounds(records []domain.TestRecord) (time.Time, time.Time) {
	var min, max time.Time
	for _, rec := range records {
		day := rec.Day()
		if min.IsZero() || day.Before(min) {
			min = day
		}
		if max.IsZero() || day.After(max) {
			max = day
		}
	}
	return min, max
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
