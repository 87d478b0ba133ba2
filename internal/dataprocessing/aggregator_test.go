package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmdx/pkg/contracts/domain"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.TestRecord
		want    domain.Summary
	}{
		{
			name:    "empty set",
			records: nil,
			want:    domain.Summary{},
		},
		{
			name: "one of each result",
			records: []domain.TestRecord{
				rec("001", "Broiler", "CJOY", "IBD", day(2025, 10, 30), domain.ResultPositive),
				rec("002", "Broiler", "CJOY", "IBD", day(2025, 10, 30), domain.ResultNegative),
				rec("003", "Broiler", "CJOY", "IBD", day(2025, 10, 30), domain.ResultReAnalysis),
			},
			want: domain.Summary{
				Total:        3,
				Positive:     1,
				Negative:     1,
				ReAnalysis:   1,
				PositiveRate: 100.0 / 3.0,
			},
		},
		{
			name: "all positive",
			records: []domain.TestRecord{
				rec("001", "Swine", "Abcede", "ASF", day(2025, 10, 28), domain.ResultPositive),
				rec("002", "Swine", "Abcede", "ASF", day(2025, 10, 28), domain.ResultPositive),
			},
			want: domain.Summary{Total: 2, Positive: 2, PositiveRate: 100},
		},
		{
			name: "unknown result counts toward total only",
			records: []domain.TestRecord{
				rec("001", "Swine", "Abcede", "ASF", day(2025, 10, 28), "Inconclusive"),
				rec("002", "Swine", "Abcede", "ASF", day(2025, 10, 28), domain.ResultNegative),
			},
			want: domain.Summary{Total: 2, Negative: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.records)
			assert.Equal(t, tt.want.Total, got.Total)
			assert.Equal(t, tt.want.Positive, got.Positive)
			assert.Equal(t, tt.want.Negative, got.Negative)
			assert.Equal(t, tt.want.ReAnalysis, got.ReAnalysis)
			assert.InDelta(t, tt.want.PositiveRate, got.PositiveRate, 1e-9)
		})
	}
}

func TestSummarize_NoCtIsStillNegative(t *testing.T) {
	// A nil CT value must not reclassify the record; the result column is
	// authoritative.
	record := rec("001", "Swine", "Abcede", "ASF", day(2025, 10, 28), domain.ResultNegative)
	record.CTValueRaw = "No Ct"
	record.CTValue = nil

	got := Summarize([]domain.TestRecord{record})

	assert.Equal(t, 1, got.Negative)
	assert.Equal(t, 0, got.Positive)
	assert.Zero(t, got.PositiveRate)
}

func TestGroupByFarm(t *testing.T) {
	records := []domain.TestRecord{
		rec("001", "Broiler", "CJOY", "IBD", day(2025, 11, 3), domain.ResultPositive),
		rec("002", "Broiler", "CJOY", "IBD", day(2025, 10, 30), domain.ResultNegative),
		rec("003", "Swine", "Abcede", "ASF", day(2025, 10, 28), domain.ResultNegative),
	}

	farms := GroupByFarm(records)
	require.Len(t, farms, 2)

	// Lexicographic farm order.
	assert.Equal(t, "Abcede", farms[0].FarmName)
	assert.Equal(t, "CJOY", farms[1].FarmName)

	assert.Equal(t, 1, farms[0].Summary.Total)
	assert.Equal(t, 2, farms[1].Summary.Total)
	assert.Equal(t, 1, farms[1].Summary.Positive)

	// Last test date is the max per farm.
	assert.True(t, farms[1].LastTestDate.Equal(day(2025, 11, 3)))
	assert.True(t, farms[0].LastTestDate.Equal(day(2025, 10, 28)))
}

func TestGroupByFarm_NoZeroRowCards(t *testing.T) {
	farms := GroupByFarm(nil)
	assert.Empty(t, farms)
}

func TestPivotDiseaseByResult(t *testing.T) {
	records := []domain.TestRecord{
		rec("001", "Broiler", "CJOY", "IBD", day(2025, 10, 30), domain.ResultPositive),
		rec("002", "Broiler", "CJOY", "IBD", day(2025, 10, 30), domain.ResultReAnalysis),
		rec("003", "Broiler", "CJOY", "Reovirus", day(2025, 10, 30), domain.ResultPositive),
		rec("004", "Broiler", "CJOY", "IBD", day(2025, 11, 2), domain.ResultNegative),
		rec("005", "Broiler", "CJOY", "IBD", day(2025, 11, 2), domain.ResultPositive),
	}

	pivot := PivotDiseaseByResult(records)

	assert.Equal(t, []string{"IBD", "Reovirus"}, pivot.Diseases)
	// Column order follows first appearance over the input.
	assert.Equal(t, []string{domain.ResultPositive, domain.ResultReAnalysis, domain.ResultNegative}, pivot.Results)

	require.Len(t, pivot.Counts, 2)
	assert.Equal(t, []int{3, 1, 1}, pivot.Counts[0])
	assert.Equal(t, []int{1, 0, 0}, pivot.Counts[1], "missing combinations stay zero")
}

func TestPivot_RowTotalsMatchSummary(t *testing.T) {
	records := mixedHerd()

	pivot := PivotDiseaseByResult(records)
	summary := Summarize(records)

	total := 0
	for i := range pivot.Diseases {
		total += pivot.RowTotal(i)
	}
	assert.Equal(t, summary.Total, total, "pivot cells partition the record set")
}

func TestPivot_Empty(t *testing.T) {
	pivot := PivotDiseaseByResult(nil)
	assert.Empty(t, pivot.Diseases)
	assert.Empty(t, pivot.Results)
	assert.Empty(t, pivot.Counts)
}

func TestPivot_StableAcrossCalls(t *testing.T) {
	records := mixedHerd()
	first := PivotDiseaseByResult(records)
	second := PivotDiseaseByResult(records)
	assert.Equal(t, first, second)
}
