package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortRecords(t *testing.T) {
	d1 := time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC)

	records := []TestRecord{
		{SampleID: "004", FarmName: "CJOY", Disease: "Reovirus", TestDate: d2},
		{SampleID: "003", FarmName: "CJOY", Disease: "IBD", TestDate: d2},
		{SampleID: "002", FarmName: "Abcede", Disease: "ASF", TestDate: d2},
		{SampleID: "001", FarmName: "Abcede", Disease: "ASF", TestDate: d1},
	}

	SortRecords(records)

	var order []string
	for _, r := range records {
		order = append(order, r.SampleID)
	}
	assert.Equal(t, []string{"001", "002", "003", "004"}, order)
}

func TestDay_TruncatesToUTC(t *testing.T) {
	r := TestRecord{TestDate: time.Date(2025, 10, 28, 18, 45, 12, 0, time.UTC)}
	assert.True(t, r.Day().Equal(time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC)))
}

func TestDistinctValues(t *testing.T) {
	records := []TestRecord{
		{Specie: "Swine"},
		{Specie: "Broiler"},
		{Specie: "Swine"},
		{Specie: ""},
		{Specie: "Layer"},
	}

	values := DistinctValues(records, func(r TestRecord) string { return r.Specie })
	assert.Equal(t, []string{"Broiler", "Layer", "Swine"}, values, "sorted, deduplicated, blanks dropped")
}

func TestIsAll(t *testing.T) {
	assert.True(t, IsAll(""))
	assert.True(t, IsAll(FilterAll))
	assert.False(t, IsAll("Swine"))
	assert.False(t, IsAll("all"), "the sentinel is case sensitive")
}
