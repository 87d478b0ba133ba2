package dataprocessing

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmdx/pkg/contracts/domain"
)

var sampleHeader = []string{"number", "Sample ID", "Specie", "Farm Name", "Disease", "Test Date", "CT Value", "Result"}

func TestParseTestDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "dotted format",
			value: "2025.10.28",
			want:  time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "iso format",
			value: "2025-10-28",
			want:  time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "slash format",
			value: "2025/10/28",
			want:  time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "ambiguous slash resolves month first",
			value: "03/04/2025",
			want:  time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "day-first only when month-first cannot parse",
			value: "25/12/2025",
			want:  time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "spreadsheet serial",
			value: "45963",
			want:  time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "fractional serial truncates",
			value: "45963.75",
			want:  time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "surrounding whitespace",
			value: "  2025.10.28  ",
			want:  time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "unreadable value",
			value:   "yesterday",
			wantErr: true,
		},
		{
			name:    "empty value",
			value:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTestDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseTestDate_FormatEquivalence(t *testing.T) {
	dotted, err := ParseTestDate("2025.10.28")
	require.NoError(t, err)
	iso, err := ParseTestDate("2025-10-28")
	require.NoError(t, err)
	slashed, err := ParseTestDate("2025/10/28")
	require.NoError(t, err)

	assert.True(t, dotted.Equal(iso))
	assert.True(t, iso.Equal(slashed))
}

func TestParseCTValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *float64
	}{
		{name: "numeric", raw: "31.5", want: ptr(31.5)},
		{name: "integer", raw: "34", want: ptr(34.0)},
		{name: "whitespace trimmed", raw: " 29.2 ", want: ptr(29.2)},
		{name: "no ct sentinel", raw: "No Ct", want: nil},
		{name: "na sentinel", raw: "NA", want: nil},
		{name: "n/a sentinel", raw: "n/a", want: nil},
		{name: "none sentinel", raw: "None", want: nil},
		{name: "nan sentinel", raw: "NaN", want: nil},
		{name: "empty", raw: "", want: nil},
		{name: "unparseable text is silent nil", raw: "pending", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCTValue(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestNormalizeResult(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "lowercase positive", raw: "positive", want: "Positive"},
		{name: "uppercase negative", raw: "NEGATIVE", want: "Negative"},
		{name: "canonical re-analysis", raw: "Re-analysis", want: domain.ResultReAnalysis},
		{name: "reanalysis without hyphen", raw: "reanalysis", want: domain.ResultReAnalysis},
		{name: "shouting re-analysis", raw: "RE-ANALYSIS", want: domain.ResultReAnalysis},
		{name: "mixed case re-Analysis", raw: "re-Analysis", want: domain.ResultReAnalysis},
		{name: "unknown value retained", raw: "inconclusive", want: "Inconclusive"},
		{name: "multi word", raw: "not tested", want: "Not Tested"},
		{name: "whitespace trimmed", raw: "  positive  ", want: "Positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeResult(tt.raw))
		})
	}
}

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer(slog.Default())

	rows := [][]string{
		{"2", "2025-002", "Swine", "Abcede", "ASF", "2025.10.29", "No Ct", "negative"},
		{"", "", "", "", "", "", "", ""},
		{"1", "2025-001", "Broiler", "CJOY", "IBD", "2025.10.28", "31.5", "POSITIVE"},
		{"3", "2025-003", "Broiler", "CJOY", "IBD", "2025.10.28", "33.9", "re-analysis"},
	}

	records, err := n.Normalize(sampleHeader, rows)
	require.NoError(t, err)
	require.Len(t, records, 3, "blank rows are skipped")

	// Canonical sort: test date, then farm, then disease, then sample ID.
	assert.Equal(t, "2025-001", records[0].SampleID)
	assert.Equal(t, "2025-003", records[1].SampleID)
	assert.Equal(t, "2025-002", records[2].SampleID)

	first := records[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Broiler", first.Specie)
	assert.Equal(t, "CJOY", first.FarmName)
	assert.Equal(t, "IBD", first.Disease)
	assert.Equal(t, domain.ResultPositive, first.Result)
	assert.True(t, first.IsPositive)
	require.NotNil(t, first.CTValue)
	assert.InDelta(t, 31.5, *first.CTValue, 1e-9)

	noCt := records[2]
	assert.Equal(t, domain.ResultNegative, noCt.Result)
	assert.False(t, noCt.IsPositive)
	assert.Nil(t, noCt.CTValue)
	assert.Equal(t, "No Ct", noCt.CTValueRaw)
}

func TestNormalizer_Normalize_SchemaError(t *testing.T) {
	n := NewNormalizer(slog.Default())

	header := []string{"number", "Sample ID", "Specie", "Farm Name"}
	_, err := n.Normalize(header, nil)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.ElementsMatch(t, []string{"disease", "test_date", "ct_value", "result"}, schemaErr.Missing)
}

func TestNormalizer_Normalize_DateParseError(t *testing.T) {
	n := NewNormalizer(slog.Default())

	rows := [][]string{
		{"1", "2025-001", "Swine", "Abcede", "ASF", "2025.10.28", "No Ct", "Negative"},
		{"2", "2025-002", "Swine", "Abcede", "ASF", "garbage", "No Ct", "Negative"},
	}

	_, err := n.Normalize(sampleHeader, rows)

	var dateErr *DateParseError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, 3, dateErr.Row, "row numbers are 1-based including the header")
	assert.Equal(t, "garbage", dateErr.Value)
}

func TestNormalizer_Normalize_HeaderVariants(t *testing.T) {
	n := NewNormalizer(slog.Default())

	header := []string{" Number ", "SAMPLE ID", "specie", "farm name", "Disease", "test date", "CT value", "Result"}
	rows := [][]string{
		{"1", "2025-001", "Swine", "Abcede", "ASF", "2025.10.28", "No Ct", "Negative"},
	}

	records, err := n.Normalize(header, rows)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Abcede", records[0].FarmName)
}

func ptr(f float64) *float64 { return &f }
