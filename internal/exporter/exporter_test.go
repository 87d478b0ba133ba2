package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmdx/pkg/contracts/domain"
)

func TestReportFilename(t *testing.T) {
	tests := []struct {
		name string
		farm string
		want string
	}{
		{name: "single word", farm: "CJOY", want: "CJOY_report.html"},
		{name: "spaces become underscores", farm: "Southern Swine Paradise", want: "Southern_Swine_Paradise_report.html"},
		{name: "unicode preserved", farm: "Veriño’s Farm", want: "Veriño’s_Farm_report.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReportFilename(tt.farm))
		})
	}
}

func sampleReport() domain.Report {
	return domain.Report{
		FarmName: "CJOY",
		Summary: domain.Summary{
			Total:        3,
			Positive:     1,
			Negative:     1,
			ReAnalysis:   1,
			PositiveRate: 100.0 / 3.0,
		},
		Pivot: domain.Pivot{
			Diseases: []string{"IBD", "Reovirus"},
			Results:  []string{"Positive", "Re-analysis"},
			Counts:   [][]int{{1, 1}, {0, 1}},
		},
		Details: []domain.DetailRow{
			{
				SampleID:   "2025-007",
				Specie:     "Broiler",
				Disease:    "IBD",
				TestDate:   time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC),
				CTValueRaw: "31.5",
				Result:     "Positive",
			},
			{
				SampleID:   "2025-011",
				Specie:     "Broiler",
				Disease:    "IBD",
				TestDate:   time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC),
				CTValueRaw: "No Ct",
				Result:     "Negative",
			},
		},
		LastTestDate: time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
	}
}

func TestFarmReportHTML(t *testing.T) {
	doc, err := FarmReportHTML(sampleReport())
	require.NoError(t, err)

	html := string(doc)

	// Self-contained document.
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "</html>")
	assert.Contains(t, html, "<style>")
	assert.NotContains(t, html, "src=\"http")

	assert.Contains(t, html, "Farm Report — CJOY")
	assert.Contains(t, html, "33.3%")
	assert.Contains(t, html, "2025-11-03")
	assert.Contains(t, html, "2025-007")
	assert.Contains(t, html, "No Ct")
	assert.Contains(t, html, "Reovirus")
	assert.Contains(t, html, Footnote)
}

func TestFarmReportHTML_EmptyReport(t *testing.T) {
	report := domain.Report{FarmName: "Abcede"}

	doc, err := FarmReportHTML(report)
	require.NoError(t, err)

	html := string(doc)
	assert.Contains(t, html, "Farm Report — Abcede")
	assert.Contains(t, html, "0.0%")
	assert.Contains(t, html, Footnote)
}

func TestDetailCSV(t *testing.T) {
	rows := sampleReport().Details

	data, err := DetailCSV(rows, true)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "BOM requested")

	lines := strings.Split(strings.TrimSpace(string(data[3:])), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Sample ID,Specie,Disease,Test Date,CT Value,Result", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "2025-007")
	assert.Contains(t, lines[1], "2025-10-30")
	assert.Contains(t, lines[2], "No Ct")
}

func TestDetailCSV_NoBOM(t *testing.T) {
	data, err := DetailCSV(nil, false)
	require.NoError(t, err)

	assert.False(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	assert.Equal(t, "Sample ID,Specie,Disease,Test Date,CT Value,Result", strings.TrimSpace(string(data)))
}
