package exporter

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"farmdx/pkg/contracts/domain"
)

// Footnote printed at the bottom of every farm report. The CT thresholds
// are guidance only; classification always comes from the result field.
const Footnote = "Note: CT≲30 strong positive, 33–36 borderline (re-test). 'No Ct' recorded as negative."

const dateLayout = "2006-01-02"

// ReportFilename returns the download filename for a farm report: the
// farm name with spaces replaced by underscores, suffixed "_report.html".
func ReportFilename(farm string) string {
	return strings.ReplaceAll(farm, " ", "_") + "_report.html"
}

var reportTemplate = template.Must(template.New("farm_report").Funcs(template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(dateLayout)
	},
	"rate": func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8"/>
  <title>Farm Report — {{.FarmName}}</title>
  <style>
    body { font-family: system-ui, 'Segoe UI', Roboto, Arial, sans-serif; margin: 24px; color: #111; }
    .hdr { margin-bottom: 12px; }
    .title { font-size: 22px; font-weight: 800; }
    .sub { color: #666; }
    .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 16px; margin: 10px 0 16px; }
    .card { border: 1px solid #eaeaea; border-radius: 12px; padding: 12px; }
    table.tbl { border-collapse: collapse; width: 100%; font-size: 13px; }
    table.tbl th, table.tbl td { border: 1px solid #ececec; padding: 8px 10px; text-align: center; }
    table.tbl th { background: #f7f7f7; }
    .foot { margin-top: 16px; color: #888; font-size: 12px; }
  </style>
</head>
<body>
  <div class="hdr">
    <div class="title">Farm Report — {{.FarmName}}</div>
    <div class="sub">Summary of diagnostics results</div>
  </div>
  <div class="grid">
    <div class="card">
      <b>Key Metrics</b>
      <table class="tbl" style="margin-top:8px;">
        <tr><td>Total Tests</td><td>{{.Summary.Total}}</td></tr>
        <tr><td>Positive</td><td>{{.Summary.Positive}}</td></tr>
        <tr><td>Negative</td><td>{{.Summary.Negative}}</td></tr>
        <tr><td>Re-analysis</td><td>{{.Summary.ReAnalysis}}</td></tr>
        <tr><td>Positive Rate</td><td>{{rate .Summary.PositiveRate}}</td></tr>
        <tr><td>Last Test Date</td><td>{{date .LastTestDate}}</td></tr>
      </table>
    </div>
    <div class="card">
      <b>By Disease</b>
      <table class="tbl" style="margin-top:8px;">
        <tr><th>Disease</th>{{range .Pivot.Results}}<th>{{.}}</th>{{end}}</tr>
        {{range $i, $d := .Pivot.Diseases}}<tr><td>{{$d}}</td>{{range index $.Pivot.Counts $i}}<td>{{.}}</td>{{end}}</tr>
        {{end}}
      </table>
    </div>
  </div>
  <div class="card">
    <b>Details</b>
    <table class="tbl" style="margin-top:8px;">
      <tr><th>Sample ID</th><th>Specie</th><th>Disease</th><th>Test Date</th><th>CT Value</th><th>Result</th></tr>
      {{range .Details}}<tr><td>{{.SampleID}}</td><td>{{.Specie}}</td><td>{{.Disease}}</td><td>{{date .TestDate}}</td><td>{{.CTValueRaw}}</td><td>{{.Result}}</td></tr>
      {{end}}
    </table>
  </div>
  <div class="foot">{{.Footnote}}</div>
</body>
</html>
`))

type reportView struct {
	domain.Report
	Footnote string
}

// FarmReportHTML renders a report as a self-contained HTML document,
// independently openable and printable.
func FarmReportHTML(report domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	view := reportView{Report: report, Footnote: Footnote}
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render farm report: %w", err)
	}
	return buf.Bytes(), nil
}
