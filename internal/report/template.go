package report

import (
	"bytes"
	"html/template"
)

var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

// Render produces the HTML document for data. User supplied text is escaped.
func Render(data Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const reportHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Skin Analysis Report {{.ReportID}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #212121; margin: 32px; }
h1 { font-size: 22px; margin: 0; }
h2 { font-size: 16px; border-bottom: 1px solid #e0e0e0; padding-bottom: 4px; margin-top: 28px; }
table { width: 100%; border-collapse: collapse; }
td, th { text-align: left; padding: 6px 8px; border-bottom: 1px solid #f0f0f0; font-size: 13px; }
.header { display: flex; justify-content: space-between; }
.meta { font-size: 12px; color: #616161; }
.badge { display: inline-block; padding: 2px 10px; border-radius: 10px; color: #fff; font-size: 12px; }
.image { max-width: 320px; max-height: 320px; border: 1px solid #e0e0e0; }
.disclaimer { font-size: 11px; color: #757575; margin-top: 32px; }
.note { font-style: italic; color: #616161; }
</style>
</head>
<body>
<div class="header">
  <h1>Skin Analysis Report</h1>
  <div class="meta">Report ID: {{.ReportID}}<br>Generated: {{.GeneratedAt}}</div>
</div>

<h2>Patient Information</h2>
<table>
  <tr><th>Name</th><td>{{.Patient.Name}}</td><th>Age</th><td>{{.Patient.Age}}</td></tr>
  <tr><th>Gender</th><td>{{.Patient.Gender}}</td><th>Contact</th><td>{{.Patient.Contact}}</td></tr>
  <tr><th>Medical Record No.</th><td colspan="3">{{.Patient.MedicalRecordNumber}}</td></tr>
</table>

<h2>Analysis Result</h2>
<table>
  <tr><th>Condition</th><td>{{.Condition}}</td></tr>
  <tr><th>Confidence</th><td>{{.Confidence}} <span class="badge" style="background-color: {{.ConfidenceColor}}">{{.ConfidenceLevel}}</span></td></tr>
  <tr><th>Analysis Date</th><td>{{.AnalysisDate}}</td></tr>
</table>
{{if .ImageURL}}<p><img class="image" src="{{.ImageURL}}" alt="Analyzed image"></p>{{end}}
{{if .Probabilities}}
<table>
  <tr><th>Condition</th><th>Probability</th></tr>
  {{range .Probabilities}}<tr><td>{{.Condition}}</td><td>{{.Percent}}</td></tr>
  {{end}}
</table>
{{end}}

<h2>Recommended Treatments</h2>
<table>
  {{range .Treatments}}<tr><td>{{.}}</td></tr>
  {{end}}
</table>

<h2>Prevention Tips</h2>
<ul>
  {{range .Prevention}}<li>{{.}}</li>
  {{end}}
</ul>

<h2>Dermatologist Review</h2>
{{if .Review.Reviewed}}
<p>{{.Review.Comment}}</p>
<p class="meta">Reviewed by {{.Review.Reviewer}}{{if .Review.ReviewedAt}} on {{.Review.ReviewedAt}}{{end}}</p>
{{else}}
<p>{{.Review.Message}}</p>
{{if .Review.Note}}<p class="note">{{.Review.Note}}</p>{{end}}
{{end}}

<h2>Resources</h2>
<ul>
  {{range .Resources}}<li><a href="{{.URL}}">{{.Title}}</a></li>
  {{end}}
</ul>

<p class="disclaimer">This report is generated for informational purposes only and does not constitute a medical diagnosis. Always seek the advice of a qualified dermatologist regarding any skin condition.</p>
</body>
</html>
`
