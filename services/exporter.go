package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/uxrlabs/uxr-tracker-backend/errs"
	"github.com/uxrlabs/uxr-tracker-backend/models"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatPDF  = "pdf" // legacy name; emitted as an HTML report
)

// ExportOptions selects the output format and which related sections
// appear in the output. Omitted sections produce no columns or fields.
type ExportOptions struct {
	Format         string
	IncludeTags    bool
	IncludeMetrics bool
	IncludeFiles   bool
}

// ExportResult is a ready-to-serve attachment.
type ExportResult struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Exporter renders a resolved project set into CSV, JSON, or an HTML
// report. One CSV dialect: RFC 4180 quoting, "\n" line terminator,
// header row first.
type Exporter struct {
	logger zerolog.Logger
}

func NewExporter() *Exporter {
	return &Exporter{logger: log.With().Str("service", "exporter").Logger()}
}

var exportBaseHeader = []string{
	"ID", "Title", "Description", "Status", "Source",
	"Participant Count", "Budget", "Start Date", "End Date",
	"Created By", "Created At", "Updated At",
}

// Export renders the project set. now determines the generated
// filename and the report timestamp.
func (e *Exporter) Export(projects []*models.Project, opts ExportOptions, now time.Time) (*ExportResult, error) {
	datePart := now.Format("2006-01-02")

	switch opts.Format {
	case FormatCSV:
		data, err := e.renderCSV(projects, opts)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Data:        data,
			Filename:    fmt.Sprintf("uxr-projects-%s.csv", datePart),
			ContentType: "text/csv",
		}, nil
	case FormatJSON:
		data, err := e.renderJSON(projects, opts)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Data:        data,
			Filename:    fmt.Sprintf("uxr-projects-%s.json", datePart),
			ContentType: "application/json",
		}, nil
	case FormatPDF:
		data, err := e.renderHTML(projects, opts, now)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Data:        data,
			Filename:    fmt.Sprintf("uxr-projects-%s.html", datePart),
			ContentType: "text/html",
		}, nil
	default:
		return nil, errs.NewBadRequestError("invalid export format: " + opts.Format)
	}
}

func (e *Exporter) renderCSV(projects []*models.Project, opts ExportOptions) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := append([]string{}, exportBaseHeader...)
	if opts.IncludeTags {
		header = append(header, "Tags", "Categories")
	}
	if opts.IncludeMetrics {
		header = append(header, "Metrics")
	}
	if opts.IncludeFiles {
		header = append(header, "Files Count", "Files")
	}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, p := range projects {
		row := []string{
			p.ID.String(),
			p.Title,
			stringOrEmpty(p.Description),
			p.Status,
			p.Source,
			strconv.Itoa(intOrZero(p.ParticipantCount)),
			formatBudget(p.Budget),
			formatDate(p.StartDate),
			formatDate(p.EndDate),
			p.CreatedBy.Name,
			p.CreatedAt.Format("2006-01-02"),
			p.UpdatedAt.Format("2006-01-02"),
		}
		if opts.IncludeTags {
			row = append(row, joinStrings(tagNames(p)), joinStrings(categoryNames(p)))
		}
		if opts.IncludeMetrics {
			row = append(row, joinStrings(metricPairs(p)))
		}
		if opts.IncludeFiles {
			names := fileNames(p)
			row = append(row, strconv.Itoa(len(names)), joinStrings(names))
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderJSON emits one object per project mirroring the CSV field set,
// with tags and categories as arrays and each metric flattened into a
// top-level "metric_<key>" field.
func (e *Exporter) renderJSON(projects []*models.Project, opts ExportOptions) ([]byte, error) {
	records := make([]map[string]any, 0, len(projects))
	for _, p := range projects {
		record := map[string]any{
			"id":               p.ID.String(),
			"title":            p.Title,
			"description":      stringOrEmpty(p.Description),
			"status":           p.Status,
			"source":           p.Source,
			"participantCount": intOrZero(p.ParticipantCount),
			"budget":           floatOrZero(p.Budget),
			"startDate":        formatDate(p.StartDate),
			"endDate":          formatDate(p.EndDate),
			"createdBy":        p.CreatedBy.Name,
			"createdAt":        p.CreatedAt.Format("2006-01-02"),
			"updatedAt":        p.UpdatedAt.Format("2006-01-02"),
		}
		if opts.IncludeTags {
			record["tags"] = tagNames(p)
			record["categories"] = categoryNames(p)
		}
		if opts.IncludeMetrics {
			for _, m := range p.Metrics {
				record["metric_"+m.MetricKey] = m.Value
			}
		}
		if opts.IncludeFiles {
			record["filesCount"] = len(p.Files)
			record["files"] = fileNames(p)
		}
		records = append(records, record)
	}
	return json.MarshalIndent(records, "", "  ")
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>UXR Projects Report</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 20px; }
    table { width: 100%; border-collapse: collapse; margin-top: 20px; }
    th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
    th { background-color: #f2f2f2; }
    .header { text-align: center; margin-bottom: 30px; }
    .summary { background-color: #f9f9f9; padding: 15px; margin-bottom: 20px; }
  </style>
</head>
<body>
  <div class="header">
    <h1>UXR Projects Report</h1>
    <p>Generated on {{.GeneratedAt}}</p>
  </div>

  <div class="summary">
    <h2>Summary</h2>
    <p><strong>Total Projects:</strong> {{.Total}}</p>
    <p><strong>Active Projects:</strong> {{.Active}}</p>
    <p><strong>Completed Projects:</strong> {{.Completed}}</p>
    <p><strong>Total Participants:</strong> {{.Participants}}</p>
  </div>

  <table>
    <thead>
      <tr>
        <th>Title</th>
        <th>Status</th>
        <th>Source</th>
        <th>Participants</th>
        <th>Created</th>
        {{if .IncludeTags}}<th>Tags</th>{{end}}
      </tr>
    </thead>
    <tbody>
      {{range .Rows}}<tr>
        <td>{{.Title}}</td>
        <td>{{.Status}}</td>
        <td>{{.Source}}</td>
        <td>{{.Participants}}</td>
        <td>{{.Created}}</td>
        {{if $.IncludeTags}}<td>{{.Tags}}</td>{{end}}
      </tr>
      {{end}}
    </tbody>
  </table>
</body>
</html>
`))

type reportRow struct {
	Title        string
	Status       string
	Source       string
	Participants int
	Created      string
	Tags         string
}

type reportData struct {
	GeneratedAt  string
	Total        int
	Active       int
	Completed    int
	Participants int
	IncludeTags  bool
	Rows         []reportRow
}

func (e *Exporter) renderHTML(projects []*models.Project, opts ExportOptions, now time.Time) ([]byte, error) {
	data := reportData{
		GeneratedAt: now.Format("January 2, 2006"),
		Total:       len(projects),
		IncludeTags: opts.IncludeTags,
	}
	for _, p := range projects {
		switch p.Status {
		case models.StatusActive:
			data.Active++
		case models.StatusCompleted:
			data.Completed++
		}
		data.Participants += intOrZero(p.ParticipantCount)
		row := reportRow{
			Title:        p.Title,
			Status:       p.Status,
			Source:       p.Source,
			Participants: intOrZero(p.ParticipantCount),
			Created:      p.CreatedAt.Format("2006-01-02"),
		}
		if opts.IncludeTags {
			row.Tags = joinStrings(tagNames(p))
		}
		data.Rows = append(data.Rows, row)
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Field helpers shared across the three formats.

func tagNames(p *models.Project) []string {
	names := make([]string, 0, len(p.Tags))
	for _, pt := range p.Tags {
		names = append(names, pt.Tag.Name)
	}
	return names
}

// categoryNames deduplicates category names while preserving first-seen order.
func categoryNames(p *models.Project) []string {
	seen := make(map[string]bool)
	var names []string
	for _, pt := range p.Tags {
		name := pt.Tag.Category.Name
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func metricPairs(p *models.Project) []string {
	pairs := make([]string, 0, len(p.Metrics))
	for _, m := range p.Metrics {
		pairs = append(pairs, m.MetricKey+": "+m.Value)
	}
	return pairs
}

func fileNames(p *models.Project) []string {
	names := make([]string, 0, len(p.Files))
	for _, f := range p.Files {
		names = append(names, f.OriginalName)
	}
	return names
}

func joinStrings(values []string) string {
	return strings.Join(values, "; ")
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func formatBudget(f *float64) string {
	if f == nil {
		return "0"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
