package services

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/uxrlabs/uxr-tracker-backend/models"
)

func sampleProjects() []*models.Project {
	desc := "Moderated usability sessions"
	participants := 12
	budget := 4500.0
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)

	usability := models.Tag{
		Name:     "Usability Testing",
		Category: models.Category{Name: "Research Type"},
	}
	mobile := models.Tag{
		Name:     "Mobile",
		Category: models.Category{Name: "Platform"},
	}

	return []*models.Project{
		{
			ID:               uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			Title:            "Checkout usability study",
			Description:      &desc,
			Status:           models.StatusCompleted,
			Source:           models.SourceManual,
			ParticipantCount: &participants,
			Budget:           &budget,
			StartDate:        &start,
			EndDate:          &end,
			CreatedBy:        models.User{Name: "UXR Admin"},
			CreatedAt:        start,
			UpdatedAt:        end,
			Tags: []models.ProjectTag{
				{Tag: usability},
				{Tag: mobile},
			},
			Metrics: []models.ProjectMetric{
				{MetricKey: "responseRate", Value: "0.82"},
			},
			Files: []models.ProjectFile{
				{OriginalName: "notes.pdf"},
			},
		},
		{
			ID:        uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			Title:     "Pricing survey",
			Status:    models.StatusActive,
			Source:    models.SourceQualtrics,
			CreatedBy: models.User{Name: "UXR Admin"},
			CreatedAt: start,
			UpdatedAt: start,
		},
	}
}

func TestExporter_CSVBaseColumns(t *testing.T) {
	exporter := NewExporter()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	result, err := exporter.Export(sampleProjects(), ExportOptions{Format: FormatCSV}, now)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if result.Filename != "uxr-projects-2025-03-01.csv" {
		t.Errorf("unexpected filename: %s", result.Filename)
	}
	if result.ContentType != "text/csv" {
		t.Errorf("unexpected content type: %s", result.ContentType)
	}

	rows, err := csv.NewReader(strings.NewReader(string(result.Data))).ReadAll()
	if err != nil {
		t.Fatalf("CSV parse failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if len(rows[0]) != 12 {
		t.Errorf("expected 12 base columns, got %d: %v", len(rows[0]), rows[0])
	}
	if rows[0][0] != "ID" || rows[0][11] != "Updated At" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Checkout usability study" {
		t.Errorf("unexpected title cell: %s", rows[1][1])
	}
	// Missing optional fields render as zero values, not blanks.
	if rows[2][5] != "0" {
		t.Errorf("missing participant count should render as 0, got %q", rows[2][5])
	}
	if rows[2][7] != "" {
		t.Errorf("missing start date should render empty, got %q", rows[2][7])
	}
}

func TestExporter_CSVOptionalColumns(t *testing.T) {
	exporter := NewExporter()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	result, err := exporter.Export(sampleProjects(), ExportOptions{
		Format:         FormatCSV,
		IncludeTags:    true,
		IncludeMetrics: true,
		IncludeFiles:   true,
	}, now)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(string(result.Data))).ReadAll()
	if err != nil {
		t.Fatalf("CSV parse failed: %v", err)
	}
	header := rows[0]
	want := []string{"Tags", "Categories", "Metrics", "Files Count", "Files"}
	if len(header) != 12+len(want) {
		t.Fatalf("expected %d columns, got %d: %v", 12+len(want), len(header), header)
	}
	for i, col := range want {
		if header[12+i] != col {
			t.Errorf("column %d: expected %q, got %q", 12+i, col, header[12+i])
		}
	}

	if rows[1][12] != "Usability Testing; Mobile" {
		t.Errorf("unexpected tags cell: %q", rows[1][12])
	}
	if rows[1][13] != "Research Type; Platform" {
		t.Errorf("unexpected categories cell: %q", rows[1][13])
	}
	if rows[1][14] != "responseRate: 0.82" {
		t.Errorf("unexpected metrics cell: %q", rows[1][14])
	}
	if rows[1][15] != "1" || rows[1][16] != "notes.pdf" {
		t.Errorf("unexpected files cells: %q %q", rows[1][15], rows[1][16])
	}
}

func TestExporter_JSONFlattensMetrics(t *testing.T) {
	exporter := NewExporter()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	result, err := exporter.Export(sampleProjects(), ExportOptions{
		Format:         FormatJSON,
		IncludeTags:    true,
		IncludeMetrics: true,
	}, now)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if result.ContentType != "application/json" {
		t.Errorf("unexpected content type: %s", result.ContentType)
	}

	var records []map[string]any
	if err := json.Unmarshal(result.Data, &records); err != nil {
		t.Fatalf("JSON parse failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["metric_responseRate"] != "0.82" {
		t.Errorf("expected flattened metric field, got %v", records[0]["metric_responseRate"])
	}
	tags, ok := records[0]["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Errorf("expected 2 tags, got %v", records[0]["tags"])
	}
	if _, present := records[0]["filesCount"]; present {
		t.Error("filesCount should be omitted when files are excluded")
	}
}

func TestExporter_PDFFormatEmitsHTMLReport(t *testing.T) {
	exporter := NewExporter()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	result, err := exporter.Export(sampleProjects(), ExportOptions{Format: FormatPDF, IncludeTags: true}, now)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if result.Filename != "uxr-projects-2025-03-01.html" {
		t.Errorf("unexpected filename: %s", result.Filename)
	}
	if result.ContentType != "text/html" {
		t.Errorf("unexpected content type: %s", result.ContentType)
	}

	html := string(result.Data)
	if !strings.Contains(html, "<strong>Total Projects:</strong> 2") {
		t.Error("report should contain the total project count")
	}
	if !strings.Contains(html, "<strong>Active Projects:</strong> 1") ||
		!strings.Contains(html, "<strong>Completed Projects:</strong> 1") {
		t.Error("report should break out active and completed counts")
	}
	if !strings.Contains(html, "Checkout usability study") {
		t.Error("report should list project titles")
	}
	if !strings.Contains(html, "<th>Tags</th>") {
		t.Error("report should include the tags column when requested")
	}
}

func TestExporter_UnknownFormat(t *testing.T) {
	exporter := NewExporter()
	if _, err := exporter.Export(nil, ExportOptions{Format: "xlsx"}, time.Now()); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
