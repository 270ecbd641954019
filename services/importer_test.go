package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/uxrlabs/uxr-tracker-backend/models"
)

type fakeProjectStore struct {
	projects map[uuid.UUID]*models.Project
	byExtID  map[string]uuid.UUID
	adds     int
	updates  int
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{
		projects: map[uuid.UUID]*models.Project{},
		byExtID:  map[string]uuid.UUID{},
	}
}

func (s *fakeProjectStore) FindBySourceAndExternalID(source, externalID string) (*models.Project, error) {
	id, ok := s.byExtID[source+"/"+externalID]
	if !ok {
		return nil, nil
	}
	return s.projects[id], nil
}

func (s *fakeProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	return s.projects[id], nil
}

func (s *fakeProjectStore) Add(project *models.Project) error {
	s.adds++
	project.ID = uuid.New()
	s.projects[project.ID] = project
	if project.ExternalID != nil {
		s.byExtID[project.Source+"/"+*project.ExternalID] = project.ID
	}
	return nil
}

func (s *fakeProjectStore) Update(project *models.Project) error {
	s.updates++
	s.projects[project.ID] = project
	return nil
}

type fakeMetricStore struct {
	replaced map[uuid.UUID]map[string]string
}

func newFakeMetricStore() *fakeMetricStore {
	return &fakeMetricStore{replaced: map[uuid.UUID]map[string]string{}}
}

func (s *fakeMetricStore) ReplaceForProject(projectID uuid.UUID, metrics map[string]string) error {
	s.replaced[projectID] = metrics
	return nil
}

type fakeTokenStore struct {
	token *models.ApiToken
}

func (s *fakeTokenStore) FindActiveByService(string) (*models.ApiToken, error) {
	return s.token, nil
}

type fakeClient struct {
	projects map[string]*ExternalProject
	metrics  map[string]any
	count    int
	failIDs  map[string]bool
}

func (c *fakeClient) ListProjects(context.Context) ([]ExternalProject, error) {
	out := make([]ExternalProject, 0, len(c.projects))
	for _, p := range c.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (c *fakeClient) GetProject(_ context.Context, id string) (*ExternalProject, error) {
	if c.failIDs[id] {
		return nil, errors.New("upstream failure")
	}
	p, ok := c.projects[id]
	if !ok {
		return nil, errors.New("not found upstream")
	}
	return p, nil
}

func (c *fakeClient) GetMetrics(context.Context, string) map[string]any {
	return c.metrics
}

func (c *fakeClient) GetParticipantCount(context.Context, string) int {
	return c.count
}

func testImporter(projects *fakeProjectStore, metrics *fakeMetricStore, client *fakeClient) *Importer {
	tokens := &fakeTokenStore{token: &models.ApiToken{
		Service:  models.ServiceQualtrics,
		Token:    "tok-1234",
		IsActive: true,
	}}
	return NewImporter(projects, metrics, tokens).WithClientFactory(
		func(string, string) (ResearchClient, error) { return client, nil },
	)
}

func TestImporter_CreatesProject(t *testing.T) {
	projects := newFakeProjectStore()
	metrics := newFakeMetricStore()
	desc := "NPS wave 3"
	client := &fakeClient{
		projects: map[string]*ExternalProject{
			"SV_1": {ID: "SV_1", Name: "NPS survey", Description: &desc},
		},
		metrics: map[string]any{"responseRate": 0.82, "sent": 500},
		count:   120,
	}
	admin := models.User{ID: uuid.New(), Role: models.RoleAdmin}

	imported, err := testImporter(projects, metrics, client).
		ImportProjects(context.Background(), models.ServiceQualtrics, []string{"SV_1"}, admin)
	if err != nil {
		t.Fatalf("ImportProjects failed: %v", err)
	}
	if len(imported) != 1 {
		t.Fatalf("expected 1 imported project, got %d", len(imported))
	}

	p := imported[0]
	if p.Title != "NPS survey" || p.Source != models.ServiceQualtrics {
		t.Errorf("unexpected project: %+v", p)
	}
	if p.ExternalID == nil || *p.ExternalID != "SV_1" {
		t.Errorf("external ID not recorded: %v", p.ExternalID)
	}
	if p.ParticipantCount == nil || *p.ParticipantCount != 120 {
		t.Errorf("participant count not recorded: %v", p.ParticipantCount)
	}
	if p.CreatedByID != admin.ID {
		t.Errorf("project should be owned by the requesting user")
	}

	stored := metrics.replaced[p.ID]
	if stored["responseRate"] != "0.82" || stored["sent"] != "500" {
		t.Errorf("metrics not stringified: %v", stored)
	}
}

func TestImporter_ReimportUpdatesInPlace(t *testing.T) {
	projects := newFakeProjectStore()
	metrics := newFakeMetricStore()
	client := &fakeClient{
		projects: map[string]*ExternalProject{
			"SV_1": {ID: "SV_1", Name: "NPS survey"},
		},
		metrics: map[string]any{"responseRate": 0.82},
		count:   120,
	}
	importer := testImporter(projects, metrics, client)
	admin := models.User{ID: uuid.New()}

	first, err := importer.ImportProjects(context.Background(), models.ServiceQualtrics, []string{"SV_1"}, admin)
	if err != nil {
		t.Fatalf("first import failed: %v", err)
	}

	client.projects["SV_1"].Name = "NPS survey (renamed)"
	client.count = 150

	second, err := importer.ImportProjects(context.Background(), models.ServiceQualtrics, []string{"SV_1"}, admin)
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}

	if projects.adds != 1 || projects.updates != 1 {
		t.Errorf("expected one create and one update, got %d/%d", projects.adds, projects.updates)
	}
	if second[0].ID != first[0].ID {
		t.Error("re-import must not create a second project for the same identifier")
	}
	if second[0].Title != "NPS survey (renamed)" {
		t.Errorf("title not refreshed: %s", second[0].Title)
	}
	if *second[0].ParticipantCount != 150 {
		t.Errorf("participant count not refreshed: %d", *second[0].ParticipantCount)
	}
}

func TestImporter_MissingTokenAbortsBatch(t *testing.T) {
	importer := NewImporter(newFakeProjectStore(), newFakeMetricStore(), &fakeTokenStore{}).
		WithClientFactory(func(string, string) (ResearchClient, error) {
			t.Fatal("no client should be built without a token")
			return nil, nil
		})

	_, err := importer.ImportProjects(context.Background(), models.ServiceQualtrics, []string{"SV_1"}, models.User{})
	if err == nil {
		t.Fatal("expected error when no token is configured")
	}
}

func TestImporter_FailedIdentifierIsSkipped(t *testing.T) {
	projects := newFakeProjectStore()
	metrics := newFakeMetricStore()
	client := &fakeClient{
		projects: map[string]*ExternalProject{
			"SV_1": {ID: "SV_1", Name: "Works"},
			"SV_2": {ID: "SV_2", Name: "Broken"},
		},
		metrics: map[string]any{},
		failIDs: map[string]bool{"SV_2": true},
	}

	imported, err := testImporter(projects, metrics, client).
		ImportProjects(context.Background(), models.ServiceQualtrics, []string{"SV_1", "SV_2"}, models.User{})
	if err != nil {
		t.Fatalf("batch should not fail on one bad identifier: %v", err)
	}
	if len(imported) != 1 || imported[0].Title != "Works" {
		t.Errorf("expected only the working identifier, got %v", imported)
	}
}

func TestImporter_RejectsInvalidInput(t *testing.T) {
	importer := testImporter(newFakeProjectStore(), newFakeMetricStore(), &fakeClient{})

	if _, err := importer.ImportProjects(context.Background(), "surveymonkey", []string{"x"}, models.User{}); err == nil {
		t.Error("expected error for unknown service")
	}
	if _, err := importer.ImportProjects(context.Background(), models.ServiceQualtrics, nil, models.User{}); err == nil {
		t.Error("expected error for empty identifier list")
	}
}
