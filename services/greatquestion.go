package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/uxrlabs/uxr-tracker-backend/errs"
	"github.com/uxrlabs/uxr-tracker-backend/models"
)

const greatQuestionDefaultBaseURL = "https://api.greatquestion.co"

// greatQuestionProject mirrors the Great Question v1 project record.
type greatQuestionProject struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      *string `json:"description"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
	ParticipantCount *int    `json:"participant_count"`
}

type greatQuestionListResponse struct {
	Data []greatQuestionProject `json:"data"`
}

type greatQuestionProjectResponse struct {
	Data greatQuestionProject `json:"data"`
}

type greatQuestionMetricsResponse struct {
	Data map[string]any `json:"data"`
}

type greatQuestionParticipantsResponse struct {
	Data []json.RawMessage `json:"data"`
}

// GreatQuestionClient talks to the Great Question API with a standard
// bearer credential.
type GreatQuestionClient struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewGreatQuestionClient(token, baseURL string) *GreatQuestionClient {
	if baseURL == "" {
		baseURL = greatQuestionDefaultBaseURL
	}
	return &GreatQuestionClient{
		token:      token,
		baseURL:    baseURL,
		httpClient: defaultHTTPClient,
		logger:     log.With().Str("client", "greatquestion").Logger(),
	}
}

func (c *GreatQuestionClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return errs.NewServiceRejectedError(models.ServiceGreatQuestion)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("great question returned status %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// ListProjects returns all projects visible to the token.
func (c *GreatQuestionClient) ListProjects(ctx context.Context) ([]ExternalProject, error) {
	var body greatQuestionListResponse
	if err := c.get(ctx, "/v1/projects", &body); err != nil {
		return nil, errs.NewServiceError(models.ServiceGreatQuestion, "list projects", err)
	}

	projects := make([]ExternalProject, 0, len(body.Data))
	for _, p := range body.Data {
		projects = append(projects, normalizeGreatQuestionProject(p))
	}
	return projects, nil
}

// GetProject returns one project. Failures are fatal for the caller.
func (c *GreatQuestionClient) GetProject(ctx context.Context, id string) (*ExternalProject, error) {
	var body greatQuestionProjectResponse
	if err := c.get(ctx, "/v1/projects/"+id, &body); err != nil {
		return nil, errs.NewServiceError(models.ServiceGreatQuestion, "fetch project "+id, err)
	}
	p := normalizeGreatQuestionProject(body.Data)
	return &p, nil
}

// GetMetrics returns the project's analytics mapping, degrading to an
// empty map when the call fails.
func (c *GreatQuestionClient) GetMetrics(ctx context.Context, id string) map[string]any {
	var body greatQuestionMetricsResponse
	if err := c.get(ctx, "/v1/projects/"+id+"/analytics", &body); err != nil {
		c.logger.Warn().Err(err).Str("projectId", id).Msg("analytics fetch failed, continuing without metrics")
		return map[string]any{}
	}
	if body.Data == nil {
		return map[string]any{}
	}
	return body.Data
}

// GetParticipantCount counts the project's participants, degrading to
// zero when the call fails.
func (c *GreatQuestionClient) GetParticipantCount(ctx context.Context, id string) int {
	var body greatQuestionParticipantsResponse
	if err := c.get(ctx, "/v1/projects/"+id+"/participants", &body); err != nil {
		c.logger.Warn().Err(err).Str("projectId", id).Msg("participants fetch failed, defaulting to zero")
		return 0
	}
	return len(body.Data)
}

func normalizeGreatQuestionProject(p greatQuestionProject) ExternalProject {
	out := ExternalProject{ID: p.ID, Name: p.Name, Description: p.Description}
	if p.CreatedAt != "" {
		if created, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
			out.CreatedAt = &created
		}
	}
	return out
}
