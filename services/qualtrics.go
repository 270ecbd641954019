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

const qualtricsDefaultBaseURL = "https://survey-platform.qualtrics.com"

// qualtricsSurvey mirrors the survey element of the Qualtrics v3 API.
type qualtricsSurvey struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	OwnerID      string `json:"ownerId"`
	IsActive     bool   `json:"isActive"`
	CreationDate string `json:"creationDate"`
	LastModified string `json:"lastModified"`
}

type qualtricsListResponse struct {
	Result struct {
		Elements []qualtricsSurvey `json:"elements"`
		NextPage *string           `json:"nextPage"`
	} `json:"result"`
}

type qualtricsSurveyResponse struct {
	Result qualtricsSurvey `json:"result"`
}

type qualtricsMetricsResponse struct {
	Result map[string]any `json:"result"`
}

type qualtricsCountResponse struct {
	Result struct {
		Auditable int `json:"auditable"`
		Generated int `json:"generated"`
		Deleted   int `json:"deleted"`
	} `json:"result"`
}

// QualtricsClient talks to the Qualtrics survey API with an X-API-TOKEN
// credential.
type QualtricsClient struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewQualtricsClient(token, baseURL string) *QualtricsClient {
	if baseURL == "" {
		baseURL = qualtricsDefaultBaseURL
	}
	return &QualtricsClient{
		token:      token,
		baseURL:    baseURL,
		httpClient: defaultHTTPClient,
		logger:     log.With().Str("client", "qualtrics").Logger(),
	}
}

func (c *QualtricsClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-TOKEN", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return errs.NewServiceRejectedError(models.ServiceQualtrics)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("qualtrics returned status %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// ListProjects returns all surveys visible to the token.
func (c *QualtricsClient) ListProjects(ctx context.Context) ([]ExternalProject, error) {
	var body qualtricsListResponse
	if err := c.get(ctx, "/API/v3/surveys", &body); err != nil {
		return nil, errs.NewServiceError(models.ServiceQualtrics, "list surveys", err)
	}

	projects := make([]ExternalProject, 0, len(body.Result.Elements))
	for _, s := range body.Result.Elements {
		projects = append(projects, normalizeQualtricsSurvey(s))
	}
	return projects, nil
}

// GetProject returns one survey. Failures are fatal for the caller.
func (c *QualtricsClient) GetProject(ctx context.Context, id string) (*ExternalProject, error) {
	var body qualtricsSurveyResponse
	if err := c.get(ctx, "/API/v3/surveys/"+id, &body); err != nil {
		return nil, errs.NewServiceError(models.ServiceQualtrics, "fetch survey "+id, err)
	}
	p := normalizeQualtricsSurvey(body.Result)
	return &p, nil
}

// GetMetrics returns the survey's metric mapping, degrading to an
// empty map when the call fails.
func (c *QualtricsClient) GetMetrics(ctx context.Context, id string) map[string]any {
	var body qualtricsMetricsResponse
	if err := c.get(ctx, "/API/v3/surveys/"+id+"/metrics", &body); err != nil {
		c.logger.Warn().Err(err).Str("surveyId", id).Msg("metrics fetch failed, continuing without metrics")
		return map[string]any{}
	}
	if body.Result == nil {
		return map[string]any{}
	}
	return body.Result
}

// GetParticipantCount returns the auditable response count, degrading
// to zero when the call fails.
func (c *QualtricsClient) GetParticipantCount(ctx context.Context, id string) int {
	var body qualtricsCountResponse
	if err := c.get(ctx, "/API/v3/surveys/"+id+"/response-counts", &body); err != nil {
		c.logger.Warn().Err(err).Str("surveyId", id).Msg("response count fetch failed, defaulting to zero")
		return 0
	}
	return body.Result.Auditable
}

func normalizeQualtricsSurvey(s qualtricsSurvey) ExternalProject {
	p := ExternalProject{ID: s.ID, Name: s.Name}
	if s.CreationDate != "" {
		if created, err := time.Parse(time.RFC3339, s.CreationDate); err == nil {
			p.CreatedAt = &created
		}
	}
	return p
}
