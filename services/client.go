package services

import (
	"context"
	"net/http"
	"time"

	"github.com/uxrlabs/uxr-tracker-backend/errs"
	"github.com/uxrlabs/uxr-tracker-backend/models"
)

// ExternalProject is the normalized shape of a project record coming
// from any research platform.
type ExternalProject struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// ResearchClient is the capability set every platform client offers.
// ListProjects and GetProject propagate failures; GetMetrics and
// GetParticipantCount degrade to empty results so a metrics outage does
// not block importing project metadata.
type ResearchClient interface {
	ListProjects(ctx context.Context) ([]ExternalProject, error)
	GetProject(ctx context.Context, id string) (*ExternalProject, error)
	GetMetrics(ctx context.Context, id string) map[string]any
	GetParticipantCount(ctx context.Context, id string) int
}

// defaultHTTPClient is shared by both platform clients. A single
// attempt per call, no retry.
var defaultHTTPClient = &http.Client{Timeout: 30 * time.Second}

// NewResearchClient returns the client for a named service using the
// given bearer credential and its service-specific default base URL.
func NewResearchClient(service, token string) (ResearchClient, error) {
	switch service {
	case models.ServiceQualtrics:
		return NewQualtricsClient(token, ""), nil
	case models.ServiceGreatQuestion:
		return NewGreatQuestionClient(token, ""), nil
	default:
		return nil, errs.NewBadRequestError("unknown external service: " + service)
	}
}
