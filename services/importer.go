package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/uxrlabs/uxr-tracker-backend/errs"
	"github.com/uxrlabs/uxr-tracker-backend/models"
)

// ProjectStore is the slice of project persistence the importer needs.
// *database.ProjectRepo satisfies it.
type ProjectStore interface {
	FindBySourceAndExternalID(source, externalID string) (*models.Project, error)
	FindByID(id uuid.UUID) (*models.Project, error)
	Add(project *models.Project) error
	Update(project *models.Project) error
}

// MetricStore replaces a project's metric set atomically.
// *database.ProjectMetricRepo satisfies it.
type MetricStore interface {
	ReplaceForProject(projectID uuid.UUID, metrics map[string]string) error
}

// TokenStore resolves the active credential for an external service.
// *database.ApiTokenRepo satisfies it.
type TokenStore interface {
	FindActiveByService(service string) (*models.ApiToken, error)
}

// ClientFactory builds a platform client for a service/token pair.
type ClientFactory func(service, token string) (ResearchClient, error)

// Importer reconciles external platform records into local projects:
// one upsert per external identifier, metric set replaced wholesale.
type Importer struct {
	projects      ProjectStore
	metrics       MetricStore
	tokens        TokenStore
	clientFactory ClientFactory
	logger        zerolog.Logger
}

func NewImporter(projects ProjectStore, metrics MetricStore, tokens TokenStore) *Importer {
	return &Importer{
		projects:      projects,
		metrics:       metrics,
		tokens:        tokens,
		clientFactory: NewResearchClient,
		logger:        log.With().Str("service", "importer").Logger(),
	}
}

// WithClientFactory overrides how platform clients are constructed.
func (i *Importer) WithClientFactory(factory ClientFactory) *Importer {
	i.clientFactory = factory
	return i
}

// ImportProjects fetches each external identifier from the named
// service and creates or updates the matching local project. A missing
// or inactive token aborts the whole batch before any network call.
// Individual identifier failures are logged and skipped; the returned
// slice holds only the projects that imported successfully, fully
// loaded with relations.
func (i *Importer) ImportProjects(ctx context.Context, service string, externalIDs []string, requestedBy models.User) ([]*models.Project, error) {
	if !models.ValidService(service) {
		return nil, errs.NewBadRequestError("unknown external service: " + service)
	}
	if len(externalIDs) == 0 {
		return nil, errs.NewBadRequestError("external IDs are required")
	}

	token, err := i.tokens.FindActiveByService(service)
	if err != nil {
		return nil, errs.NewDatabaseError("find token", "api token", err)
	}
	if token == nil {
		return nil, errs.NewConfigurationError(service + " API token not configured")
	}

	client, err := i.clientFactory(service, token.Token)
	if err != nil {
		return nil, err
	}

	imported := make([]*models.Project, 0, len(externalIDs))
	for _, externalID := range externalIDs {
		project, err := i.importOne(ctx, client, service, externalID, requestedBy)
		if err != nil {
			i.logger.Error().Err(err).
				Str("service", service).
				Str("externalId", externalID).
				Msg("import failed for identifier, continuing with the rest")
			continue
		}
		imported = append(imported, project)
	}

	return imported, nil
}

// importOne reconciles a single external identifier. The detail,
// metric, and participant-count fetches run concurrently; only the
// detail fetch can fail (the others degrade inside the client).
func (i *Importer) importOne(ctx context.Context, client ResearchClient, service, externalID string, requestedBy models.User) (*models.Project, error) {
	var (
		detail           *ExternalProject
		metrics          map[string]any
		participantCount int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail, err = client.GetProject(gctx, externalID)
		return err
	})
	g.Go(func() error {
		metrics = client.GetMetrics(gctx, externalID)
		return nil
	})
	g.Go(func() error {
		participantCount = client.GetParticipantCount(gctx, externalID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metricSet := stringifyMetrics(metrics)

	existing, err := i.projects.FindBySourceAndExternalID(service, externalID)
	if err != nil {
		return nil, errs.NewDatabaseError("find project", "project", err)
	}

	var projectID uuid.UUID
	if existing != nil {
		existing.Title = detail.Name
		if detail.Description != nil {
			existing.Description = detail.Description
		}
		existing.ParticipantCount = &participantCount
		if err := i.projects.Update(existing); err != nil {
			return nil, errs.NewDatabaseError("update project", "project", err)
		}
		projectID = existing.ID
	} else {
		extID := externalID
		project := models.Project{
			Title:            detail.Name,
			Description:      detail.Description,
			Status:           models.StatusActive,
			Source:           service,
			ExternalID:       &extID,
			StartDate:        detail.CreatedAt,
			ParticipantCount: &participantCount,
			CreatedByID:      requestedBy.ID,
		}
		if err := i.projects.Add(&project); err != nil {
			return nil, errs.NewDatabaseError("create project", "project", err)
		}
		projectID = project.ID
	}

	if err := i.metrics.ReplaceForProject(projectID, metricSet); err != nil {
		return nil, errs.NewDatabaseError("replace metrics", "project metrics", err)
	}

	reloaded, err := i.projects.FindByID(projectID)
	if err != nil {
		return nil, errs.NewDatabaseError("reload project", "project", err)
	}
	if reloaded == nil {
		return nil, errs.NewNotFoundError("project not found after import")
	}
	return reloaded, nil
}

// stringifyMetrics flattens an external metric mapping into the string
// key/value pairs the metric table stores.
func stringifyMetrics(metrics map[string]any) map[string]string {
	out := make(map[string]string, len(metrics))
	for key, value := range metrics {
		out[key] = fmt.Sprintf("%v", value)
	}
	return out
}
