package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/uxrlabs/uxr-tracker-backend/database"
	"github.com/uxrlabs/uxr-tracker-backend/errs"
	"github.com/uxrlabs/uxr-tracker-backend/models"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// projectRequest is the create/update payload for a project.
type projectRequest struct {
	Title            string      `json:"title"`
	Description      *string     `json:"description"`
	Status           string      `json:"status"`
	Source           string      `json:"source"`
	ExternalID       *string     `json:"externalId"`
	StartDate        *string     `json:"startDate"`
	EndDate          *string     `json:"endDate"`
	ParticipantCount *int        `json:"participantCount"`
	Budget           *float64    `json:"budget"`
	TagIDs           []uuid.UUID `json:"tagIds"`
}

// ProjectCollection represents multiple projects
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int               `json:"total"`
}

// parseFilter builds a ProjectFilter from list query parameters.
func parseFilter(r *http.Request) (database.ProjectFilter, error) {
	q := r.URL.Query()

	filter := database.ProjectFilter{
		Query:  q.Get("query"),
		Status: splitParam(q.Get("status")),
		Source: splitParam(q.Get("source")),
	}

	var err error
	if filter.Tags, err = parseUUIDList(q.Get("tags")); err != nil {
		return filter, errs.NewInvalidFieldError("tags", "must be a comma-separated list of UUIDs")
	}
	if filter.Categories, err = parseUUIDList(q.Get("categories")); err != nil {
		return filter, errs.NewInvalidFieldError("categories", "must be a comma-separated list of UUIDs")
	}
	if filter.StartDate, err = parseDateParam(q.Get("startDate")); err != nil {
		return filter, errs.NewInvalidFieldError("startDate", "must be an ISO date")
	}
	if filter.EndDate, err = parseDateParam(q.Get("endDate")); err != nil {
		return filter, errs.NewInvalidFieldError("endDate", "must be an ISO date")
	}
	return filter, nil
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseUUIDList(raw string) ([]uuid.UUID, error) {
	parts := splitParam(raw)
	if len(parts) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseDateParam accepts either a bare date or an RFC 3339 timestamp.
func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// getAllProjects retrieves projects matching the supplied filters
// @Summary List projects
// @Description Retrieves projects matching the filter query parameters, with tags, files, and metrics
// @Tags Projects
// @Accept json
// @Produce json
// @Param query query string false "Free-text search against title and description"
// @Param status query string false "Comma-separated status values"
// @Param source query string false "Comma-separated source values"
// @Param tags query string false "Comma-separated tag IDs"
// @Param categories query string false "Comma-separated category IDs"
// @Param startDate query string false "Inclusive lower createdAt bound"
// @Param endDate query string false "Inclusive upper createdAt bound"
// @Success 200 {object} ProjectCollection "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, err := h.projectRepo.FindFiltered(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Description Retrieves detailed information about a specific project by ID
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Project details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Creates a new project owned by the authenticated admin
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body projectRequest true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Router /project [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("unauthorized"))
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		project, err := projectFromRequest(req, &user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Add(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		if len(req.TagIDs) > 0 {
			if err := h.projectRepo.ReplaceTags(project.ID, req.TagIDs); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("create project tags", "project tags", err))
				return
			}
		}

		created, err := h.projectRepo.FindByID(project.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created project", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, created)
	}
}

// updateProject updates an existing project, replacing its tag set
// @Summary Update project
// @Description Updates an existing project; the tag set is replaced with the supplied tagIds
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body projectRequest true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		project, err := projectFromRequest(req, nil)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		project.ID = projectID
		project.CreatedByID = existing.CreatedByID
		project.CreatedAt = existing.CreatedAt

		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		if err := h.projectRepo.ReplaceTags(projectID, req.TagIDs); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project tags", "project tags", err))
			return
		}

		updated, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated project", "project", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Description Hard-deletes a project together with its tags, files, and metrics
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// projectFromRequest validates the payload and builds the model. owner
// is set only on create.
func projectFromRequest(req projectRequest, owner *models.User) (*models.Project, error) {
	if req.Title == "" {
		return nil, errs.NewMissingRequiredFieldError("title")
	}
	if req.Status == "" {
		req.Status = models.StatusActive
	}
	if !models.ValidStatus(req.Status) {
		return nil, errs.NewInvalidFieldError("status", "unknown status value")
	}
	if req.Source == "" {
		req.Source = models.SourceManual
	}
	if !models.ValidSource(req.Source) {
		return nil, errs.NewInvalidFieldError("source", "unknown source value")
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return nil, errs.NewInvalidFieldError("startDate", "must be an ISO date")
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, errs.NewInvalidFieldError("endDate", "must be an ISO date")
	}

	project := &models.Project{
		Title:            req.Title,
		Description:      req.Description,
		Status:           req.Status,
		Source:           req.Source,
		ExternalID:       req.ExternalID,
		StartDate:        startDate,
		EndDate:          endDate,
		ParticipantCount: req.ParticipantCount,
		Budget:           req.Budget,
	}
	if owner != nil {
		project.CreatedByID = owner.ID
	}
	return project, nil
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	return parseDateParam(*raw)
}
