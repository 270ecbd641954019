package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/uxrlabs/uxr-tracker-backend/database"
	"github.com/uxrlabs/uxr-tracker-backend/errs"
	"github.com/uxrlabs/uxr-tracker-backend/models"
	"github.com/uxrlabs/uxr-tracker-backend/services"
)

type importHandler struct {
	responder Responder
	logger    zerolog.Logger
	tokens    *database.ApiTokenRepo
	importer  *services.Importer
}

func newImportHandler(tokens *database.ApiTokenRepo, importer *services.Importer) importHandler {
	logger := log.With().Str("handlerName", "importHandler").Logger()

	return importHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tokens:    tokens,
		importer:  importer,
	}
}

type importRequest struct {
	ExternalIDs []string `json:"externalIds"`
}

// ImportResult lists the projects created or updated by an import.
type ImportResult struct {
	Imported []*models.Project `json:"imported"`
	Total    int               `json:"total"`
}

// ExternalProjectCollection represents projects listed from an external service
type ExternalProjectCollection struct {
	Projects []services.ExternalProject `json:"projects"`
}

// listExternalProjects proxies the project list of an external research service
// @Summary List external projects
// @Description Lists the projects visible to the configured token on an external research service
// @Tags Import
// @Accept json
// @Produce json
// @Param service path string true "Service name: qualtrics or greatquestion"
// @Success 200 {object} ExternalProjectCollection "Projects on the external service"
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown service or no token configured"
// @Failure 502 {object} ErrorResponse "Bad Gateway - External service error"
// @Router /external/{service}/projects [get]
func (h importHandler) listExternalProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service := chi.URLParam(r, "service")
		if !models.ValidService(service) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("service", "unknown service"))
			return
		}

		token, err := h.tokens.FindActiveByService(service)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find token", "token", err))
			return
		}
		if token == nil {
			h.responder.WriteError(w, errs.NewConfigurationError(service+" API token not configured"))
			return
		}

		client, err := services.NewResearchClient(service, token.Token)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, err := client.ListProjects(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ExternalProjectCollection{Projects: projects})
	}
}

// importProjects pulls external projects into the tracker
// @Summary Import external projects
// @Description Creates or updates tracked projects from the identified external projects, including their metrics and participant counts
// @Tags Import
// @Accept json
// @Produce json
// @Param service path string true "Service name: qualtrics or greatquestion"
// @Param body body importRequest true "External project identifiers"
// @Success 201 {object} ImportResult "Imported projects"
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown service, empty identifier list, or no token configured"
// @Router /external/{service}/import [post]
func (h importHandler) importProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("unauthorized"))
			return
		}

		service := chi.URLParam(r, "service")

		var req importRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode import request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		imported, err := h.importer.ImportProjects(r.Context(), service, req.ExternalIDs, user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Str("service", service).
			Int("requested", len(req.ExternalIDs)).
			Int("imported", len(imported)).
			Msg("Import completed")

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, ImportResult{Imported: imported, Total: len(imported)})
	}
}
