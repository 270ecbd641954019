package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/uxrlabs/uxr-tracker-backend/database"
	"github.com/uxrlabs/uxr-tracker-backend/errs"
	"github.com/uxrlabs/uxr-tracker-backend/services"
)

type exportHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  *database.ProjectRepo
	exporter  *services.Exporter
}

func newExportHandler(projects *database.ProjectRepo, exporter *services.Exporter) exportHandler {
	logger := log.With().Str("handlerName", "exportHandler").Logger()

	return exportHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		exporter:  exporter,
	}
}

// exportProjects renders the selected projects as a downloadable file
// @Summary Export projects
// @Description Renders projects matching the selection as CSV, JSON, or an HTML report and serves it as an attachment
// @Tags Export
// @Accept json
// @Produce text/csv
// @Param format query string true "Export format: csv, json, or pdf"
// @Param includeTags query bool false "Include tag and category columns"
// @Param includeMetrics query bool false "Include metric columns"
// @Param includeFiles query bool false "Include file columns"
// @Param projectIds query string false "Comma-separated project IDs; omitted means all matching"
// @Param startDate query string false "Inclusive lower createdAt bound"
// @Param endDate query string false "Inclusive upper createdAt bound"
// @Success 200 {string} string "Exported file"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid format or parameters"
// @Router /export [get]
func (h exportHandler) exportProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		opts := services.ExportOptions{
			Format:         q.Get("format"),
			IncludeTags:    q.Get("includeTags") == "true",
			IncludeMetrics: q.Get("includeMetrics") == "true",
			IncludeFiles:   q.Get("includeFiles") == "true",
		}
		if opts.Format == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("format"))
			return
		}

		var filter database.ProjectFilter
		var err error
		if filter.IDs, err = parseUUIDList(q.Get("projectIds")); err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("projectIds", "must be a comma-separated list of UUIDs"))
			return
		}
		if filter.StartDate, err = parseDateParam(q.Get("startDate")); err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("startDate", "must be an ISO date"))
			return
		}
		if filter.EndDate, err = parseDateParam(q.Get("endDate")); err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("endDate", "must be an ISO date"))
			return
		}

		projects, err := h.projects.FindFiltered(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		result, err := h.exporter.Export(projects, opts, time.Now().UTC())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Str("format", opts.Format).
			Int("projectCount", len(projects)).
			Msg("Export generated")
		h.responder.WriteAttachment(w, result.Data, result.Filename, result.ContentType)
	}
}
