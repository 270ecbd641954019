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

type analyticsHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  *database.ProjectRepo
}

func newAnalyticsHandler(projects *database.ProjectRepo) analyticsHandler {
	logger := log.With().Str("handlerName", "analyticsHandler").Logger()

	return analyticsHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
	}
}

// getAnalytics computes dashboard aggregates for a time range
// @Summary Get analytics
// @Description Computes project trends, participant metrics, source distribution, completion rates, time-to-completion, top categories, and budget analysis for the requested window
// @Tags Analytics
// @Accept json
// @Produce json
// @Param timeRange query string false "One of 3months, 6months, 12months, all (default 6months)"
// @Success 200 {object} services.AnalyticsData "Aggregated analytics"
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown timeRange"
// @Router /analytics [get]
func (h analyticsHandler) getAnalytics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		timeRange := r.URL.Query().Get("timeRange")
		if timeRange == "" {
			timeRange = services.Range6Months
		}
		switch timeRange {
		case services.Range3Months, services.Range6Months, services.Range12Months, services.RangeAll:
		default:
			h.responder.WriteError(w, errs.NewInvalidFieldError("timeRange", "must be one of 3months, 6months, 12months, all"))
			return
		}

		now := time.Now().UTC()
		windowStart := services.WindowStart(timeRange, now)

		projects, err := h.projects.FindFiltered(database.ProjectFilter{
			StartDate: &windowStart,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		// Previous window of equal length, ending where this one starts.
		prevStart := windowStart.Add(-now.Sub(windowStart))
		prevEnd := windowStart
		prevProjects, err := h.projects.FindFiltered(database.ProjectFilter{
			StartDate: &prevStart,
			EndDate:   &prevEnd,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find previous projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, services.Aggregate(projects, prevProjects, timeRange, now))
	}
}
