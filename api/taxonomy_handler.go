package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/uxrlabs/uxr-tracker-backend/database"
	"github.com/uxrlabs/uxr-tracker-backend/errs"
	"github.com/uxrlabs/uxr-tracker-backend/models"
)

type taxonomyHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.CategoryRepo
	tagRepo      *database.TagRepo
}

func newTaxonomyHandler(categoryRepo *database.CategoryRepo, tagRepo *database.TagRepo) taxonomyHandler {
	logger := log.With().Str("handlerName", "taxonomyHandler").Logger()

	return taxonomyHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

type categoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

type tagRequest struct {
	Name       string    `json:"name"`
	CategoryID uuid.UUID `json:"categoryId"`
}

// CategoryCollection represents multiple categories
type CategoryCollection struct {
	Categories []*models.Category `json:"categories"`
}

// TagCollection represents multiple tags
type TagCollection struct {
	Tags []*models.Tag `json:"tags"`
}

// getCategories retrieves all categories with their tags
// @Summary List categories
// @Description Retrieves all categories ordered by name, each with its tags
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Success 200 {object} CategoryCollection "List of categories"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching categories"
// @Router /categories [get]
func (h taxonomyHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find categories", "categories", err))
			return
		}

		h.responder.WriteJSON(w, CategoryCollection{Categories: categories})
	}
}

// createCategory creates a new category
// @Summary Create category
// @Description Creates a new category; names must be unique
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param category body categoryRequest true "Category data"
// @Success 201 {object} models.Category "Created category"
// @Failure 409 {object} ErrorResponse "Conflict - Category name already exists"
// @Router /category [post]
func (h taxonomyHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode category request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}
		if req.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		category := &models.Category{
			Name:        req.Name,
			Description: req.Description,
			Color:       req.Color,
		}
		if err := h.categoryRepo.Add(category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create category", "category", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, category)
	}
}

// getTags retrieves all tags with their categories
// @Summary List tags
// @Description Retrieves all tags ordered by name, each with its category
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Success 200 {object} TagCollection "List of tags"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching tags"
// @Router /tags [get]
func (h taxonomyHandler) getTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tags", "tags", err))
			return
		}

		h.responder.WriteJSON(w, TagCollection{Tags: tags})
	}
}

// createTag creates a new tag within a category
// @Summary Create tag
// @Description Creates a new tag; names must be unique and the category must exist
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param tag body tagRequest true "Tag data"
// @Success 201 {object} models.Tag "Created tag"
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown category"
// @Failure 409 {object} ErrorResponse "Conflict - Tag name already exists"
// @Router /tag [post]
func (h taxonomyHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode tag request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}
		if req.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}
		if req.CategoryID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("categoryId"))
			return
		}

		tag := &models.Tag{
			Name:       req.Name,
			CategoryID: req.CategoryID,
		}
		if err := h.tagRepo.Add(tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create tag", "tag", err))
			return
		}

		created, err := h.tagRepo.FindByID(tag.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created tag", "tag", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, created)
	}
}
