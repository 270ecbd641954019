package api

import (
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/uxrlabs/uxr-tracker-backend/database"
	"github.com/uxrlabs/uxr-tracker-backend/errs"
	"github.com/uxrlabs/uxr-tracker-backend/models"
	"github.com/uxrlabs/uxr-tracker-backend/services"
)

// maxUploadSize caps a single uploaded file at 10 MB.
const maxUploadSize = 10 << 20

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  *database.ProjectRepo
	files     *database.ProjectFileRepo
	store     services.FileStore
}

func newUploadHandler(projects *database.ProjectRepo, files *database.ProjectFileRepo, store services.FileStore) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		files:     files,
		store:     store,
	}
}

// uploadFile attaches an uploaded file to a project
// @Summary Upload project file
// @Description Accepts a multipart form with a "file" part and a "projectId" field, stores the file, and records its metadata
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload (max 10 MB)"
// @Param projectId formData string true "Project ID" format(uuid)
// @Success 201 {object} models.ProjectFile "Stored file metadata"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing file or invalid projectId"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 413 {object} ErrorResponse "Payload Too Large - File exceeds 10 MB"
// @Router /upload [post]
func (h uploadHandler) uploadFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxUploadSize))
			return
		}

		projectID, err := uuid.Parse(r.FormValue("projectId"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("projectId", "must be a UUID"))
			return
		}

		project, err := h.projects.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		part, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer part.Close()

		data, err := io.ReadAll(part)
		if err != nil {
			h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxUploadSize))
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}

		storedName := uuid.New().String() + filepath.Ext(header.Filename)
		url, err := h.store.Save(r.Context(), storedName, mimeType, data)
		if err != nil {
			h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to store uploaded file")
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to store file", err))
			return
		}

		file := &models.ProjectFile{
			ProjectID:    projectID,
			Filename:     storedName,
			OriginalName: header.Filename,
			MimeType:     mimeType,
			Size:         int64(len(data)),
			URL:          url,
			UploadedAt:   time.Now().UTC(),
		}
		if err := h.files.Add(file); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project file", "project file", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, file)
	}
}

// getProjectFiles lists the files attached to a project
// @Summary List project files
// @Description Retrieves metadata for all files uploaded against a project
// @Tags Files
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} []models.ProjectFile "List of files"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Router /project/{projectID}/files [get]
func (h uploadHandler) getProjectFiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		files, err := h.files.FindByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project files", "project files", err))
			return
		}

		h.responder.WriteJSON(w, files)
	}
}
