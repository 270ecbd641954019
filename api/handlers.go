package api

import (
	"github.com/uxrlabs/uxr-tracker-backend/database"
	"github.com/uxrlabs/uxr-tracker-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, jwtService *JWTService, fileStore services.FileStore) *routeHandlers {
	importer := services.NewImporter(db.ProjectRepo(), db.ProjectMetricRepo(), db.ApiTokenRepo())

	return &routeHandlers{
		authHandler:      newAuthHandler(db.UserRepo(), jwtService),
		projectHandler:   newProjectHandler(db.ProjectRepo()),
		taxonomyHandler:  newTaxonomyHandler(db.CategoryRepo(), db.TagRepo()),
		tokenHandler:     newTokenHandler(db.ApiTokenRepo()),
		uploadHandler:    newUploadHandler(db.ProjectRepo(), db.ProjectFileRepo(), fileStore),
		exportHandler:    newExportHandler(db.ProjectRepo(), services.NewExporter()),
		analyticsHandler: newAnalyticsHandler(db.ProjectRepo()),
		importHandler:    newImportHandler(db.ApiTokenRepo(), importer),
	}
}
