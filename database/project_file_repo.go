package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/uxrlabs/uxr-tracker-backend/models"
)

type ProjectFileRepo struct {
	db *gorm.DB
}

func NewProjectFileRepo(db *gorm.DB) *ProjectFileRepo {
	return &ProjectFileRepo{db}
}

// FindByProject returns all file records for a project, newest first.
func (r *ProjectFileRepo) FindByProject(projectID uuid.UUID) ([]*models.ProjectFile, error) {
	var files []*models.ProjectFile
	err := r.db.Where("project_id = ?", projectID).Order("uploaded_at DESC").Find(&files).Error
	return files, err
}

// Add inserts a new file record into the database
func (r *ProjectFileRepo) Add(file *models.ProjectFile) error {
	return r.db.Create(file).Error
}
