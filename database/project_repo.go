package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/uxrlabs/uxr-tracker-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// withRelations preloads everything a project response carries: tags
// with their tag and category, files, metrics, and the owning user.
func (r *ProjectRepo) withRelations() *gorm.DB {
	return r.db.
		Preload("Tags").
		Preload("Tags.Tag").
		Preload("Tags.Tag.Category").
		Preload("Files").
		Preload("Metrics").
		Preload("CreatedBy")
}

// FindFiltered returns projects matching the filter, fully loaded and
// ordered by most recently updated first.
func (r *ProjectRepo) FindFiltered(filter ProjectFilter) ([]*models.Project, error) {
	var projects []*models.Project
	query := filter.Apply(r.withRelations())
	err := query.Order("updated_at DESC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project with all relations, or nil when no row matches.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.withRelations().First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindBySourceAndExternalID looks up the local project for an imported
// external record. Returns nil when the pair is unknown.
func (r *ProjectRepo) FindBySourceAndExternalID(source, externalID string) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "source = ? AND external_id = ?", source, externalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update persists changed project fields
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// ReplaceTags swaps the project's full tag set in one transaction.
func (r *ProjectRepo) ReplaceTags(projectID uuid.UUID, tagIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectTag{}).Error; err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			pt := models.ProjectTag{ProjectID: projectID, TagID: tagID}
			if err := tx.Create(&pt).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete hard-deletes a project and its owned rows. The cascade is
// issued explicitly so cleanup does not depend on database-side
// constraint behavior.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectFile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMetric{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}
