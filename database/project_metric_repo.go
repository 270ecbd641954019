package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/uxrlabs/uxr-tracker-backend/models"
)

type ProjectMetricRepo struct {
	db *gorm.DB
}

func NewProjectMetricRepo(db *gorm.DB) *ProjectMetricRepo {
	return &ProjectMetricRepo{db}
}

// ReplaceForProject swaps a project's whole metric set in one
// transaction: every existing row is deleted, then the new set
// inserted. There is no observable empty-metrics gap.
func (r *ProjectMetricRepo) ReplaceForProject(projectID uuid.UUID, metrics map[string]string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMetric{}).Error; err != nil {
			return err
		}
		for key, value := range metrics {
			m := models.ProjectMetric{ProjectID: projectID, MetricKey: key, Value: value}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByProject returns all metric rows for a project.
func (r *ProjectMetricRepo) FindByProject(projectID uuid.UUID) ([]*models.ProjectMetric, error) {
	var metrics []*models.ProjectMetric
	err := r.db.Where("project_id = ?", projectID).Find(&metrics).Error
	return metrics, err
}
