package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectMetric is a string key/value pair scoped to one project. An
// external re-sync replaces a project's whole metric set, never merges.
type ProjectMetric struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index:idx_project_metric_project_id;constraint:OnDelete:CASCADE"`
	MetricKey string    `json:"metricKey" db:"metric_key" gorm:"type:text;not null"`
	Value     string    `json:"value" db:"value" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
