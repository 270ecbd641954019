package models

import (
	"time"

	"github.com/google/uuid"
)

// Project statuses
const (
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
	StatusPaused    = "PAUSED"
	StatusCancelled = "CANCELLED"
)

// Project sources
const (
	SourceManual        = "MANUAL"
	SourceQualtrics     = "QUALTRICS"
	SourceGreatQuestion = "GREAT_QUESTION"
)

// ValidStatus reports whether s is one of the known project statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusCompleted, StatusPaused, StatusCancelled:
		return true
	}
	return false
}

// ValidSource reports whether s is one of the known project sources.
func ValidSource(s string) bool {
	switch s {
	case SourceManual, SourceQualtrics, SourceGreatQuestion:
		return true
	}
	return false
}

// Project represents a tracked UX research study, entered manually or
// imported from an external research platform. When Source is not
// MANUAL the (Source, ExternalID) pair identifies the external record.
type Project struct {
	ID               uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title            string     `json:"title" db:"title" gorm:"type:text;not null"`
	Description      *string    `json:"description,omitempty" db:"description" gorm:"type:text"`
	Status           string     `json:"status" db:"status" gorm:"type:text;not null;default:ACTIVE"`
	Source           string     `json:"source" db:"source" gorm:"type:text;not null;default:MANUAL;index:idx_project_source"`
	ExternalID       *string    `json:"externalId,omitempty" db:"external_id" gorm:"type:text;index:idx_project_external_id"`
	StartDate        *time.Time `json:"startDate,omitempty" db:"start_date" gorm:"type:timestamp"`
	EndDate          *time.Time `json:"endDate,omitempty" db:"end_date" gorm:"type:timestamp"`
	ParticipantCount *int       `json:"participantCount,omitempty" db:"participant_count" gorm:"type:integer"`
	Budget           *float64   `json:"budget,omitempty" db:"budget" gorm:"type:numeric"`
	CreatedByID      uuid.UUID  `json:"createdById" db:"created_by_id" gorm:"type:uuid;not null;index:idx_project_created_by_id"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	CreatedBy User            `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID;references:ID"`
	Tags      []ProjectTag    `json:"tags,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Files     []ProjectFile   `json:"files,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Metrics   []ProjectMetric `json:"metrics,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
