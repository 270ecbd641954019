package models

import "github.com/google/uuid"

// ProjectTag associates a project with a tag (many-to-many join row)
type ProjectTag struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index:idx_project_tag_project_id;uniqueIndex:idx_project_tag_unique;constraint:OnDelete:CASCADE"`
	TagID     uuid.UUID `json:"tagId" db:"tag_id" gorm:"type:uuid;not null;uniqueIndex:idx_project_tag_unique"`

	Tag Tag `json:"tag,omitempty" gorm:"foreignKey:TagID;references:ID"`
}
