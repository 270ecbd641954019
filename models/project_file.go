package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectFile holds metadata for a file uploaded against a project.
// Filename is the generated stored name, OriginalName the uploaded one.
type ProjectFile struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID    uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index:idx_project_file_project_id;constraint:OnDelete:CASCADE"`
	Filename     string    `json:"filename" db:"filename" gorm:"type:text;not null"`
	OriginalName string    `json:"originalName" db:"original_name" gorm:"type:text;not null"`
	MimeType     string    `json:"mimeType" db:"mime_type" gorm:"type:text;not null"`
	Size         int64     `json:"size" db:"size" gorm:"type:bigint;not null"`
	URL          string    `json:"url" db:"url" gorm:"type:text;not null"`
	UploadedAt   time.Time `json:"uploadedAt" db:"uploaded_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
