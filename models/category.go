package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is the top level of the two-level labeling taxonomy
type Category struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null;unique"`
	Description *string   `json:"description,omitempty" db:"description" gorm:"type:text"`
	Color       *string   `json:"color,omitempty" db:"color" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Tags []Tag `json:"tags,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE"`
}
