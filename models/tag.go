package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a label belonging to exactly one category. The category
// assignment is immutable once the tag exists.
type Tag struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name       string    `json:"name" db:"name" gorm:"type:text;not null;unique"`
	CategoryID uuid.UUID `json:"categoryId" db:"category_id" gorm:"type:uuid;not null;index:idx_tag_category_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Category Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
}
