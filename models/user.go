package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleAdmin  = "ADMIN"
	RoleViewer = "VIEWER"
)

// User represents an account able to sign in to the tracker
type User struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null;unique"`
	Password  string    `json:"-" db:"password" gorm:"type:text;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Role      string    `json:"role" db:"role" gorm:"type:text;not null;default:VIEWER"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:CreatedByID;references:ID"`
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
