package models

import (
	"time"

	"github.com/google/uuid"
)

// External services a token can belong to
const (
	ServiceQualtrics     = "QUALTRICS"
	ServiceGreatQuestion = "GREAT_QUESTION"
)

// ValidService reports whether s names a supported external service.
func ValidService(s string) bool {
	return s == ServiceQualtrics || s == ServiceGreatQuestion
}

// ApiToken stores the bearer credential for one external research
// platform. One row per service, upserted in place.
type ApiToken struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Service   string    `json:"service" db:"service" gorm:"type:text;not null;unique"`
	Token     string    `json:"token" db:"token" gorm:"type:text;not null"`
	IsActive  bool      `json:"isActive" db:"is_active" gorm:"type:boolean;not null;default:true"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// Redacted returns a copy safe to serialize: the token value is
// reduced to its last four characters.
func (t ApiToken) Redacted() ApiToken {
	if len(t.Token) > 4 {
		t.Token = "***" + t.Token[len(t.Token)-4:]
	} else if t.Token != "" {
		t.Token = "***" + t.Token
	}
	return t
}
