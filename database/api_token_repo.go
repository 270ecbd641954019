package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/uxrlabs/uxr-tracker-backend/models"
)

type ApiTokenRepo struct {
	db *gorm.DB
}

func NewApiTokenRepo(db *gorm.DB) *ApiTokenRepo {
	return &ApiTokenRepo{db}
}

// FindAll returns every stored token row ordered by service name.
func (r *ApiTokenRepo) FindAll() ([]*models.ApiToken, error) {
	var tokens []*models.ApiToken
	err := r.db.Order("service ASC").Find(&tokens).Error
	return tokens, err
}

// FindActiveByService returns the active token for a service, or nil
// when the service has no active token configured.
func (r *ApiTokenRepo) FindActiveByService(service string) (*models.ApiToken, error) {
	var token models.ApiToken
	err := r.db.First(&token, "service = ? AND is_active = ?", service, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Upsert stores the token for a service, creating the row on first use
// and replacing the value (re-activating it) afterwards.
func (r *ApiTokenRepo) Upsert(service, tokenValue string) (*models.ApiToken, error) {
	var token models.ApiToken
	err := r.db.First(&token, "service = ?", service).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		token = models.ApiToken{Service: service, Token: tokenValue, IsActive: true}
		if err := r.db.Create(&token).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		token.Token = tokenValue
		token.IsActive = true
		if err := r.db.Save(&token).Error; err != nil {
			return nil, err
		}
	}
	return &token, nil
}
