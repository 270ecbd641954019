package database

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/uxrlabs/uxr-tracker-backend/models"
)

type seedCategory struct {
	name        string
	description string
	color       string
	tags        []string
}

var defaultTaxonomy = []seedCategory{
	{
		name:        "Research Type",
		description: "Type of research methodology used",
		color:       "#3B82F6",
		tags: []string{
			"Usability Testing", "User Interviews", "Survey Research",
			"A/B Testing", "Card Sorting", "Tree Testing",
			"Diary Studies", "Focus Groups",
		},
	},
	{
		name:        "Platform",
		description: "Platform or product area being researched",
		color:       "#10B981",
		tags: []string{
			"Web App", "Mobile App", "Desktop", "API",
			"Marketing Site", "Admin Panel",
		},
	},
	{
		name:        "Audience",
		description: "Target audience or user segment",
		color:       "#F59E0B",
		tags: []string{
			"New Users", "Existing Users", "Power Users",
			"Enterprise", "SMB", "Consumer",
		},
	},
}

// Seed creates the default admin account and the default tag taxonomy.
// Every write is upsert-style so repeated startups are harmless.
func Seed(db *gorm.DB, adminEmail, adminPassword string) error {
	var admin models.User
	err := db.First(&admin, "email = ?", adminEmail).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(adminPassword), 12)
		if hashErr != nil {
			return hashErr
		}
		admin = models.User{
			Email:    adminEmail,
			Password: string(hash),
			Name:     "UXR Admin",
			Role:     models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	for _, sc := range defaultTaxonomy {
		var category models.Category
		err := db.First(&category, "name = ?", sc.name).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			desc, color := sc.description, sc.color
			category = models.Category{Name: sc.name, Description: &desc, Color: &color}
			if err := db.Create(&category).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		for _, tagName := range sc.tags {
			var tag models.Tag
			err := db.First(&tag, "name = ?", tagName).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				tag = models.Tag{Name: tagName, CategoryID: category.ID}
				if err := db.Create(&tag).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
		}
	}

	return nil
}
