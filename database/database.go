package database

import (
	"gorm.io/gorm"

	"github.com/uxrlabs/uxr-tracker-backend/models"
)

type Database struct {
	userRepo          *UserRepo
	categoryRepo      *CategoryRepo
	tagRepo           *TagRepo
	projectRepo       *ProjectRepo
	projectFileRepo   *ProjectFileRepo
	projectMetricRepo *ProjectMetricRepo
	apiTokenRepo      *ApiTokenRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:          NewUserRepo(db),
		categoryRepo:      NewCategoryRepo(db),
		tagRepo:           NewTagRepo(db),
		projectRepo:       NewProjectRepo(db),
		projectFileRepo:   NewProjectFileRepo(db),
		projectMetricRepo: NewProjectMetricRepo(db),
		apiTokenRepo:      NewApiTokenRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectFileRepo() *ProjectFileRepo {
	return d.projectFileRepo
}

func (d Database) ProjectMetricRepo() *ProjectMetricRepo {
	return d.projectMetricRepo
}

func (d Database) ApiTokenRepo() *ApiTokenRepo {
	return d.apiTokenRepo
}

// Migrate creates or updates the schema for every tracked entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Project{},
		&models.ProjectTag{},
		&models.ProjectFile{},
		&models.ProjectMetric{},
		&models.ApiToken{},
	)
}
