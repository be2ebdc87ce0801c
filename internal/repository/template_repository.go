package repository

import (
	"github.com/worklens/work-calendar-api/internal/models"
	"gorm.io/gorm"
)

// GormTemplateRepository is a GORM implementation of TemplateRepository
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &GormTemplateRepository{db: db}
}

// ListActive returns all active templates in ascending id order
func (r *GormTemplateRepository) ListActive() ([]models.TaskTemplate, error) {
	var templates []models.TaskTemplate
	err := r.db.
		Preload("Company").
		Preload("WorkItem").
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

// FindByID finds a template by ID, active or not
func (r *GormTemplateRepository) FindByID(id uint64) (*models.TaskTemplate, error) {
	var template models.TaskTemplate
	err := r.db.
		Preload("Company").
		Preload("WorkItem").
		First(&template, id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}
