package repository

import (
	"github.com/worklens/work-calendar-api/internal/models"
	"gorm.io/gorm"
)

// GormGenerationLogRepository is a GORM implementation of GenerationLogRepository
type GormGenerationLogRepository struct {
	db *gorm.DB
}

// NewGenerationLogRepository creates a new GenerationLogRepository
func NewGenerationLogRepository(db *gorm.DB) GenerationLogRepository {
	return &GormGenerationLogRepository{db: db}
}

// HasGenerated checks the ledger for an exact (template, period) match
func (r *GormGenerationLogRepository) HasGenerated(templateID uint64, periodKey string) (bool, error) {
	var count int64
	err := r.db.Model(&models.GenerationLog{}).
		Where("template_id = ? AND generation_date = ?", templateID, periodKey).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
