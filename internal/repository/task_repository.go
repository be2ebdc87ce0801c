package repository

import (
	"github.com/worklens/work-calendar-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts a single task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// CreateWithGenerationLog inserts a task and its ledger entry atomically. If
// the (template, period) pair already has a ledger row, the transaction rolls
// back and the error is gorm.ErrDuplicatedKey.
func (r *GormTaskRepository) CreateWithGenerationLog(task *models.Task, templateID uint64, periodKey string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}

		entry := models.GenerationLog{
			TemplateID:     templateID,
			GenerationDate: periodKey,
			TaskID:         task.ID,
		}
		return tx.Create(&entry).Error
	})
}
