package repository

import (
	"github.com/worklens/work-calendar-api/internal/models"
)

// TemplateRepository defines the interface for template data access used by
// the generation engine.
type TemplateRepository interface {
	// ListActive returns all active templates in ascending id order, with
	// company and work item loaded for display names.
	ListActive() ([]models.TaskTemplate, error)

	// FindByID finds a template by ID regardless of its active flag. Manual
	// generation intentionally reaches inactive templates.
	FindByID(id uint64) (*models.TaskTemplate, error)
}

// TaskRepository defines the interface for task creation by the generation
// engine.
type TaskRepository interface {
	// Create inserts a single task.
	Create(task *models.Task) error

	// CreateWithGenerationLog inserts a task and its generation-log entry in
	// one transaction, so a task can never exist without ledger protection.
	// A ledger uniqueness violation surfaces as gorm.ErrDuplicatedKey.
	CreateWithGenerationLog(task *models.Task, templateID uint64, periodKey string) error
}

// GenerationLogRepository defines read access to the generation ledger.
type GenerationLogRepository interface {
	// HasGenerated reports whether a template already produced a task for the
	// given period key (YYYY-MM-01).
	HasGenerated(templateID uint64, periodKey string) (bool, error)
}
