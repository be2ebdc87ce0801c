package dto

import (
	"time"

	"github.com/worklens/work-calendar-api/internal/models"
)

// TaskDTO represents a task in API responses, with the joined company and
// work item names the calendar views display.
type TaskDTO struct {
	ID                   uint64            `json:"id"`
	FillDate             string            `json:"fill_date"`
	ExpectedCompleteDate *string           `json:"expected_complete_date"`
	CompanyID            *uint64           `json:"company_id"`
	CompanyName          string            `json:"company_name,omitempty"`
	WorkItemID           uint64            `json:"work_item_id"`
	WorkItemName         string            `json:"work_item_name,omitempty"`
	Description          string            `json:"description"`
	Status               models.TaskStatus `json:"status"`
	CompletedAt          *time.Time        `json:"completed_at"`
	IsFromTemplate       bool              `json:"is_from_template"`
	TemplateID           *uint64           `json:"template_id"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                   task.ID,
		FillDate:             task.FillDate,
		ExpectedCompleteDate: task.ExpectedCompleteDate,
		CompanyID:            task.CompanyID,
		WorkItemID:           task.WorkItemID,
		Description:          task.Description,
		Status:               task.Status,
		CompletedAt:          task.CompletedAt,
		IsFromTemplate:       task.IsFromTemplate,
		TemplateID:           task.TemplateID,
		CreatedAt:            task.CreatedAt,
		UpdatedAt:            task.UpdatedAt,
	}

	// Names are present only when the relation was preloaded
	if task.Company != nil {
		dto.CompanyName = task.Company.Name
	}
	if task.WorkItem.ID != 0 {
		dto.WorkItemName = task.WorkItem.Name
	}

	return dto
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
