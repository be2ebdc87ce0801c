package dto

import (
	"time"

	"github.com/worklens/work-calendar-api/internal/models"
)

// TemplateDTO represents a task template in API responses.
type TemplateDTO struct {
	ID           uint64            `json:"id"`
	Name         string            `json:"name"`
	CompanyID    *uint64           `json:"company_id"`
	CompanyName  string            `json:"company_name,omitempty"`
	WorkItemID   uint64            `json:"work_item_id"`
	WorkItemName string            `json:"work_item_name,omitempty"`
	Description  string            `json:"description"`
	RepeatType   models.RepeatType `json:"repeat_type"`
	RepeatDay    int               `json:"repeat_day"`
	RepeatMonth  *int              `json:"repeat_month"`
	DurationDays int               `json:"duration_days"`
	IsActive     bool              `json:"is_active"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ToTemplateDTO converts a TaskTemplate model to TemplateDTO
func ToTemplateDTO(tpl models.TaskTemplate) TemplateDTO {
	dto := TemplateDTO{
		ID:           tpl.ID,
		Name:         tpl.Name,
		CompanyID:    tpl.CompanyID,
		WorkItemID:   tpl.WorkItemID,
		Description:  tpl.Description,
		RepeatType:   tpl.RepeatType,
		RepeatDay:    tpl.RepeatDay,
		RepeatMonth:  tpl.RepeatMonth,
		DurationDays: tpl.DurationDays,
		IsActive:     tpl.IsActive,
		CreatedAt:    tpl.CreatedAt,
		UpdatedAt:    tpl.UpdatedAt,
	}

	if tpl.Company != nil {
		dto.CompanyName = tpl.Company.Name
	}
	if tpl.WorkItem.ID != 0 {
		dto.WorkItemName = tpl.WorkItem.Name
	}

	return dto
}

// ToTemplateDTOs converts a slice of TaskTemplate models
func ToTemplateDTOs(templates []models.TaskTemplate) []TemplateDTO {
	items := make([]TemplateDTO, len(templates))
	for i, tpl := range templates {
		items[i] = ToTemplateDTO(tpl)
	}
	return items
}
