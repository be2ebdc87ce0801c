package models

import "time"

// GenerationLog records that a template has produced a task for a generation
// period. GenerationDate is the period key: the first day of the target month
// (YYYY-MM-01). The composite unique index is what makes template generation
// at-most-once per period, including under concurrent sweeps.
type GenerationLog struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	TemplateID     uint64    `gorm:"not null;uniqueIndex:idx_generation_log_template_period" json:"template_id"`
	GenerationDate string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_generation_log_template_period" json:"generation_date"`
	TaskID         uint64    `gorm:"not null" json:"task_id"`
	CreatedAt      time.Time `json:"created_at"`

	// Relations
	Template TaskTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	Task     Task         `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}

// TableName keeps the original table name used by the calendar frontend's API.
func (GenerationLog) TableName() string {
	return "template_generation_log"
}
